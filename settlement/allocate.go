package settlement

import "sort"

// Policy selects how outstanding debt is distributed across creditors.
// The two policies produce different matrices for the same balances and
// must never be mixed within one computation.
type Policy string

const (
	// PolicyProportional gives every debtor a fractional debt toward every
	// creditor, weighted by that creditor's share of the total credit.
	// Deterministic and order-independent; the default.
	PolicyProportional Policy = "proportional"

	// PolicyGreedy matches debtors against creditors two-pointer style to
	// minimize the number of transfers. Opt-in alternative.
	PolicyGreedy Policy = "greedy"
)

// Valid reports whether p names a known policy.
func (p Policy) Valid() bool {
	return p == PolicyProportional || p == PolicyGreedy
}

// Allocate builds the debtor -> creditor matrix for the given balances
// under the chosen policy. Unknown policies fall back to proportional.
func Allocate(balances map[string]NetBalance, policy Policy) Matrix {
	if policy == PolicyGreedy {
		return allocateGreedy(balances)
	}
	return allocateProportional(balances)
}

// allocateProportional implements the canonical allocation: classify each
// person by net sign (|net| <= epsilon counts as settled), then give every
// (debtor, creditor) pair debt * credit/totalCredit, rounded to 2 decimals.
// A snapshot with debtors but zero total credit is degenerate and resolves
// to all-zero rows rather than an error.
func allocateProportional(balances map[string]NetBalance) Matrix {
	creditors := make(map[string]float64)
	debtors := make(map[string]float64)
	var totalCredit float64

	for person, b := range balances {
		switch {
		case b.Net > epsilon:
			creditors[person] = b.Net
			totalCredit += b.Net
		case b.Net < -epsilon:
			debtors[person] = -b.Net
		}
	}

	matrix := make(Matrix, len(debtors))
	for debtor, debt := range debtors {
		row := make(map[string]float64, len(creditors))
		for creditor, credit := range creditors {
			if totalCredit > 0 {
				row[creditor] = round2(debt * (credit / totalCredit))
			} else {
				row[creditor] = 0
			}
		}
		matrix[debtor] = row
	}
	return matrix
}

// allocateGreedy walks sorted debtor and creditor lists, settling the
// smaller of the two heads at each step. It minimizes transfer count at
// the cost of routing debt through whichever creditor comes next; sorting
// by name keeps the result deterministic for a given snapshot.
func allocateGreedy(balances map[string]NetBalance) Matrix {
	type stake struct {
		person string
		amount float64
	}

	var creditors, debtors []stake
	for person, b := range balances {
		switch {
		case b.Net > epsilon:
			creditors = append(creditors, stake{person, b.Net})
		case b.Net < -epsilon:
			debtors = append(debtors, stake{person, -b.Net})
		}
	}
	sort.Slice(creditors, func(i, j int) bool { return creditors[i].person < creditors[j].person })
	sort.Slice(debtors, func(i, j int) bool { return debtors[i].person < debtors[j].person })

	matrix := make(Matrix)
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := debtors[i].amount
		if creditors[j].amount < amount {
			amount = creditors[j].amount
		}
		amount = round2(amount)

		if amount > 0 {
			if matrix[debtors[i].person] == nil {
				matrix[debtors[i].person] = make(map[string]float64)
			}
			matrix[debtors[i].person][creditors[j].person] += amount
		}

		debtors[i].amount = round2(debtors[i].amount - amount)
		creditors[j].amount = round2(creditors[j].amount - amount)

		if debtors[i].amount < 0.01 {
			i++
		}
		if creditors[j].amount < 0.01 {
			j++
		}
	}
	return matrix
}
