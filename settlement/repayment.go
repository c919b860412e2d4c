package settlement

// AggregateRepayments sums repayments per ordered (from, to) pair and per
// person, converted to the reference currency. Records with an empty side,
// from == to, or a non-positive amount are treated as no-ops; they fail
// validation upstream and carry no meaning here.
//
// The per-person adjustment is positive for the payer (a repayment improves
// the debtor's position) and negative for the receiver, so folding it into
// net balances keeps their sum at zero.
func AggregateRepayments(reps []Repayment, refCurrency string, rates Rates) (PairTotals, map[string]float64, error) {
	pairs := make(PairTotals)
	adjustments := make(map[string]float64)

	for _, r := range reps {
		if r.From == "" || r.To == "" || r.From == r.To || r.Amount <= 0 {
			continue
		}

		amount, err := Convert(r.Amount, r.Currency, refCurrency, rates)
		if err != nil {
			return nil, nil, err
		}

		pairs[PairKey(r.From, r.To)] += amount
		adjustments[r.From] += amount
		adjustments[r.To] -= amount
	}

	return pairs, adjustments, nil
}

// ApplyAdjustments folds repayment adjustments into a balance map,
// returning a new map. People appearing only in adjustments are added with
// zero paid/owes so a repayment from an otherwise unseen name still shows.
func ApplyAdjustments(balances map[string]NetBalance, adjustments map[string]float64) map[string]NetBalance {
	out := make(map[string]NetBalance, len(balances))
	for p, b := range balances {
		out[p] = b
	}
	for p, adj := range adjustments {
		b := out[p]
		b.Net = round2(b.Net + adj)
		out[p] = b
	}
	return out
}
