package settlement

// Reconcile subtracts already-made repayments from the debt matrix,
// returning a new matrix plus whatever could not be matched. For each pair
// with a repayment total: if the matrix records a debt, the repayment
// reduces it, clamped at zero with the excess recorded as leftover; if the
// matrix has no entry for that exact ordered pair, the whole repayment is
// leftover. Untouched entries pass through unchanged and every resulting
// entry is >= 0.
func Reconcile(matrix Matrix, repayments PairTotals) (Matrix, Leftovers) {
	out := make(Matrix, len(matrix))
	for debtor, row := range matrix {
		cp := make(map[string]float64, len(row))
		for creditor, amount := range row {
			cp[creditor] = amount
		}
		out[debtor] = cp
	}

	leftovers := make(Leftovers)
	for key, repaid := range repayments {
		debtor, creditor := SplitPairKey(key)

		row, ok := out[debtor]
		if !ok {
			leftovers[key] = round2(repaid)
			continue
		}
		owed, ok := row[creditor]
		if !ok {
			leftovers[key] = round2(repaid)
			continue
		}

		if repaid <= owed {
			row[creditor] = round2(owed - repaid)
		} else {
			row[creditor] = 0
			leftovers[key] = round2(repaid - owed)
		}
	}

	return out, leftovers
}
