package settlement

// Input is one complete, already-validated snapshot for a settlement
// computation. The engine never mutates it.
type Input struct {
	Transactions      []Transaction
	Repayments        []Repayment
	ReferenceCurrency string
	Rates             Rates
	Policy            Policy
}

// Result is everything one computation produces, all amounts in the
// reference currency and rounded to 2 decimal places.
type Result struct {
	// Balances is each person's position from transactions alone.
	Balances map[string]NetBalance `json:"balances"`
	// AdjustedBalances folds repayments into the nets.
	AdjustedBalances map[string]NetBalance `json:"adjusted_balances"`
	// Matrix is the pairwise debt left after reconciling repayments.
	Matrix Matrix `json:"matrix"`
	// Leftovers holds repayment amounts that exceeded the matrix debt
	// for their pair, keyed "debtor|creditor".
	Leftovers Leftovers `json:"leftovers"`
}

// Settle runs the full pipeline: aggregate balances, allocate the debt
// matrix under the chosen policy, aggregate repayments, and reconcile the
// two. A missing exchange rate anywhere aborts the whole computation; a
// partially computed matrix would misstate who owes what. Given the same
// snapshot, Settle always returns the same result.
func Settle(in Input) (*Result, error) {
	balances, err := AggregateBalances(in.Transactions, in.ReferenceCurrency, in.Rates)
	if err != nil {
		return nil, err
	}

	pairTotals, adjustments, err := AggregateRepayments(in.Repayments, in.ReferenceCurrency, in.Rates)
	if err != nil {
		return nil, err
	}

	matrix, leftovers := Reconcile(Allocate(balances, in.Policy), pairTotals)

	return &Result{
		Balances:         balances,
		AdjustedBalances: ApplyAdjustments(balances, adjustments),
		Matrix:           matrix,
		Leftovers:        leftovers,
	}, nil
}
