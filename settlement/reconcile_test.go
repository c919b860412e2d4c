package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcileSubtractsRepayment(t *testing.T) {
	matrix := Matrix{
		"B": {"A": 30},
		"C": {"A": 30},
	}
	repayments := PairTotals{PairKey("B", "A"): 30}

	out, leftovers := Reconcile(matrix, repayments)

	assert.Equal(t, 0.0, out["B"]["A"])
	assert.Equal(t, 30.0, out["C"]["A"])
	assert.Empty(t, leftovers)
}

func TestReconcileOverpaymentBecomesLeftover(t *testing.T) {
	matrix := Matrix{
		"B": {"A": 30},
		"C": {"A": 30},
	}
	repayments := PairTotals{PairKey("B", "A"): 50}

	out, leftovers := Reconcile(matrix, repayments)

	assert.Equal(t, 0.0, out["B"]["A"])
	assert.Equal(t, 30.0, out["C"]["A"])
	assert.Equal(t, Leftovers{"B|A": 20}, leftovers)
}

func TestReconcileUnknownPairIsAllLeftover(t *testing.T) {
	matrix := Matrix{"B": {"A": 30}}
	repayments := PairTotals{
		PairKey("D", "A"): 15,
		PairKey("B", "C"): 5,
	}

	out, leftovers := Reconcile(matrix, repayments)

	assert.Equal(t, 30.0, out["B"]["A"])
	assert.Equal(t, Leftovers{"D|A": 15, "B|C": 5}, leftovers)
}

func TestReconcileNeverNegative(t *testing.T) {
	matrix := Matrix{
		"B": {"A": 10.5, "X": 3},
		"C": {"A": 0.01},
	}
	repayments := PairTotals{
		PairKey("B", "A"): 999,
		PairKey("C", "A"): 0.01,
	}

	out, _ := Reconcile(matrix, repayments)

	for debtor, row := range out {
		for creditor, amount := range row {
			assert.GreaterOrEqual(t, amount, 0.0, "%s -> %s", debtor, creditor)
		}
	}
}

func TestReconcileLeavesInputMatrixUntouched(t *testing.T) {
	matrix := Matrix{"B": {"A": 30}}
	Reconcile(matrix, PairTotals{PairKey("B", "A"): 30})
	assert.Equal(t, 30.0, matrix["B"]["A"])
}
