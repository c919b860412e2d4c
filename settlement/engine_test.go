package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tripSnapshot(reps ...Repayment) Input {
	return Input{
		Transactions: []Transaction{
			{Payer: "A", Amount: 90, Currency: "PLN", Beneficiaries: []string{"A", "B", "C"}},
		},
		Repayments:        reps,
		ReferenceCurrency: "PLN",
		Rates:             Rates{"PLN": 1.0},
		Policy:            PolicyProportional,
	}
}

func TestSettleNoRepayments(t *testing.T) {
	result, err := Settle(tripSnapshot())
	require.NoError(t, err)

	assert.Equal(t, 60.0, result.Balances["A"].Net)
	assert.Equal(t, -30.0, result.Balances["B"].Net)
	assert.Equal(t, -30.0, result.Balances["C"].Net)
	assert.Equal(t, Matrix{"B": {"A": 30}, "C": {"A": 30}}, result.Matrix)
	assert.Empty(t, result.Leftovers)
	assert.Equal(t, result.Balances, result.AdjustedBalances)
}

func TestSettleWithExactRepayment(t *testing.T) {
	result, err := Settle(tripSnapshot(
		Repayment{From: "B", To: "A", Amount: 30, Currency: "PLN"},
	))
	require.NoError(t, err)

	assert.Equal(t, Matrix{"B": {"A": 0}, "C": {"A": 30}}, result.Matrix)
	assert.Empty(t, result.Leftovers)
	assert.Equal(t, 0.0, result.AdjustedBalances["B"].Net)
	assert.Equal(t, 30.0, result.AdjustedBalances["A"].Net)
}

func TestSettleWithOverpayment(t *testing.T) {
	result, err := Settle(tripSnapshot(
		Repayment{From: "B", To: "A", Amount: 50, Currency: "PLN"},
	))
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.Matrix["B"]["A"])
	assert.Equal(t, Leftovers{"B|A": 20}, result.Leftovers)
}

func TestSettleCrossCurrency(t *testing.T) {
	result, err := Settle(Input{
		Transactions: []Transaction{
			{Payer: "A", Amount: 100, Currency: "EUR", Beneficiaries: []string{"B"}},
		},
		ReferenceCurrency: "PLN",
		Rates:             Rates{"PLN": 1.0, "EUR": 4.0},
		Policy:            PolicyProportional,
	})
	require.NoError(t, err)

	assert.Equal(t, 400.0, result.Balances["A"].Paid)
	assert.Equal(t, Matrix{"B": {"A": 400}}, result.Matrix)
}

func TestSettleMissingRateReturnsNothing(t *testing.T) {
	in := tripSnapshot(Repayment{From: "B", To: "A", Amount: 10, Currency: "CHF"})

	result, err := Settle(in)
	var missing *MissingRateError
	require.ErrorAs(t, err, &missing)
	assert.Nil(t, result)
}

func TestSettleIsIdempotent(t *testing.T) {
	in := Input{
		Transactions: []Transaction{
			{Payer: "A", Amount: 121.37, Currency: "PLN", Beneficiaries: []string{"A", "B", "C"}},
			{Payer: "B", Amount: 33, Currency: "EUR", Beneficiaries: []string{"B", "C"}},
			{Payer: "C", Amount: 18.5, Currency: "PLN", Beneficiaries: []string{"A"}},
		},
		Repayments: []Repayment{
			{From: "C", To: "A", Amount: 12, Currency: "PLN"},
		},
		ReferenceCurrency: "PLN",
		Rates:             Rates{"PLN": 1.0, "EUR": 4.3},
		Policy:            PolicyProportional,
	}

	first, err := Settle(in)
	require.NoError(t, err)
	second, err := Settle(in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSettleGreedyPolicy(t *testing.T) {
	in := tripSnapshot()
	in.Policy = PolicyGreedy

	result, err := Settle(in)
	require.NoError(t, err)

	// Both debtors owe the single creditor either way; the policies only
	// diverge once more than one creditor exists.
	assert.Equal(t, Matrix{"B": {"A": 30}, "C": {"A": 30}}, result.Matrix)
}
