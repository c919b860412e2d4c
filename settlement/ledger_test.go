package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var plnOnly = Rates{"PLN": 1.0}

func TestAggregateBalancesEqualSplit(t *testing.T) {
	txs := []Transaction{
		{Payer: "A", Amount: 90, Currency: "PLN", Beneficiaries: []string{"A", "B", "C"}},
	}

	balances, err := AggregateBalances(txs, "PLN", plnOnly)
	require.NoError(t, err)

	assert.Equal(t, NetBalance{Paid: 90, Owes: 30, Net: 60}, balances["A"])
	assert.Equal(t, NetBalance{Paid: 0, Owes: 30, Net: -30}, balances["B"])
	assert.Equal(t, NetBalance{Paid: 0, Owes: 30, Net: -30}, balances["C"])
}

func TestAggregateBalancesConservation(t *testing.T) {
	txs := []Transaction{
		{Payer: "A", Amount: 120, Currency: "PLN", Beneficiaries: []string{"A", "B", "C", "D"}},
		{Payer: "B", Amount: 45.5, Currency: "PLN", Beneficiaries: []string{"A", "B"}},
		{Payer: "C", Amount: 60, Currency: "EUR", Beneficiaries: []string{"B", "C", "D"}},
		{Payer: "D", Amount: 10.25, Currency: "PLN", Beneficiaries: []string{"A"}},
	}
	rates := Rates{"PLN": 1.0, "EUR": 4.5}

	balances, err := AggregateBalances(txs, "PLN", rates)
	require.NoError(t, err)

	var sum float64
	for _, b := range balances {
		sum += b.Net
	}
	assert.InDelta(t, 0, sum, 1e-6)
}

func TestAggregateBalancesDuplicateBeneficiaryOwesTwice(t *testing.T) {
	txs := []Transaction{
		{Payer: "A", Amount: 30, Currency: "PLN", Beneficiaries: []string{"B", "B", "C"}},
	}

	balances, err := AggregateBalances(txs, "PLN", plnOnly)
	require.NoError(t, err)

	assert.Equal(t, 20.0, balances["B"].Owes)
	assert.Equal(t, 10.0, balances["C"].Owes)
}

func TestAggregateBalancesSkipsEmptyBeneficiaries(t *testing.T) {
	txs := []Transaction{
		{Payer: "A", Amount: 500, Currency: "PLN", Beneficiaries: nil},
	}

	balances, err := AggregateBalances(txs, "PLN", plnOnly)
	require.NoError(t, err)

	// The payer still appears in the person set, but with nothing on
	// either side: an expense nobody benefits from cannot be split.
	assert.Equal(t, NetBalance{}, balances["A"])
}

func TestAggregateBalancesConvertsBeforeSplitting(t *testing.T) {
	txs := []Transaction{
		{Payer: "A", Amount: 100, Currency: "EUR", Beneficiaries: []string{"B"}},
	}
	rates := Rates{"PLN": 1.0, "EUR": 4.0}

	balances, err := AggregateBalances(txs, "PLN", rates)
	require.NoError(t, err)

	assert.Equal(t, 400.0, balances["A"].Paid)
	assert.Equal(t, 400.0, balances["B"].Owes)
}

func TestAggregateBalancesCaseSensitiveNames(t *testing.T) {
	txs := []Transaction{
		{Payer: "anna", Amount: 10, Currency: "PLN", Beneficiaries: []string{"Anna"}},
	}

	balances, err := AggregateBalances(txs, "PLN", plnOnly)
	require.NoError(t, err)

	// Differently-cased names are distinct people, on purpose.
	assert.Len(t, balances, 2)
	assert.Equal(t, 10.0, balances["anna"].Paid)
	assert.Equal(t, 10.0, balances["Anna"].Owes)
}

func TestAggregateBalancesMissingRateAborts(t *testing.T) {
	txs := []Transaction{
		{Payer: "A", Amount: 10, Currency: "PLN", Beneficiaries: []string{"B"}},
		{Payer: "B", Amount: 10, Currency: "CHF", Beneficiaries: []string{"A"}},
	}

	balances, err := AggregateBalances(txs, "PLN", plnOnly)
	var missing *MissingRateError
	require.ErrorAs(t, err, &missing)
	assert.Nil(t, balances)
}
