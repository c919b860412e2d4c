package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeByKeywordFiltersAndSplits(t *testing.T) {
	txs := []Transaction{
		{Payer: "A", Amount: 90, Currency: "PLN", Beneficiaries: []string{"A", "B", "C"}, Description: "Nocleg w górach"},
		{Payer: "B", Amount: 60, Currency: "PLN", Beneficiaries: []string{"A", "B"}, Description: "paliwo"},
		{Payer: "C", Amount: 40, Currency: "PLN", Beneficiaries: []string{"C", "D"}, Description: "drugi NOCLEG"},
	}

	summary, err := SummarizeByKeyword(txs, "nocleg", "PLN", plnOnly)
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{
		"A": 30,
		"B": 30,
		"C": 50,
		"D": 20,
	}, summary)
}

func TestSummarizeByKeywordSkipsEmptyBeneficiaries(t *testing.T) {
	txs := []Transaction{
		{Payer: "A", Amount: 90, Currency: "PLN", Description: "nocleg"},
	}

	summary, err := SummarizeByKeyword(txs, "nocleg", "PLN", plnOnly)
	require.NoError(t, err)
	assert.Empty(t, summary)
}

func TestSummarizeByKeywordConverts(t *testing.T) {
	txs := []Transaction{
		{Payer: "A", Amount: 30, Currency: "EUR", Beneficiaries: []string{"B", "C"}, Description: "hotel nocleg"},
	}
	rates := Rates{"PLN": 1.0, "EUR": 4.0}

	summary, err := SummarizeByKeyword(txs, "nocleg", "PLN", rates)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"B": 60, "C": 60}, summary)
}

func TestSummarizeByKeywordMissingRate(t *testing.T) {
	txs := []Transaction{
		{Payer: "A", Amount: 30, Currency: "CHF", Beneficiaries: []string{"B"}, Description: "nocleg"},
	}

	_, err := SummarizeByKeyword(txs, "nocleg", "PLN", plnOnly)
	var missing *MissingRateError
	require.ErrorAs(t, err, &missing)
}
