package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateRepaymentsPairTotals(t *testing.T) {
	reps := []Repayment{
		{From: "B", To: "A", Amount: 20, Currency: "PLN"},
		{From: "B", To: "A", Amount: 10, Currency: "PLN"},
		{From: "C", To: "A", Amount: 25, Currency: "EUR"},
	}
	rates := Rates{"PLN": 1.0, "EUR": 4.0}

	pairs, adjustments, err := AggregateRepayments(reps, "PLN", rates)
	require.NoError(t, err)

	assert.Equal(t, 30.0, pairs[PairKey("B", "A")])
	assert.Equal(t, 100.0, pairs[PairKey("C", "A")])

	assert.Equal(t, 30.0, adjustments["B"])
	assert.Equal(t, 100.0, adjustments["C"])
	assert.Equal(t, -130.0, adjustments["A"])
}

func TestAggregateRepaymentsSkipsInvalidRecords(t *testing.T) {
	reps := []Repayment{
		{From: "", To: "A", Amount: 10, Currency: "PLN"},
		{From: "B", To: "", Amount: 10, Currency: "PLN"},
		{From: "B", To: "B", Amount: 10, Currency: "PLN"},
		{From: "B", To: "A", Amount: 0, Currency: "PLN"},
		{From: "B", To: "A", Amount: -5, Currency: "PLN"},
	}

	pairs, adjustments, err := AggregateRepayments(reps, "PLN", plnOnly)
	require.NoError(t, err)
	assert.Empty(t, pairs)
	assert.Empty(t, adjustments)
}

func TestAggregateRepaymentsMissingRate(t *testing.T) {
	reps := []Repayment{{From: "B", To: "A", Amount: 10, Currency: "CHF"}}

	_, _, err := AggregateRepayments(reps, "PLN", plnOnly)
	var missing *MissingRateError
	require.ErrorAs(t, err, &missing)
}

func TestApplyAdjustmentsKeepsSumZero(t *testing.T) {
	balances := map[string]NetBalance{
		"A": {Paid: 90, Owes: 30, Net: 60},
		"B": {Owes: 30, Net: -30},
		"C": {Owes: 30, Net: -30},
	}
	adjustments := map[string]float64{"B": 30, "A": -30}

	adjusted := ApplyAdjustments(balances, adjustments)

	assert.Equal(t, 30.0, adjusted["A"].Net)
	assert.Equal(t, 0.0, adjusted["B"].Net)
	assert.Equal(t, -30.0, adjusted["C"].Net)

	var sum float64
	for _, b := range adjusted {
		sum += b.Net
	}
	assert.InDelta(t, 0, sum, 1e-6)

	// Input map untouched.
	assert.Equal(t, 60.0, balances["A"].Net)
}

func TestApplyAdjustmentsUnknownPerson(t *testing.T) {
	adjusted := ApplyAdjustments(map[string]NetBalance{}, map[string]float64{"Z": 15})
	assert.Equal(t, NetBalance{Net: 15}, adjusted["Z"])
}
