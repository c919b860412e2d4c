package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocateProportionalSingleCreditor(t *testing.T) {
	balances := map[string]NetBalance{
		"A": {Net: 60},
		"B": {Net: -30},
		"C": {Net: -30},
	}

	matrix := Allocate(balances, PolicyProportional)

	assert.Equal(t, Matrix{
		"B": {"A": 30},
		"C": {"A": 30},
	}, matrix)
}

func TestAllocateProportionalSplitsByCreditShare(t *testing.T) {
	balances := map[string]NetBalance{
		"X": {Net: 60},
		"Y": {Net: 40},
		"Z": {Net: -100},
	}

	matrix := Allocate(balances, PolicyProportional)

	assert.Equal(t, 60.0, matrix["Z"]["X"])
	assert.Equal(t, 40.0, matrix["Z"]["Y"])
}

func TestAllocateRowAndColumnSums(t *testing.T) {
	balances := map[string]NetBalance{
		"A": {Net: 75},
		"B": {Net: 25},
		"C": {Net: -40},
		"D": {Net: -60},
	}

	matrix := Allocate(balances, PolicyProportional)

	for debtor, b := range balances {
		if b.Net >= 0 {
			continue
		}
		var rowSum float64
		for _, amount := range matrix[debtor] {
			rowSum += amount
		}
		assert.InDelta(t, -b.Net, rowSum, 0.02, "row sum for %s", debtor)
	}

	for creditor, b := range balances {
		if b.Net <= 0 {
			continue
		}
		var colSum float64
		for _, row := range matrix {
			colSum += row[creditor]
		}
		assert.InDelta(t, b.Net, colSum, 0.02, "column sum for %s", creditor)
	}
}

func TestAllocateIgnoresSettledPeople(t *testing.T) {
	balances := map[string]NetBalance{
		"A": {Net: 10},
		"B": {Net: -10},
		"C": {Net: 0},
		"D": {Net: 1e-9},
	}

	matrix := Allocate(balances, PolicyProportional)

	assert.Equal(t, Matrix{"B": {"A": 10}}, matrix)
}

func TestAllocateDegenerateZeroCredit(t *testing.T) {
	// Debtors with no creditors is an inconsistent snapshot; policy says
	// all-zero rows, not an error.
	balances := map[string]NetBalance{
		"Z": {Net: -100},
	}

	matrix := Allocate(balances, PolicyProportional)

	assert.Equal(t, Matrix{"Z": {}}, matrix)
}

func TestAllocateGreedyMinimizesTransfers(t *testing.T) {
	balances := map[string]NetBalance{
		"X": {Net: 60},
		"Y": {Net: 40},
		"Z": {Net: -100},
	}

	matrix := Allocate(balances, PolicyGreedy)

	// Same money moves, but Z pays each creditor off in turn instead of
	// owing both a proportional slice.
	assert.Equal(t, Matrix{"Z": {"X": 60, "Y": 40}}, matrix)

	balances = map[string]NetBalance{
		"A": {Net: 100},
		"B": {Net: -70},
		"C": {Net: -30},
	}
	matrix = Allocate(balances, PolicyGreedy)
	assert.Equal(t, Matrix{"B": {"A": 70}, "C": {"A": 30}}, matrix)
}

func TestAllocateGreedyChainsAcrossCreditors(t *testing.T) {
	balances := map[string]NetBalance{
		"A": {Net: 50},
		"B": {Net: 50},
		"C": {Net: -100},
	}

	matrix := Allocate(balances, PolicyGreedy)

	assert.Equal(t, Matrix{"C": {"A": 50, "B": 50}}, matrix)
}

func TestPolicyValid(t *testing.T) {
	assert.True(t, PolicyProportional.Valid())
	assert.True(t, PolicyGreedy.Valid())
	assert.False(t, Policy("optimal").Valid())
}
