package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertSameCurrencyIsIdentity(t *testing.T) {
	// Equal codes never touch the table, even for codes it doesn't know.
	got, err := Convert(123.456, "XYZ", "XYZ", Rates{})
	require.NoError(t, err)
	assert.Equal(t, 123.456, got)
}

func TestConvertUsesRatePair(t *testing.T) {
	rates := Rates{"PLN": 1.0, "EUR": 4.0}

	got, err := Convert(100, "EUR", "PLN", rates)
	require.NoError(t, err)
	assert.InDelta(t, 400.0, got, 1e-9)

	got, err = Convert(400, "PLN", "EUR", rates)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, got, 1e-9)
}

func TestConvertNonUnitReference(t *testing.T) {
	// The reference currency does not have to be the anchor (rate 1.0).
	rates := Rates{"EUR": 4.0, "USD": 3.6}

	got, err := Convert(90, "EUR", "USD", rates)
	require.NoError(t, err)
	assert.InDelta(t, 90*4.0/3.6, got, 1e-9)
}

func TestConvertMissingRates(t *testing.T) {
	rates := Rates{"PLN": 1.0}

	_, err := Convert(10, "EUR", "PLN", rates)
	var missing *MissingRateError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"EUR"}, missing.Codes)

	_, err = Convert(10, "EUR", "USD", rates)
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"EUR", "USD"}, missing.Codes)
	assert.Contains(t, missing.Error(), "EUR, USD")
}
