// Package settlement computes who owes whom for a trip: it normalizes
// amounts into one reference currency, aggregates per-person balances,
// allocates debt proportionally across creditors and nets out repayments
// already made. Everything in this package is a pure function over the
// snapshot it is handed; nothing here touches the database or any global.
package settlement

import (
	"fmt"
	"math"
	"strings"
)

// Person identifiers are free-text names taken verbatim from the records.
// "Anna" and "anna " are two different people; normalization is the
// caller's job if it wants any.

// Transaction is one shared cost: the payer fronted Amount in Currency and
// every beneficiary entry owes an equal share. A name listed twice owes
// two shares. A transaction with no beneficiaries is skipped entirely.
type Transaction struct {
	Payer         string
	Amount        float64
	Currency      string
	Beneficiaries []string
	Description   string
}

// Repayment is money already transferred from From to To outside the
// ledger, reducing From's debt toward To.
type Repayment struct {
	From     string
	To       string
	Amount   float64
	Currency string
	Note     string
}

// Rates maps a currency code to its value in the anchor unit, so that
// amountInAnchor = amount * rate. The reference currency need not be 1.0.
type Rates map[string]float64

// NetBalance is one person's position in the reference currency.
// Net > 0 means the person is owed money.
type NetBalance struct {
	Paid float64 `json:"paid"`
	Owes float64 `json:"owes"`
	Net  float64 `json:"net"`
}

// Matrix maps debtor -> creditor -> amount owed in the reference currency.
type Matrix map[string]map[string]float64

// PairTotals holds summed repayments keyed by PairKey(from, to).
type PairTotals map[string]float64

// Leftovers records repayment amounts that exceeded the matrix debt for a
// pair, keyed like PairTotals. Informational only; nothing re-routes them.
type Leftovers map[string]float64

// epsilon below which a net balance counts as settled.
const epsilon = 1e-6

// PairKey builds the "debtor|creditor" key used by PairTotals and Leftovers.
func PairKey(from, to string) string {
	return from + "|" + to
}

// SplitPairKey is the inverse of PairKey.
func SplitPairKey(key string) (from, to string) {
	parts := strings.SplitN(key, "|", 2)
	if len(parts) != 2 {
		return key, ""
	}
	return parts[0], parts[1]
}

// round2 rounds to 2 decimal places. Applied only to values handed back to
// the caller; intermediate sums stay unrounded so chained conversions do
// not compound rounding error.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// MissingRateError reports currency codes that a conversion needed but the
// rate table lacks. It aborts the whole computation; the engine never
// returns a partial result.
type MissingRateError struct {
	Codes []string
}

func (e *MissingRateError) Error() string {
	return fmt.Sprintf("no exchange rate for %s", strings.Join(e.Codes, ", "))
}
