package models

import (
	"tripsettle-backend/settlement"

	"github.com/google/uuid"
)

// SettlementSummary is returned for GET /api/trips/:id/settlement.
// Everything is expressed in the trip's base currency.
type SettlementSummary struct {
	TripID           uuid.UUID                        `json:"trip_id"`
	TripName         string                           `json:"trip_name"`
	Currency         string                           `json:"currency"`
	Policy           settlement.Policy                `json:"policy"`
	Balances         map[string]settlement.NetBalance `json:"balances"`
	AdjustedBalances map[string]settlement.NetBalance `json:"adjusted_balances"`
	Matrix           settlement.Matrix                `json:"matrix"`
	Leftovers        settlement.Leftovers             `json:"leftovers"`
	TotalSpent       float64                          `json:"total_spent"`
}

// LodgingSummary is returned for GET /api/trips/:id/lodging.
type LodgingSummary struct {
	TripID   uuid.UUID          `json:"trip_id"`
	Keyword  string             `json:"keyword"`
	Currency string             `json:"currency"`
	Shares   map[string]float64 `json:"shares"`
}
