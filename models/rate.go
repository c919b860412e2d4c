package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CurrencyRate is one row of a trip's rate table: the value of one unit of
// Code in the anchor unit, so amountInAnchor = amount * Rate. Conversion
// between any two codes goes through the anchor; no code has to be 1.0.
type CurrencyRate struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TripID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_trip_code" json:"trip_id"`
	Code      string    `gorm:"not null;size:3;uniqueIndex:idx_trip_code" json:"code"`
	Rate      float64   `gorm:"not null" json:"rate"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *CurrencyRate) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type RateInput struct {
	Code string  `json:"code" binding:"required,len=3"`
	Rate float64 `json:"rate" binding:"required,gt=0"`
}

type UpsertRatesRequest struct {
	Rates []RateInput `json:"rates" binding:"required,dive"`
}

// DefaultCurrencies is the seed set offered to new trips, anchored to PLN.
var DefaultCurrencies = map[string]float64{
	"PLN": 1.0,
	"EUR": 4.3,
	"USD": 4.0,
	"NOK": 0.37,
	"SEK": 0.38,
	"GBP": 5.1,
	"CHF": 4.5,
	"CZK": 0.17,
}
