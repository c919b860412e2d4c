package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repayment records money handed over outside the ledger, from one person
// to another, to settle part of a debt.
type Repayment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TripID     uuid.UUID `gorm:"type:uuid;index" json:"trip_id"`
	Trip       Trip      `gorm:"foreignKey:TripID" json:"-"`
	FromPerson string    `gorm:"not null;size:100" json:"from"`
	ToPerson   string    `gorm:"not null;size:100" json:"to"`
	Amount     float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency   string    `gorm:"not null;size:3" json:"currency"`
	Note       string    `gorm:"size:255" json:"note,omitempty"`
	CreatedBy  uuid.UUID `gorm:"type:uuid" json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
}

func (r *Repayment) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type CreateRepaymentRequest struct {
	From     string  `json:"from" binding:"required"`
	To       string  `json:"to" binding:"required"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Currency string  `json:"currency"`
	Note     string  `json:"note"`
}
