package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Transaction is one shared cost inside a trip. Payer and beneficiaries
// are free-text names, stored exactly as entered; the beneficiary list is
// ordered and may repeat a name, each repetition counting as an extra
// share.
type Transaction struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TripID        uuid.UUID      `gorm:"type:uuid;index" json:"trip_id"`
	Trip          Trip           `gorm:"foreignKey:TripID" json:"-"`
	Payer         string         `gorm:"not null;size:100" json:"payer"`
	Amount        float64        `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency      string         `gorm:"not null;size:3" json:"currency"`
	Beneficiaries pq.StringArray `gorm:"type:text[]" json:"beneficiaries"`
	Description   string         `gorm:"size:255" json:"description"`
	CreatedBy     uuid.UUID      `gorm:"type:uuid" json:"created_by"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Request structs
type CreateTransactionRequest struct {
	Payer         string   `json:"payer" binding:"required"`
	Amount        float64  `json:"amount" binding:"gte=0"`
	Currency      string   `json:"currency"`
	Beneficiaries []string `json:"beneficiaries" binding:"required"`
	Description   string   `json:"description"`
}

type UpdateTransactionRequest struct {
	Payer         string   `json:"payer"`
	Amount        *float64 `json:"amount"`
	Currency      string   `json:"currency"`
	Beneficiaries []string `json:"beneficiaries"`
	Description   string   `json:"description"`
}

// Response
type TransactionResponse struct {
	ID              uuid.UUID `json:"id"`
	TripID          uuid.UUID `json:"trip_id"`
	Payer           string    `json:"payer"`
	Amount          float64   `json:"amount"`
	Currency        string    `json:"currency"`
	AmountConverted float64   `json:"amount_converted"`
	Beneficiaries   []string  `json:"beneficiaries"`
	Description     string    `json:"description"`
	CreatedAt       time.Time `json:"created_at"`
}

// ExportedTransaction is the JSON shape used by trip import/export files.
type ExportedTransaction struct {
	Payer         string   `json:"payer"`
	Amount        float64  `json:"amount"`
	Currency      string   `json:"currency"`
	Beneficiaries []string `json:"beneficiaries"`
	Description   string   `json:"description"`
}
