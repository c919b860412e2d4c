package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Trip groups the transactions, repayments and rate table of one shared
// undertaking. Settlements are always computed within a single trip.
type Trip struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string       `gorm:"not null;size:100" json:"name"`
	BaseCurrency string       `gorm:"default:PLN;size:3" json:"base_currency"`
	CreatedBy    uuid.UUID    `gorm:"type:uuid" json:"created_by"`
	Creator      User         `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Members      []TripMember `gorm:"foreignKey:TripID" json:"members,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (t *Trip) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type TripMember struct {
	TripID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"trip_id"`
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	User     User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role     string    `gorm:"default:member;size:20" json:"role"` // admin, member
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

// Request structs
type CreateTripRequest struct {
	Name         string   `json:"name" binding:"required"`
	BaseCurrency string   `json:"base_currency"`
	Members      []string `json:"members"` // list of user IDs or emails
}

type UpdateTripRequest struct {
	Name         string `json:"name"`
	BaseCurrency string `json:"base_currency"`
}

type AddMemberRequest struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Response structs
type TripResponse struct {
	ID           uuid.UUID            `json:"id"`
	Name         string               `json:"name"`
	BaseCurrency string               `json:"base_currency"`
	CreatedBy    uuid.UUID            `json:"created_by"`
	Members      []TripMemberResponse `json:"members"`
	CreatedAt    time.Time            `json:"created_at"`
}

type TripMemberResponse struct {
	UserID   uuid.UUID `json:"user_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}
