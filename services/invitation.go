package services

import (
	"log"
	"tripsettle-backend/database"
	"tripsettle-backend/models"

	"github.com/google/uuid"
)

// InviteToTrip creates an invitation and sends the email
func InviteToTrip(tripID uuid.UUID, invitedBy uuid.UUID, email string) {
	// Check if invitation already exists
	var existing models.Invitation
	err := database.DB.Where("trip_id = ? AND email = ? AND status = ?", tripID, email, "pending").
		First(&existing).Error
	if err == nil {
		log.Printf("⚠️  Invitation already exists for %s in trip %s", email, tripID)
		return
	}

	// Check if user is already registered
	var existingUser models.User
	if err := database.DB.Where("email = ?", email).First(&existingUser).Error; err == nil {
		// User exists, just add them to the trip
		var existingMember models.TripMember
		if err := database.DB.Where("trip_id = ? AND user_id = ?", tripID, existingUser.ID).First(&existingMember).Error; err != nil {
			database.DB.Create(&models.TripMember{
				TripID: tripID,
				UserID: existingUser.ID,
				Role:   "member",
			})
			log.Printf("✅ Added existing user %s to trip %s", email, tripID)
		}
		return
	}

	// Create invitation
	invitation := models.Invitation{
		TripID:    tripID,
		InvitedBy: invitedBy,
		Email:     email,
		Status:    "pending",
	}

	if err := database.DB.Create(&invitation).Error; err != nil {
		log.Printf("❌ Failed to create invitation: %v", err)
		return
	}

	// Send notification
	var inviter models.User
	database.DB.First(&inviter, invitedBy)
	var trip models.Trip
	database.DB.First(&trip, tripID)

	GetNotificationService().NotifyInvitation(email, inviter.Name, trip.Name)

	log.Printf("✅ Invitation sent to %s for trip %s", email, tripID)
}
