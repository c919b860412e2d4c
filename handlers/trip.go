package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"tripsettle-backend/config"
	"tripsettle-backend/database"
	"tripsettle-backend/models"
	"tripsettle-backend/services"
	"tripsettle-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /api/trips
func CreateTrip(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var req models.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	baseCurrency := strings.ToUpper(req.BaseCurrency)
	if baseCurrency == "" {
		baseCurrency = config.AppConfig.DefaultCurrency
	}

	trip := models.Trip{
		Name:         req.Name,
		BaseCurrency: baseCurrency,
		CreatedBy:    userID,
	}

	if err := database.DB.Create(&trip).Error; err != nil {
		utils.InternalError(c, "Failed to create trip")
		return
	}

	// Add creator as admin member
	member := models.TripMember{
		TripID: trip.ID,
		UserID: userID,
		Role:   "admin",
	}
	database.DB.Create(&member)

	seedRateTable(trip)

	// Add other members if provided
	for _, memberInput := range req.Members {
		memberUUID, err := uuid.Parse(memberInput)
		if err != nil {
			// Might be an email, try to find user
			var user models.User
			if dbErr := database.DB.Where("email = ?", memberInput).First(&user).Error; dbErr == nil {
				memberUUID = user.ID
			} else {
				// Send invitation
				go services.InviteToTrip(trip.ID, userID, memberInput)
				continue
			}
		}

		if memberUUID != userID {
			database.DB.Create(&models.TripMember{
				TripID: trip.ID,
				UserID: memberUUID,
				Role:   "member",
			})
		}
	}

	// Log activity
	var creator models.User
	database.DB.First(&creator, userID)
	database.DB.Create(&models.Activity{
		TripID:      trip.ID,
		UserID:      userID,
		Type:        "trip_created",
		ReferenceID: trip.ID,
		Description: fmt.Sprintf("%s created trip \"%s\"", creator.Name, trip.Name),
	})

	response := buildTripResponse(trip.ID)
	utils.SuccessResponse(c, http.StatusCreated, "Trip created", response)
}

// GET /api/trips
func GetTrips(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var memberships []models.TripMember
	database.DB.Where("user_id = ?", userID).Find(&memberships)

	var tripIDs []uuid.UUID
	for _, m := range memberships {
		tripIDs = append(tripIDs, m.TripID)
	}

	var trips []models.Trip
	if len(tripIDs) > 0 {
		database.DB.Where("id IN ?", tripIDs).Order("created_at DESC").Find(&trips)
	}

	var responses []models.TripResponse
	for _, t := range trips {
		responses = append(responses, buildTripResponse(t.ID))
	}

	utils.SuccessResponse(c, http.StatusOK, "", responses)
}

// GET /api/trips/:id
func GetTrip(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid trip ID")
		return
	}

	if !isMember(tripID, userID) {
		utils.Unauthorized(c, "You are not a member of this trip")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", buildTripResponse(tripID))
}

// PUT /api/trips/:id
func UpdateTrip(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid trip ID")
		return
	}

	if !isMember(tripID, userID) {
		utils.Unauthorized(c, "You are not a member of this trip")
		return
	}

	var req models.UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var trip models.Trip
	if err := database.DB.First(&trip, tripID).Error; err != nil {
		utils.NotFound(c, "Trip not found")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.BaseCurrency != "" {
		updates["base_currency"] = strings.ToUpper(req.BaseCurrency)
	}

	database.DB.Model(&trip).Updates(updates)

	// A new base currency changes every computed aggregate
	if req.BaseCurrency != "" {
		database.InvalidateSettlement(c.Request.Context(), tripID)
	}

	utils.SuccessResponse(c, http.StatusOK, "Trip updated", buildTripResponse(tripID))
}

// POST /api/trips/:id/members
func AddMember(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid trip ID")
		return
	}

	if !isMember(tripID, userID) {
		utils.Unauthorized(c, "You are not a member of this trip")
		return
	}

	var req models.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var user models.User
	if req.UserID != "" {
		memberUUID, err := uuid.Parse(req.UserID)
		if err != nil {
			utils.BadRequest(c, "Invalid user ID")
			return
		}
		if err := database.DB.First(&user, memberUUID).Error; err != nil {
			utils.NotFound(c, "User not found")
			return
		}
	} else if req.Email != "" {
		if err := database.DB.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
			// Not registered yet, send an invitation instead
			go services.InviteToTrip(tripID, userID, req.Email)
			utils.SuccessResponse(c, http.StatusOK, "Invitation sent", nil)
			return
		}
	} else {
		utils.BadRequest(c, "user_id or email required")
		return
	}

	var existing models.TripMember
	if err := database.DB.Where("trip_id = ? AND user_id = ?", tripID, user.ID).First(&existing).Error; err == nil {
		utils.BadRequest(c, "User is already a member")
		return
	}

	database.DB.Create(&models.TripMember{
		TripID: tripID,
		UserID: user.ID,
		Role:   "member",
	})

	var adder models.User
	database.DB.First(&adder, userID)
	var trip models.Trip
	database.DB.First(&trip, tripID)

	database.DB.Create(&models.Activity{
		TripID:      tripID,
		UserID:      userID,
		Type:        "member_joined",
		Description: fmt.Sprintf("%s added %s to \"%s\"", adder.Name, user.Name, trip.Name),
	})

	go services.GetNotificationService().NotifyMemberAdded(trip, adder, user)

	utils.SuccessResponse(c, http.StatusOK, "Member added", buildTripResponse(tripID))
}

// DELETE /api/trips/:id/members/:uid
func RemoveMember(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid trip ID")
		return
	}
	targetID, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		utils.BadRequest(c, "Invalid user ID")
		return
	}

	if !isMember(tripID, userID) {
		utils.Unauthorized(c, "You are not a member of this trip")
		return
	}

	// Members may remove themselves; removing others needs admin
	if targetID != userID {
		var membership models.TripMember
		database.DB.Where("trip_id = ? AND user_id = ?", tripID, userID).First(&membership)
		if membership.Role != "admin" {
			utils.Unauthorized(c, "Only admins can remove other members")
			return
		}
	}

	database.DB.Where("trip_id = ? AND user_id = ?", tripID, targetID).Delete(&models.TripMember{})

	utils.SuccessResponse(c, http.StatusOK, "Member removed", nil)
}

// POST /api/trips/:id/invite
func InviteToTripHandler(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid trip ID")
		return
	}

	if !isMember(tripID, userID) {
		utils.Unauthorized(c, "You are not a member of this trip")
		return
	}

	var req models.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	go services.InviteToTrip(tripID, userID, strings.ToLower(req.Email))

	utils.SuccessResponse(c, http.StatusOK, "Invitation sent", nil)
}

// Check if a user is a member of a trip
func isMember(tripID, userID uuid.UUID) bool {
	var member models.TripMember
	err := database.DB.Where("trip_id = ? AND user_id = ?", tripID, userID).First(&member).Error
	return err == nil
}

// Seed a new trip's rate table with the default currencies, making sure
// its base currency is present.
func seedRateTable(trip models.Trip) {
	seeded := false
	for code, rate := range models.DefaultCurrencies {
		database.DB.Create(&models.CurrencyRate{
			TripID: trip.ID,
			Code:   code,
			Rate:   rate,
		})
		if code == trip.BaseCurrency {
			seeded = true
		}
	}
	if !seeded {
		database.DB.Create(&models.CurrencyRate{
			TripID: trip.ID,
			Code:   trip.BaseCurrency,
			Rate:   1.0,
		})
	}
}

// Build trip response with member details
func buildTripResponse(tripID uuid.UUID) models.TripResponse {
	var trip models.Trip
	if err := database.DB.First(&trip, tripID).Error; err != nil {
		return models.TripResponse{}
	}

	var members []models.TripMember
	database.DB.Where("trip_id = ?", tripID).Preload("User").Find(&members)

	var memberResponses []models.TripMemberResponse
	for _, m := range members {
		memberResponses = append(memberResponses, models.TripMemberResponse{
			UserID:   m.UserID,
			Name:     m.User.Name,
			Email:    m.User.Email,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		})
	}

	return models.TripResponse{
		ID:           trip.ID,
		Name:         trip.Name,
		BaseCurrency: trip.BaseCurrency,
		CreatedBy:    trip.CreatedBy,
		Members:      memberResponses,
		CreatedAt:    trip.CreatedAt,
	}
}
