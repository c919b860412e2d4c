package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"tripsettle-backend/database"
	"tripsettle-backend/models"
	"tripsettle-backend/services"
	"tripsettle-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /api/trips/:id/repayments
func CreateRepayment(c *gin.Context) {
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

	var req models.CreateRepaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	from := strings.TrimSpace(req.From)
	to := strings.TrimSpace(req.To)
	if from == "" || to == "" {
		utils.BadRequest(c, "Both from and to are required")
		return
	}
	if from == to {
		utils.BadRequest(c, "A person cannot repay themselves")
		return
	}

	var trip models.Trip
	database.DB.First(&trip, tripID)

	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = trip.BaseCurrency
	}

	repayment := models.Repayment{
		TripID:     tripID,
		FromPerson: from,
		ToPerson:   to,
		Amount:     req.Amount,
		Currency:   currency,
		Note:       strings.TrimSpace(req.Note),
		CreatedBy:  userID,
	}

	if err := database.DB.Create(&repayment).Error; err != nil {
		utils.InternalError(c, "Failed to create repayment")
		return
	}

	database.InvalidateSettlement(c.Request.Context(), tripID)

	var creator models.User
	database.DB.First(&creator, userID)
	database.DB.Create(&models.Activity{
		TripID:      tripID,
		UserID:      userID,
		Type:        "repayment",
		ReferenceID: repayment.ID,
		Description: fmt.Sprintf("%s paid %s %s %.2f", from, to, currency, req.Amount),
	})

	go services.GetNotificationService().NotifyRepayment(repayment, creator, trip)

	utils.SuccessResponse(c, http.StatusCreated, "Repayment recorded", repayment)
}

// GET /api/trips/:id/repayments
func GetTripRepayments(c *gin.Context) {
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

	var repayments []models.Repayment
	database.DB.Where("trip_id = ?", tripID).
		Order("created_at DESC").
		Find(&repayments)

	utils.SuccessResponse(c, http.StatusOK, "", repayments)
}

// DELETE /api/repayments/:id
func DeleteRepayment(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	repaymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid repayment ID")
		return
	}

	var repayment models.Repayment
	if err := database.DB.First(&repayment, repaymentID).Error; err != nil {
		utils.NotFound(c, "Repayment not found")
		return
	}

	if !isMember(repayment.TripID, userID) {
		utils.Unauthorized(c, "You are not a member of this trip")
		return
	}

	database.DB.Delete(&repayment)
	database.InvalidateSettlement(c.Request.Context(), repayment.TripID)

	utils.SuccessResponse(c, http.StatusOK, "Repayment deleted", nil)
}
