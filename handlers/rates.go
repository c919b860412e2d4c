package handlers

import (
	"net/http"
	"strings"
	"tripsettle-backend/database"
	"tripsettle-backend/models"
	"tripsettle-backend/settlement"
	"tripsettle-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GET /api/trips/:id/rates
func GetTripRates(c *gin.Context) {
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

	var rates []models.CurrencyRate
	database.DB.Where("trip_id = ?", tripID).Order("code").Find(&rates)

	utils.SuccessResponse(c, http.StatusOK, "", rates)
}

// PUT /api/trips/:id/rates
func UpsertTripRates(c *gin.Context) {
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

	var req models.UpsertRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	for _, input := range req.Rates {
		code := strings.ToUpper(input.Code)

		var rate models.CurrencyRate
		if err := database.DB.Where("trip_id = ? AND code = ?", tripID, code).First(&rate).Error; err == nil {
			database.DB.Model(&rate).Update("rate", input.Rate)
		} else {
			database.DB.Create(&models.CurrencyRate{
				TripID: tripID,
				Code:   code,
				Rate:   input.Rate,
			})
		}
	}

	database.InvalidateSettlement(c.Request.Context(), tripID)

	database.DB.Create(&models.Activity{
		TripID:      tripID,
		UserID:      userID,
		Type:        "rates_updated",
		Description: "Exchange rates updated",
	})

	var rates []models.CurrencyRate
	database.DB.Where("trip_id = ?", tripID).Order("code").Find(&rates)

	utils.SuccessResponse(c, http.StatusOK, "Rates updated", rates)
}

// Load a trip's rate table into the engine's format
func loadRateTable(tripID uuid.UUID) settlement.Rates {
	var rows []models.CurrencyRate
	database.DB.Where("trip_id = ?", tripID).Find(&rows)

	rates := make(settlement.Rates, len(rows))
	for _, r := range rows {
		rates[r.Code] = r.Rate
	}
	return rates
}
