package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"tripsettle-backend/database"
	"tripsettle-backend/models"
	"tripsettle-backend/settlement"
	"tripsettle-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GET /api/trips/:id/export?currency=EUR
//
// Downloads the trip's transactions as a JSON file with every amount
// converted into the chosen currency (defaults to the trip's base).
func ExportTransactions(c *gin.Context) {
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

	var trip models.Trip
	if err := database.DB.First(&trip, tripID).Error; err != nil {
		utils.NotFound(c, "Trip not found")
		return
	}

	currency := strings.ToUpper(c.DefaultQuery("currency", trip.BaseCurrency))
	rates := loadRateTable(tripID)

	var transactions []models.Transaction
	database.DB.Where("trip_id = ?", tripID).Order("created_at").Find(&transactions)

	out := make([]models.ExportedTransaction, 0, len(transactions))
	for _, tx := range transactions {
		converted, err := settlement.Convert(tx.Amount, tx.Currency, currency, rates)
		if err != nil {
			var missing *settlement.MissingRateError
			if errors.As(err, &missing) {
				utils.BadRequest(c, missing.Error())
				return
			}
			utils.InternalError(c, "Failed to convert transactions")
			return
		}

		out = append(out, models.ExportedTransaction{
			Payer:         tx.Payer,
			Amount:        utils.RoundToTwo(converted),
			Currency:      currency,
			Beneficiaries: tx.Beneficiaries,
			Description:   tx.Description,
		})
	}

	filename := fmt.Sprintf("transactions_%s.json", currency)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.JSON(http.StatusOK, out)
}

// POST /api/trips/:id/import
//
// Replaces the trip's transactions with the uploaded JSON array, the way
// the old web app's import worked. Records with an unknown or missing
// currency fall back to the trip's base currency.
func ImportTransactions(c *gin.Context) {
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

	var imported []models.ExportedTransaction
	if err := c.ShouldBindJSON(&imported); err != nil {
		utils.BadRequest(c, "Invalid JSON format: expected an array of transactions")
		return
	}

	var trip models.Trip
	if err := database.DB.First(&trip, tripID).Error; err != nil {
		utils.NotFound(c, "Trip not found")
		return
	}

	rates := loadRateTable(tripID)

	// Full replace, matching the original import semantics
	database.DB.Where("trip_id = ?", tripID).Delete(&models.Transaction{})

	count := 0
	for _, record := range imported {
		payer := strings.TrimSpace(record.Payer)
		beneficiaries := cleanBeneficiaries(record.Beneficiaries)
		if payer == "" || record.Amount < 0 {
			continue
		}

		currency := strings.ToUpper(record.Currency)
		if _, known := rates[currency]; !known {
			currency = trip.BaseCurrency
		}

		database.DB.Create(&models.Transaction{
			TripID:        tripID,
			Payer:         payer,
			Amount:        record.Amount,
			Currency:      currency,
			Beneficiaries: beneficiaries,
			Description:   strings.TrimSpace(record.Description),
			CreatedBy:     userID,
		})
		count++
	}

	database.InvalidateSettlement(c.Request.Context(), tripID)

	var importer models.User
	database.DB.First(&importer, userID)
	database.DB.Create(&models.Activity{
		TripID:      tripID,
		UserID:      userID,
		Type:        "import",
		Description: fmt.Sprintf("%s imported %d transactions", importer.Name, count),
	})

	utils.SuccessResponse(c, http.StatusOK, fmt.Sprintf("Imported %d transactions", count), nil)
}
