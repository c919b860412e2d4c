package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"tripsettle-backend/database"
	"tripsettle-backend/models"
	"tripsettle-backend/services"
	"tripsettle-backend/settlement"
	"tripsettle-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// POST /api/trips/:id/transactions
func CreateTransaction(c *gin.Context) {
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

	var req models.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	payer := strings.TrimSpace(req.Payer)
	beneficiaries := cleanBeneficiaries(req.Beneficiaries)
	if payer == "" {
		utils.BadRequest(c, "Payer is required")
		return
	}
	if len(beneficiaries) == 0 {
		utils.BadRequest(c, "At least one beneficiary is required")
		return
	}

	var trip models.Trip
	database.DB.First(&trip, tripID)

	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = trip.BaseCurrency
	}

	transaction := models.Transaction{
		TripID:        tripID,
		Payer:         payer,
		Amount:        req.Amount,
		Currency:      currency,
		Beneficiaries: beneficiaries,
		Description:   strings.TrimSpace(req.Description),
		CreatedBy:     userID,
	}

	if err := database.DB.Create(&transaction).Error; err != nil {
		utils.InternalError(c, "Failed to create transaction")
		return
	}

	database.InvalidateSettlement(c.Request.Context(), tripID)

	// Log activity
	var creator models.User
	database.DB.First(&creator, userID)
	database.DB.Create(&models.Activity{
		TripID:      tripID,
		UserID:      userID,
		Type:        "transaction_added",
		ReferenceID: transaction.ID,
		Description: fmt.Sprintf("%s added \"%s\" (%s %.2f paid by %s)", creator.Name, transaction.Description, transaction.Currency, transaction.Amount, transaction.Payer),
	})

	// Notify other members asynchronously
	go services.GetNotificationService().NotifyTransactionAdded(transaction, creator, trip)

	utils.SuccessResponse(c, http.StatusCreated, "Transaction added", buildTransactionResponse(transaction, trip))
}

// GET /api/trips/:id/transactions
func GetTripTransactions(c *gin.Context) {
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

	var pagination utils.PaginationQuery
	c.ShouldBindQuery(&pagination)

	var trip models.Trip
	database.DB.First(&trip, tripID)

	var transactions []models.Transaction
	database.DB.Where("trip_id = ?", tripID).
		Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&transactions)

	var responses []models.TransactionResponse
	for _, tx := range transactions {
		responses = append(responses, buildTransactionResponse(tx, trip))
	}

	utils.SuccessResponse(c, http.StatusOK, "", responses)
}

// PUT /api/transactions/:id
func UpdateTransaction(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid transaction ID")
		return
	}

	var transaction models.Transaction
	if err := database.DB.First(&transaction, transactionID).Error; err != nil {
		utils.NotFound(c, "Transaction not found")
		return
	}

	if !isMember(transaction.TripID, userID) {
		utils.Unauthorized(c, "You are not a member of this trip")
		return
	}

	var req models.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if payer := strings.TrimSpace(req.Payer); payer != "" {
		updates["payer"] = payer
	}
	if req.Amount != nil {
		if *req.Amount < 0 {
			utils.BadRequest(c, "Amount cannot be negative")
			return
		}
		updates["amount"] = *req.Amount
	}
	if req.Currency != "" {
		updates["currency"] = strings.ToUpper(req.Currency)
	}
	if req.Beneficiaries != nil {
		beneficiaries := cleanBeneficiaries(req.Beneficiaries)
		if len(beneficiaries) == 0 {
			utils.BadRequest(c, "At least one beneficiary is required")
			return
		}
		updates["beneficiaries"] = pq.StringArray(beneficiaries)
	}
	if req.Description != "" {
		updates["description"] = strings.TrimSpace(req.Description)
	}

	database.DB.Model(&transaction).Updates(updates)
	database.InvalidateSettlement(c.Request.Context(), transaction.TripID)

	var editor models.User
	database.DB.First(&editor, userID)
	database.DB.Create(&models.Activity{
		TripID:      transaction.TripID,
		UserID:      userID,
		Type:        "transaction_updated",
		ReferenceID: transaction.ID,
		Description: fmt.Sprintf("%s updated \"%s\"", editor.Name, transaction.Description),
	})

	database.DB.First(&transaction, transactionID)
	var trip models.Trip
	database.DB.First(&trip, transaction.TripID)

	utils.SuccessResponse(c, http.StatusOK, "Transaction updated", buildTransactionResponse(transaction, trip))
}

// DELETE /api/transactions/:id
func DeleteTransaction(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid transaction ID")
		return
	}

	var transaction models.Transaction
	if err := database.DB.First(&transaction, transactionID).Error; err != nil {
		utils.NotFound(c, "Transaction not found")
		return
	}

	if !isMember(transaction.TripID, userID) {
		utils.Unauthorized(c, "You are not a member of this trip")
		return
	}

	// Log before deleting
	var deleter models.User
	database.DB.First(&deleter, userID)
	database.DB.Create(&models.Activity{
		TripID:      transaction.TripID,
		UserID:      userID,
		Type:        "transaction_deleted",
		Description: fmt.Sprintf("%s deleted \"%s\" (%s %.2f)", deleter.Name, transaction.Description, transaction.Currency, transaction.Amount),
	})

	database.DB.Delete(&transaction)
	database.InvalidateSettlement(c.Request.Context(), transaction.TripID)

	utils.SuccessResponse(c, http.StatusOK, "Transaction deleted", nil)
}

// cleanBeneficiaries trims surrounding whitespace and drops empty entries.
// Order and duplicates are kept: a name listed twice owes two shares.
// No case folding happens anywhere; differently-cased names are different
// people.
func cleanBeneficiaries(input []string) []string {
	var out []string
	for _, b := range input {
		if trimmed := strings.TrimSpace(b); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func buildTransactionResponse(tx models.Transaction, trip models.Trip) models.TransactionResponse {
	converted := tx.Amount
	if tx.Currency != trip.BaseCurrency {
		rates := loadRateTable(trip.ID)
		if value, err := settlement.Convert(tx.Amount, tx.Currency, trip.BaseCurrency, rates); err == nil {
			converted = value
		}
	}

	return models.TransactionResponse{
		ID:              tx.ID,
		TripID:          tx.TripID,
		Payer:           tx.Payer,
		Amount:          tx.Amount,
		Currency:        tx.Currency,
		AmountConverted: utils.RoundToTwo(converted),
		Beneficiaries:   tx.Beneficiaries,
		Description:     tx.Description,
		CreatedAt:       tx.CreatedAt,
	}
}
