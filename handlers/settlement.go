package handlers

import (
	"errors"
	"net/http"
	"tripsettle-backend/database"
	"tripsettle-backend/models"
	"tripsettle-backend/settlement"
	"tripsettle-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GET /api/trips/:id/settlement?policy=proportional|greedy
//
// Loads one consistent snapshot of the trip's records, runs the settlement
// engine over it and returns the full picture: per-person balances, the
// debt matrix after netting out repayments, and any repayment leftovers.
func GetTripSettlement(c *gin.Context) {
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

	policy := settlement.Policy(c.DefaultQuery("policy", string(settlement.PolicyProportional)))
	if !policy.Valid() {
		utils.BadRequest(c, "Unknown policy: "+string(policy))
		return
	}

	var cached models.SettlementSummary
	if database.GetCachedSettlement(c.Request.Context(), tripID, string(policy), &cached) {
		utils.SuccessResponse(c, http.StatusOK, "", cached)
		return
	}

	var trip models.Trip
	if err := database.DB.First(&trip, tripID).Error; err != nil {
		utils.NotFound(c, "Trip not found")
		return
	}

	input := loadSettlementInput(trip)
	input.Policy = policy

	result, err := settlement.Settle(input)
	if err != nil {
		var missing *settlement.MissingRateError
		if errors.As(err, &missing) {
			utils.BadRequest(c, missing.Error())
			return
		}
		utils.InternalError(c, "Failed to compute settlement")
		return
	}

	var totalSpent float64
	for _, b := range result.Balances {
		totalSpent += b.Paid
	}

	summary := models.SettlementSummary{
		TripID:           tripID,
		TripName:         trip.Name,
		Currency:         trip.BaseCurrency,
		Policy:           policy,
		Balances:         result.Balances,
		AdjustedBalances: result.AdjustedBalances,
		Matrix:           result.Matrix,
		Leftovers:        result.Leftovers,
		TotalSpent:       utils.RoundToTwo(totalSpent),
	}

	database.CacheSettlement(c.Request.Context(), tripID, string(policy), summary)

	utils.SuccessResponse(c, http.StatusOK, "", summary)
}

// GET /api/trips/:id/lodging?keyword=nocleg
//
// Per-person share totals restricted to transactions whose description
// matches the keyword. Defaults to "nocleg", the tag trips historically
// used for accommodation costs.
func GetTripLodgingSummary(c *gin.Context) {
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

	keyword := c.DefaultQuery("keyword", "nocleg")

	var trip models.Trip
	if err := database.DB.First(&trip, tripID).Error; err != nil {
		utils.NotFound(c, "Trip not found")
		return
	}

	input := loadSettlementInput(trip)

	shares, err := settlement.SummarizeByKeyword(input.Transactions, keyword, trip.BaseCurrency, input.Rates)
	if err != nil {
		var missing *settlement.MissingRateError
		if errors.As(err, &missing) {
			utils.BadRequest(c, missing.Error())
			return
		}
		utils.InternalError(c, "Failed to compute lodging summary")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", models.LodgingSummary{
		TripID:   tripID,
		Keyword:  keyword,
		Currency: trip.BaseCurrency,
		Shares:   shares,
	})
}

// loadSettlementInput assembles the engine's immutable snapshot from the
// trip's stored records. The engine itself never touches the database.
func loadSettlementInput(trip models.Trip) settlement.Input {
	var transactions []models.Transaction
	database.DB.Where("trip_id = ?", trip.ID).Order("created_at").Find(&transactions)

	var repayments []models.Repayment
	database.DB.Where("trip_id = ?", trip.ID).Order("created_at").Find(&repayments)

	input := settlement.Input{
		ReferenceCurrency: trip.BaseCurrency,
		Rates:             loadRateTable(trip.ID),
		Policy:            settlement.PolicyProportional,
	}

	for _, tx := range transactions {
		input.Transactions = append(input.Transactions, settlement.Transaction{
			Payer:         tx.Payer,
			Amount:        tx.Amount,
			Currency:      tx.Currency,
			Beneficiaries: tx.Beneficiaries,
			Description:   tx.Description,
		})
	}

	for _, r := range repayments {
		input.Repayments = append(input.Repayments, settlement.Repayment{
			From:     r.FromPerson,
			To:       r.ToPerson,
			Amount:   r.Amount,
			Currency: r.Currency,
			Note:     r.Note,
		})
	}

	return input
}
