package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "cardmile/internal/errors"
	"cardmile/internal/services"
)

// SpendHandler handles monthly spend requests.
type SpendHandler struct {
	spendService     services.SpendServicer
	dashboardService services.DashboardServicer
	auditService     services.AuditServicer
}

// NewSpendHandler creates a new SpendHandler.
func NewSpendHandler(spendService services.SpendServicer, dashboardService services.DashboardServicer, auditService services.AuditServicer) *SpendHandler {
	return &SpendHandler{spendService: spendService, dashboardService: dashboardService, auditService: auditService}
}

// UpsertSpendRequest represents the payload for recording a month's spend.
// Amount is in paise.
type UpsertSpendRequest struct {
	Month       string `json:"month" binding:"required,month_key"`
	AmountSpent int64  `json:"amount_spent" binding:"gte=0"`
}

// ListCycleSpends handles listing a card's current-cycle spends.
// @Summary     List cycle spends
// @Description Get the card's current cycle window with its recorded monthly spends
// @Tags        spends
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Card ID"
// @Success     200 {object} services.CycleSpends "Cycle window and spends"
// @Failure     400 {object} ErrorResponse "Invalid card ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Card not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cards/{id}/spends [get]
func (h *SpendHandler) ListCycleSpends(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	cardID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.spendService.ListCycleSpends(userID, cardID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpsertSpend handles recording a month's spend for a card.
// @Summary     Record monthly spend
// @Description Insert or update the amount spent in one month of the card's current cycle
// @Tags        spends
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string             true "Card ID"
// @Param       request body UpsertSpendRequest true "Month and amount"
// @Success     200 {object} models.MonthlySpend "Recorded spend"
// @Failure     400 {object} ErrorResponse "Invalid input or month outside cycle"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Card not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cards/{id}/spends [put]
func (h *SpendHandler) UpsertSpend(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	cardID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpsertSpendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	spend, err := h.spendService.UpsertSpend(userID, cardID, req.Month, req.AmountSpent)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.dashboardService.Invalidate(userID)
	h.auditService.Log(userID, "UPSERT_SPEND", "monthly_spend", spend.ID, c.ClientIP(),
		map[string]interface{}{"month": req.Month, "amount_spent": req.AmountSpent})

	c.JSON(http.StatusOK, gin.H{"spend": spend})
}
