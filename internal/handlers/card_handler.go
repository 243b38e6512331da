package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "cardmile/internal/errors"
	"cardmile/internal/pagination"
	"cardmile/internal/services"
)

// CardHandler handles card-related requests.
type CardHandler struct {
	cardService      services.CardServicer
	dashboardService services.DashboardServicer
	auditService     services.AuditServicer
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cardService services.CardServicer, dashboardService services.DashboardServicer, auditService services.AuditServicer) *CardHandler {
	return &CardHandler{cardService: cardService, dashboardService: dashboardService, auditService: auditService}
}

// CardRequest represents the payload for creating or replacing a card.
// Monetary amounts are in paise.
type CardRequest struct {
	CardCompany      string `json:"card_company" binding:"required,min=1,max=100"`
	CardName         string `json:"card_name" binding:"required,min=1,max=100"`
	CardNetwork      string `json:"card_network" binding:"required,min=1,max=50"`
	AnniversaryMonth int    `json:"anniversary_month" binding:"required,min=1,max=12"`
	BillingDate      int    `json:"billing_date" binding:"required,min=1,max=31"`
	DueDate          int    `json:"due_date" binding:"required,min=1,max=31"`
	AnnualFee        int64  `json:"annual_fee" binding:"gte=0"`
	MilestoneAmount  int64  `json:"milestone_amount" binding:"gte=0"`
	CardLimit        *int64 `json:"card_limit" binding:"omitempty,gt=0"`
}

func (r *CardRequest) toInput() services.CardInput {
	return services.CardInput{
		CardCompany:      r.CardCompany,
		CardName:         r.CardName,
		CardNetwork:      r.CardNetwork,
		AnniversaryMonth: r.AnniversaryMonth,
		BillingDate:      r.BillingDate,
		DueDate:          r.DueDate,
		AnnualFee:        r.AnnualFee,
		MilestoneAmount:  r.MilestoneAmount,
		CardLimit:        r.CardLimit,
	}
}

// CreateCard handles the creation of a new card.
// @Summary     Create a card
// @Description Add a credit card with its anniversary month and milestone
// @Tags        cards
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CardRequest true "Card details"
// @Success     201 {object} models.Card "Card created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cards [post]
func (h *CardHandler) CreateCard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	card, err := h.cardService.CreateCard(userID, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.dashboardService.Invalidate(userID)
	h.auditService.Log(userID, "CREATE_CARD", "card", card.ID, c.ClientIP(),
		map[string]interface{}{"card_name": req.CardName, "anniversary_month": req.AnniversaryMonth})

	c.JSON(http.StatusCreated, gin.H{"card": card})
}

// GetCards handles listing cards for the authenticated user.
// @Summary     Get cards
// @Description Get a paginated list of the user's cards
// @Tags        cards
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Card] "Paginated cards"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cards [get]
func (h *CardHandler) GetCards(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.cardService.GetUserCards(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCard handles retrieving a specific card.
// @Summary     Get card by ID
// @Description Get a specific card by ID
// @Tags        cards
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Card ID"
// @Success     200 {object} models.Card "Card details"
// @Failure     400 {object} ErrorResponse "Invalid card ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Card not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cards/{id} [get]
func (h *CardHandler) GetCard(c *gin.Context) {
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

	card, err := h.cardService.GetCardByID(userID, cardID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"card": card})
}

// UpdateCard handles replacing a card's attributes.
// @Summary     Update card
// @Description Replace a card's attributes
// @Tags        cards
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string      true "Card ID"
// @Param       request body CardRequest true "Updated card details"
// @Success     200 {object} models.Card "Updated card"
// @Failure     400 {object} ErrorResponse "Invalid input or card ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Card not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cards/{id} [put]
func (h *CardHandler) UpdateCard(c *gin.Context) {
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

	var req CardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	card, err := h.cardService.UpdateCard(userID, cardID, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.dashboardService.Invalidate(userID)
	h.auditService.Log(userID, "UPDATE_CARD", "card", cardID, c.ClientIP(),
		map[string]interface{}{"card_name": req.CardName})

	c.JSON(http.StatusOK, gin.H{"card": card})
}

// DeleteCard handles deleting a card.
// @Summary     Delete card
// @Description Delete a card and its monthly spends (soft delete)
// @Tags        cards
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Card ID"
// @Success     200 {object} MessageResponse "Card deleted"
// @Failure     400 {object} ErrorResponse "Invalid card ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Card not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cards/{id} [delete]
func (h *CardHandler) DeleteCard(c *gin.Context) {
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

	if err := h.cardService.DeleteCard(userID, cardID); err != nil {
		respondWithError(c, err)
		return
	}

	h.dashboardService.Invalidate(userID)
	h.auditService.Log(userID, "DELETE_CARD", "card", cardID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Card deleted successfully"})
}

// GetCycleSummary handles retrieving a card's current-cycle state.
// @Summary     Get card cycle summary
// @Description Get the card's current anniversary cycle with spend, remaining, progress, and urgency
// @Tags        cards
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Card ID"
// @Success     200 {object} services.CycleSummary "Cycle summary"
// @Failure     400 {object} ErrorResponse "Invalid card ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Card not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cards/{id}/cycle [get]
func (h *CardHandler) GetCycleSummary(c *gin.Context) {
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

	summary, err := h.cardService.GetCycleSummary(userID, cardID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetDashboardSummary handles retrieving the all-cards summary.
// @Summary     Get dashboard summary
// @Description Get current-cycle totals across all of the user's cards
// @Tags        cards
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.DashboardSummary "Dashboard summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cards/summary [get]
func (h *CardHandler) GetDashboardSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.dashboardService.GetSummary(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message"`
}
