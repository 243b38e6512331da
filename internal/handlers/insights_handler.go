package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "cardmile/internal/errors"
	"cardmile/internal/insights"
	"cardmile/internal/services"
)

// InsightsHandler handles aggregation and reporting requests.
type InsightsHandler struct {
	insightsService services.InsightsServicer
}

// NewInsightsHandler creates a new InsightsHandler.
func NewInsightsHandler(insightsService services.InsightsServicer) *InsightsHandler {
	return &InsightsHandler{insightsService: insightsService}
}

// parseTrendPeriod reads the optional period query parameter, defaulting
// to monthly.
func parseTrendPeriod(c *gin.Context) (insights.TrendPeriod, error) {
	v := c.DefaultQuery("period", string(insights.PeriodMonthly))
	period := insights.TrendPeriod(v)
	switch period {
	case insights.PeriodMonthly, insights.PeriodWeekly, insights.PeriodDaily:
		return period, nil
	}
	return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "period must be 'monthly', 'weekly', or 'daily'")
}

// GetSpendingTrends handles the spending trend report.
// @Summary     Get spending trends
// @Description Get expense totals bucketed by period
// @Tags        insights
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       period query string false "Bucket size (monthly/weekly/daily, default monthly)"
// @Success     200 {array} insights.TrendPoint "Trend points"
// @Failure     400 {object} ErrorResponse "Invalid period"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights/trends [get]
func (h *InsightsHandler) GetSpendingTrends(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	period, err := parseTrendPeriod(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	points, err := h.insightsService.SpendingTrends(userID, period)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trends": points})
}

// GetCategoryBreakdown handles the per-category expense report.
// @Summary     Get category breakdown
// @Description Get expense totals summed per category
// @Tags        insights
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} insights.CategoryAmount "Category totals"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights/categories [get]
func (h *InsightsHandler) GetCategoryBreakdown(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	breakdown, err := h.insightsService.CategoryBreakdown(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"breakdown": breakdown})
}

// GetBudgetVsActual handles the allocation-versus-spend report.
// @Summary     Get budget vs actual
// @Description Compare allocated amounts with actual spend per category
// @Tags        insights
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} insights.BudgetActual "Allocated and spent per category"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights/budget-vs-actual [get]
func (h *InsightsHandler) GetBudgetVsActual(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rows, err := h.insightsService.BudgetVsActual(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comparison": rows})
}

// GetForecast handles the spending forecast report.
// @Summary     Get spending forecast
// @Description Get the spending trend extended with a naive projection
// @Tags        insights
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       period query string false "Bucket size (monthly/weekly/daily, default monthly)"
// @Success     200 {object} insights.ForecastResult "Trend with forecast point"
// @Failure     400 {object} ErrorResponse "Invalid period"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights/forecast [get]
func (h *InsightsHandler) GetForecast(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	period, err := parseTrendPeriod(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.insightsService.Forecast(userID, period)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBudgetProgressList handles the all-budgets progress report.
// @Summary     Get budget progress list
// @Description Get spend-against-total progress for every budget
// @Tags        insights
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} insights.BudgetProgress "Per-budget progress"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights/budget-progress [get]
func (h *InsightsHandler) GetBudgetProgressList(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	list, err := h.insightsService.BudgetProgressList(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": list})
}
