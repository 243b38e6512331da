package services

import (
	"gorm.io/gorm"

	apperrors "cardmile/internal/errors"
	"cardmile/internal/insights"
	"cardmile/internal/models"
)

// insightsService loads a user's rows and hands them to the aggregation
// engine. If any fetch fails the error propagates and no aggregation
// runs; partial inputs are never aggregated.
type insightsService struct {
	db *gorm.DB
}

// NewInsightsService creates a new InsightsServicer.
func NewInsightsService(db *gorm.DB) InsightsServicer {
	return &insightsService{db: db}
}

func (s *insightsService) loadTransactions(userID string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.Where("user_id = ?", userID).Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

func (s *insightsService) loadCategories(userID string) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Where("user_id = ?", userID).Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// SpendingTrends buckets the user's expenses by period and sums each bucket.
func (s *insightsService) SpendingTrends(userID string, period insights.TrendPeriod) ([]insights.TrendPoint, error) {
	transactions, err := s.loadTransactions(userID)
	if err != nil {
		return nil, err
	}
	return insights.SpendingTrends(transactions, period), nil
}

// CategoryBreakdown sums the user's expenses per category.
func (s *insightsService) CategoryBreakdown(userID string) ([]insights.CategoryAmount, error) {
	transactions, err := s.loadTransactions(userID)
	if err != nil {
		return nil, err
	}
	categories, err := s.loadCategories(userID)
	if err != nil {
		return nil, err
	}
	return insights.CategoryBreakdown(transactions, categories), nil
}

// BudgetVsActual pairs allocated amounts with actual spend per category.
func (s *insightsService) BudgetVsActual(userID string) ([]insights.BudgetActual, error) {
	transactions, err := s.loadTransactions(userID)
	if err != nil {
		return nil, err
	}
	categories, err := s.loadCategories(userID)
	if err != nil {
		return nil, err
	}

	// Allocations for all of the user's budgets.
	var allocations []models.BudgetCategory
	if err := s.db.
		Joins("JOIN budgets ON budgets.id = budget_categories.budget_id").
		Where("budgets.user_id = ? AND budgets.deleted_at IS NULL", userID).
		Find(&allocations).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return insights.BudgetVsActual(categories, transactions, allocations), nil
}

// Forecast extends the user's spending trend with a naive projection.
func (s *insightsService) Forecast(userID string, period insights.TrendPeriod) (*insights.ForecastResult, error) {
	transactions, err := s.loadTransactions(userID)
	if err != nil {
		return nil, err
	}
	result := insights.Forecast(transactions, period)
	return &result, nil
}

// BudgetProgressList reports every budget's spend against its total.
func (s *insightsService) BudgetProgressList(userID string) ([]insights.BudgetProgress, error) {
	var budgets []models.Budget
	if err := s.db.Where("user_id = ?", userID).Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	transactions, err := s.loadTransactions(userID)
	if err != nil {
		return nil, err
	}

	return insights.BudgetProgressList(budgets, transactions), nil
}
