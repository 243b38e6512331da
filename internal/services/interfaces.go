package services

import (
	"context"
	"time"

	"cardmile/internal/cycle"
	"cardmile/internal/insights"
	"cardmile/internal/models"
	"cardmile/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// CardInput carries the card attributes shared by create and update.
// Monetary fields are int64 minor units (paise).
type CardInput struct {
	CardCompany      string
	CardName         string
	CardNetwork      string
	AnniversaryMonth int
	BillingDate      int
	DueDate          int
	AnnualFee        int64
	MilestoneAmount  int64
	CardLimit        *int64
}

// CycleSummary is the derived state of a card's current milestone cycle.
type CycleSummary struct {
	CardID           string       `json:"card_id"`
	Window           cycle.Window `json:"window"`
	Milestone        int64        `json:"milestone"`
	Spent            int64        `json:"spent"`
	Remaining        int64        `json:"remaining"`
	Progress         float64      `json:"progress"`
	Urgent           bool         `json:"urgent"`
	EndsOn           time.Time    `json:"ends_on"`
	MilestoneDisplay string       `json:"milestone_display"`
	SpentDisplay     string       `json:"spent_display"`
	RemainingDisplay string       `json:"remaining_display"`
}

// CardServicer defines the contract for card-related business logic.
type CardServicer interface {
	CreateCard(userID string, input CardInput) (*models.Card, error)
	GetUserCards(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Card], error)
	GetCardByID(userID, cardID string) (*models.Card, error)
	UpdateCard(userID, cardID string, input CardInput) (*models.Card, error)
	DeleteCard(userID, cardID string) error
	GetCycleSummary(userID, cardID string) (*CycleSummary, error)
}

// CycleSpends is a card's current window with its recorded monthly spends.
type CycleSpends struct {
	Window cycle.Window          `json:"window"`
	Spends []models.MonthlySpend `json:"spends"`
}

// SpendServicer defines the contract for monthly spend tracking.
type SpendServicer interface {
	ListCycleSpends(userID, cardID string) (*CycleSpends, error)
	UpsertSpend(userID, cardID, month string, amountSpent int64) (*models.MonthlySpend, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID, name, icon, color string, isDefault bool) (*models.Category, error)
	GetUserCategories(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	UpdateCategory(userID, categoryID, name, icon, color string) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(userID, categoryID, name string, totalAmount int64, periodType models.BudgetPeriod, startDate time.Time, endDate *time.Time) (*models.Budget, error)
	GetUserBudgets(userID string, page pagination.PageRequest, isActive *bool, periodType *models.BudgetPeriod) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(userID, budgetID string) (*models.Budget, error)
	UpdateBudget(userID, budgetID, name string, totalAmount *int64, periodType *models.BudgetPeriod, endDate *time.Time) (*models.Budget, error)
	DeleteBudget(userID, budgetID string) error
	GetBudgetProgress(userID, budgetID string) (*insights.BudgetProgress, error)

	ListAllocations(userID, budgetID string) ([]models.BudgetCategory, error)
	AddAllocation(userID, budgetID, categoryID string, allocatedAmount int64) (*models.BudgetCategory, error)
	UpdateAllocation(userID, budgetID, allocationID string, allocatedAmount int64) (*models.BudgetCategory, error)
	RemoveAllocation(userID, budgetID, allocationID string) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	Type       *models.TransactionType
	CategoryID *string
	BudgetID   *string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID, categoryID string, budgetID *string, transactionType models.TransactionType, amount int64, description string, date time.Time) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, amount *int64, description *string, date *time.Time, categoryID *string, budgetID *string) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// InsightsServicer loads a user's rows and runs the aggregation engine
// over them. Aggregation itself lives in the insights package; this
// service only supplies inputs.
type InsightsServicer interface {
	SpendingTrends(userID string, period insights.TrendPeriod) ([]insights.TrendPoint, error)
	CategoryBreakdown(userID string) ([]insights.CategoryAmount, error)
	BudgetVsActual(userID string) ([]insights.BudgetActual, error)
	Forecast(userID string, period insights.TrendPeriod) (*insights.ForecastResult, error)
	BudgetProgressList(userID string) ([]insights.BudgetProgress, error)
}

// CardCycleSummary is one card's contribution to the dashboard totals.
type CardCycleSummary struct {
	CardID    string  `json:"card_id"`
	CardName  string  `json:"card_name"`
	Milestone int64   `json:"milestone"`
	Spent     int64   `json:"spent"`
	Remaining int64   `json:"remaining"`
	Progress  float64 `json:"progress"`
	Urgent    bool    `json:"urgent"`
}

// DashboardSummary aggregates current-cycle state across all of a user's cards.
type DashboardSummary struct {
	TotalMilestone int64              `json:"total_milestone"`
	TotalLimit     int64              `json:"total_limit"`
	TotalSpent     int64              `json:"total_spent"`
	TotalRemaining int64              `json:"total_remaining"`
	Cards          []CardCycleSummary `json:"cards"`
}

// DashboardServicer computes the all-cards summary. Implementations may
// serve a cached copy; mutations to cards or spends must invalidate it.
type DashboardServicer interface {
	GetSummary(ctx context.Context, userID string) (*DashboardSummary, error)
	Invalidate(userID string)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
