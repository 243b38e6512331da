package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"cardmile/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCard creates a card with the given anniversary month and
// milestone amount (in paise).
func CreateTestCard(t *testing.T, db *gorm.DB, userID string, anniversaryMonth int, milestone int64) *models.Card {
	t.Helper()

	n := nextID()
	card := &models.Card{
		UserID:           userID,
		CardCompany:      "Test Bank",
		CardName:         fmt.Sprintf("Test Card %d", n),
		CardNetwork:      "Visa",
		AnniversaryMonth: anniversaryMonth,
		BillingDate:      5,
		DueDate:          25,
		AnnualFee:        50000,
		MilestoneAmount:  milestone,
	}
	if err := db.Create(card).Error; err != nil {
		t.Fatalf("failed to create test card: %v", err)
	}
	return card
}

// CreateTestSpend creates a monthly spend record for the given card and
// "YYYY-MM" month key. Amount is in paise.
func CreateTestSpend(t *testing.T, db *gorm.DB, cardID, month string, amount int64) *models.MonthlySpend {
	t.Helper()

	var year int
	if _, err := fmt.Sscanf(month, "%4d", &year); err != nil {
		t.Fatalf("invalid month key %q: %v", month, err)
	}

	spend := &models.MonthlySpend{
		CardID:      cardID,
		Month:       month,
		Year:        year,
		AmountSpent: amount,
	}
	if err := db.Create(spend).Error; err != nil {
		t.Fatalf("failed to create test spend: %v", err)
	}
	return spend
}

// CreateTestCategory creates a category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID string) *models.Category {
	t.Helper()
	return CreateTestCategoryWithName(t, db, userID, fmt.Sprintf("Test Category %d", nextID()))
}

// CreateTestCategoryWithName creates a category with the given name.
func CreateTestCategoryWithName(t *testing.T, db *gorm.DB, userID, name string) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: userID,
		Name:   name,
		Icon:   "tag",
		Color:  "#4287f5",
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestBudget creates an active monthly budget for the given category.
// Amount is in paise.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID, categoryID string, amount int64) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:      userID,
		CategoryID:  categoryID,
		Name:        fmt.Sprintf("Test Budget %d", nextID()),
		TotalAmount: amount,
		PeriodType:  models.BudgetPeriodMonthly,
		StartDate:   time.Now().Truncate(24 * time.Hour),
		IsActive:    true,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestAllocation allocates part of a budget to a category.
// Amount is in paise.
func CreateTestAllocation(t *testing.T, db *gorm.DB, budgetID, categoryID string, amount int64) *models.BudgetCategory {
	t.Helper()

	alloc := &models.BudgetCategory{
		BudgetID:        budgetID,
		CategoryID:      categoryID,
		AllocatedAmount: amount,
	}
	if err := db.Create(alloc).Error; err != nil {
		t.Fatalf("failed to create test allocation: %v", err)
	}
	return alloc
}

// CreateTestTransaction creates a transaction of the given type and amount
// (in paise) dated now.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID, categoryID string, txType models.TransactionType, amount int64) *models.Transaction {
	t.Helper()
	return CreateTestTransactionOn(t, db, userID, categoryID, txType, amount, time.Now())
}

// CreateTestTransactionOn creates a transaction dated at the given time.
func CreateTestTransactionOn(t *testing.T, db *gorm.DB, userID, categoryID string, txType models.TransactionType, amount int64, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:     userID,
		CategoryID: categoryID,
		Type:       txType,
		Amount:     amount,
		Date:       date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}
