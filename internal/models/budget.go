package models

import "time"

// BudgetPeriod represents the period type for a budget
type BudgetPeriod string

const (
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
	BudgetPeriodCustom  BudgetPeriod = "custom"
)

// Budget represents a spending budget for a category.
// TotalAmount is in int64 minor units (paise).
type Budget struct {
	Base
	UserID      string       `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID  string       `gorm:"type:uuid;not null" json:"category_id"`
	Name        string       `gorm:"not null" json:"name"`
	TotalAmount int64        `gorm:"type:bigint;not null" json:"total_amount"`
	PeriodType  BudgetPeriod `gorm:"not null" json:"period_type"`
	StartDate   time.Time    `gorm:"not null" json:"start_date"`
	EndDate     *time.Time   `json:"end_date,omitempty"`
	IsActive    bool         `gorm:"default:true" json:"is_active"`

	// Relationships
	Category    Category         `gorm:"foreignKey:CategoryID" json:"category"`
	Allocations []BudgetCategory `gorm:"foreignKey:BudgetID" json:"allocations,omitempty"`
}
