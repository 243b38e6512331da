package models

// BudgetCategory allocates part of a budget to a category.
// AllocatedAmount is in int64 minor units (paise).
type BudgetCategory struct {
	Base
	BudgetID        string `gorm:"type:uuid;not null;index" json:"budget_id"`
	CategoryID      string `gorm:"type:uuid;not null" json:"category_id"`
	AllocatedAmount int64  `gorm:"type:bigint;not null" json:"allocated_amount"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID" json:"category"`
}
