package models

// Card represents a credit card with an annual milestone-tracking cycle.
// All monetary fields are stored as int64 minor units (paise).
type Card struct {
	Base
	UserID           string `gorm:"type:uuid;not null;index" json:"user_id"`
	CardCompany      string `gorm:"not null" json:"card_company"`
	CardName         string `gorm:"not null" json:"card_name"`
	CardNetwork      string `gorm:"not null" json:"card_network"`
	AnniversaryMonth int    `gorm:"not null" json:"anniversary_month"`
	BillingDate      int    `gorm:"not null" json:"billing_date"`
	DueDate          int    `gorm:"not null" json:"due_date"`
	AnnualFee        int64  `gorm:"type:bigint;default:0" json:"annual_fee"`
	MilestoneAmount  int64  `gorm:"type:bigint;default:0" json:"milestone_amount"`
	CardLimit        *int64 `gorm:"type:bigint" json:"card_limit,omitempty"`

	// Relationships
	MonthlySpends []MonthlySpend `gorm:"foreignKey:CardID" json:"monthly_spends,omitempty"`
}
