package models

// MonthlySpend records the amount spent on a card in one calendar month.
// Month is a "YYYY-MM" string; Year is denormalized for the unique key.
// AmountSpent is in int64 minor units (paise).
type MonthlySpend struct {
	Base
	CardID      string `gorm:"type:uuid;not null;uniqueIndex:idx_card_month_year" json:"card_id"`
	Month       string `gorm:"size:7;not null;uniqueIndex:idx_card_month_year" json:"month"`
	Year        int    `gorm:"not null;uniqueIndex:idx_card_month_year" json:"year"`
	AmountSpent int64  `gorm:"type:bigint;default:0" json:"amount_spent"`
}
