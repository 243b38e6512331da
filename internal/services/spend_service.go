package services

import (
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cardmile/internal/cycle"
	apperrors "cardmile/internal/errors"
	"cardmile/internal/models"
)

// spendService handles monthly spend tracking for cards.
type spendService struct {
	db          *gorm.DB
	cardService CardServicer
}

// NewSpendService creates a new SpendServicer.
func NewSpendService(db *gorm.DB, cardService CardServicer) SpendServicer {
	return &spendService{db: db, cardService: cardService}
}

// ListCycleSpends returns the card's current cycle window together with
// the spend rows recorded inside it, selected with a month IN (...)
// membership filter. Months without a row are simply absent.
func (s *spendService) ListCycleSpends(userID, cardID string) (*CycleSpends, error) {
	card, err := s.cardService.GetCardByID(userID, cardID)
	if err != nil {
		return nil, err
	}

	window := cycle.Compute(card.AnniversaryMonth, time.Now())

	var spends []models.MonthlySpend
	if err := s.db.Where("card_id = ? AND month IN ?", cardID, window.Months).
		Order("month ASC").Find(&spends).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &CycleSpends{Window: window, Spends: spends}, nil
}

// UpsertSpend records the amount spent on a card in one month of its
// current cycle, inserting or updating on the (card_id, month, year)
// unique key. Months outside the current window are rejected.
func (s *spendService) UpsertSpend(userID, cardID, month string, amountSpent int64) (*models.MonthlySpend, error) {
	card, err := s.cardService.GetCardByID(userID, cardID)
	if err != nil {
		return nil, err
	}

	window := cycle.Compute(card.AnniversaryMonth, time.Now())
	if !window.Contains(month) {
		return nil, apperrors.ErrSpendMonthOutsideCycle
	}

	year, err := strconv.Atoi(month[:4])
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid month format")
	}

	spend := &models.MonthlySpend{
		CardID:      cardID,
		Month:       month,
		Year:        year,
		AmountSpent: amountSpent,
	}

	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "card_id"}, {Name: "month"}, {Name: "year"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount_spent", "updated_at"}),
	}).Create(spend).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Re-read so callers see the canonical row, including the id of a
	// previously inserted record after a conflict update.
	var saved models.MonthlySpend
	if err := s.db.Where("card_id = ? AND month = ? AND year = ?", cardID, month, year).
		First(&saved).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &saved, nil
}
