package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"cardmile/internal/cycle"
	apperrors "cardmile/internal/errors"
	"cardmile/internal/insights"
	"cardmile/internal/models"
	"cardmile/internal/pagination"
)

// cardService handles card-related business logic.
type cardService struct {
	db *gorm.DB
}

// NewCardService creates a new CardServicer.
func NewCardService(db *gorm.DB) CardServicer {
	return &cardService{db: db}
}

// CreateCard creates a new card for the user.
func (s *cardService) CreateCard(userID string, input CardInput) (*models.Card, error) {
	card := &models.Card{
		UserID:           userID,
		CardCompany:      input.CardCompany,
		CardName:         input.CardName,
		CardNetwork:      input.CardNetwork,
		AnniversaryMonth: input.AnniversaryMonth,
		BillingDate:      input.BillingDate,
		DueDate:          input.DueDate,
		AnnualFee:        input.AnnualFee,
		MilestoneAmount:  input.MilestoneAmount,
		CardLimit:        input.CardLimit,
	}

	if err := s.db.Create(card).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return card, nil
}

// GetUserCards returns a paginated list of the user's cards.
func (s *cardService) GetUserCards(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Card], error) {
	page.Defaults()

	base := s.db.Model(&models.Card{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var cards []models.Card
	if err := base.Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&cards).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(cards, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCardByID returns a card by ID if it belongs to the user.
func (s *cardService) GetCardByID(userID, cardID string) (*models.Card, error) {
	var card models.Card
	if err := s.db.Where("id = ? AND user_id = ?", cardID, userID).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCardNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &card, nil
}

// UpdateCard replaces a card's editable attributes.
func (s *cardService) UpdateCard(userID, cardID string, input CardInput) (*models.Card, error) {
	card, err := s.GetCardByID(userID, cardID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"card_company":      input.CardCompany,
		"card_name":         input.CardName,
		"card_network":      input.CardNetwork,
		"anniversary_month": input.AnniversaryMonth,
		"billing_date":      input.BillingDate,
		"due_date":          input.DueDate,
		"annual_fee":        input.AnnualFee,
		"milestone_amount":  input.MilestoneAmount,
		"card_limit":        input.CardLimit,
	}

	if err := s.db.Model(card).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return card, nil
}

// DeleteCard soft-deletes a card and its monthly spend rows.
func (s *cardService) DeleteCard(userID, cardID string) error {
	card, err := s.GetCardByID(userID, cardID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("card_id = ?", cardID).Delete(&models.MonthlySpend{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(card).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// GetCycleSummary computes the card's current-cycle state: the window,
// total spend across window months, remaining-to-milestone, progress
// percentage, and the urgency hint.
func (s *cardService) GetCycleSummary(userID, cardID string) (*CycleSummary, error) {
	card, err := s.GetCardByID(userID, cardID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	window := cycle.Compute(card.AnniversaryMonth, now)

	var spends []models.MonthlySpend
	if err := s.db.Where("card_id = ? AND month IN ?", cardID, window.Months).Find(&spends).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	spent := insights.CycleSpendTotal(spends, window)
	remaining := cycle.Remaining(card.MilestoneAmount, spent)
	endsOn := window.EndDate(now.Location())

	return &CycleSummary{
		CardID:           card.ID,
		Window:           window,
		Milestone:        card.MilestoneAmount,
		Spent:            spent,
		Remaining:        remaining,
		Progress:         cycle.ProgressPercentage(spent, card.MilestoneAmount),
		Urgent:           cycle.IsUrgent(remaining, endsOn, now),
		EndsOn:           endsOn,
		MilestoneDisplay: cycle.FormatCurrency(card.MilestoneAmount),
		SpentDisplay:     cycle.FormatCurrency(spent),
		RemainingDisplay: cycle.FormatCurrency(remaining),
	}, nil
}
