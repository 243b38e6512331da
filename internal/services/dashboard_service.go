package services

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"cardmile/internal/cycle"
	apperrors "cardmile/internal/errors"
	"cardmile/internal/insights"
	"cardmile/internal/logger"
	"cardmile/internal/models"
)

// dashboardService computes all-cards cycle totals. Per-card spend
// queries fan out concurrently and join at a barrier before any total is
// derived, so the summary is never built from partial data. Results are
// held in a TTL-bounded cache keyed by user; card and spend mutations
// invalidate the entry.
type dashboardService struct {
	db    *gorm.DB
	cache *ristretto.Cache[string, *DashboardSummary]
	ttl   time.Duration
}

// NewDashboardService creates a new DashboardServicer with the given
// cache TTL.
func NewDashboardService(db *gorm.DB, ttl time.Duration) (DashboardServicer, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, *DashboardSummary]{
		NumCounters: 1e4,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &dashboardService{db: db, cache: cache, ttl: ttl}, nil
}

// GetSummary returns the user's dashboard summary, serving a cached copy
// when one is fresh.
func (s *dashboardService) GetSummary(ctx context.Context, userID string) (*DashboardSummary, error) {
	if cached, ok := s.cache.Get(userID); ok {
		return cached, nil
	}

	summary, err := s.computeSummary(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !s.cache.SetWithTTL(userID, summary, 1, s.ttl) {
		logger.Get().Debugw("dashboard summary not admitted to cache", "user_id", userID)
	}
	return summary, nil
}

// Invalidate drops the user's cached summary.
func (s *dashboardService) Invalidate(userID string) {
	s.cache.Del(userID)
}

func (s *dashboardService) computeSummary(ctx context.Context, userID string) (*DashboardSummary, error) {
	var cards []models.Card
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at ASC").Find(&cards).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	now := time.Now()
	perCard := make([]CardCycleSummary, len(cards))

	g, gctx := errgroup.WithContext(ctx)
	for i, card := range cards {
		g.Go(func() error {
			window := cycle.Compute(card.AnniversaryMonth, now)

			var spends []models.MonthlySpend
			if err := s.db.WithContext(gctx).
				Where("card_id = ? AND month IN ?", card.ID, window.Months).
				Find(&spends).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}

			spent := insights.CycleSpendTotal(spends, window)
			remaining := cycle.Remaining(card.MilestoneAmount, spent)
			perCard[i] = CardCycleSummary{
				CardID:    card.ID,
				CardName:  card.CardName,
				Milestone: card.MilestoneAmount,
				Spent:     spent,
				Remaining: remaining,
				Progress:  cycle.ProgressPercentage(spent, card.MilestoneAmount),
				Urgent:    cycle.IsUrgent(remaining, window.EndDate(now.Location()), now),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &DashboardSummary{Cards: perCard}
	for i, card := range cards {
		summary.TotalMilestone += card.MilestoneAmount
		if card.CardLimit != nil {
			summary.TotalLimit += *card.CardLimit
		}
		summary.TotalSpent += perCard[i].Spent
		summary.TotalRemaining += perCard[i].Remaining
	}
	return summary, nil
}
