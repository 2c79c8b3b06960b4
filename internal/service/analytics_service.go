package service

import (
	"errors"
	"kickstart_run_backend/internal/model"
	"kickstart_run_backend/internal/repository"
	"time"

	"gorm.io/gorm"
)

// AnalyticsService maintains the rolling per-user performance row that
// feeds difficulty calculations. Rows are created lazily with
// optimistic defaults, so a brand-new athlete reads as an 80% finisher
// on a stable trend.
type AnalyticsService struct {
	AnalyticsRepo *repository.AnalyticsRepository
}

func NewAnalyticsService(analyticsRepo *repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{AnalyticsRepo: analyticsRepo}
}

// GetOrCreate returns the user's analytics row, creating the default
// row on first access.
func (s *AnalyticsService) GetOrCreate(userID uint) (*model.UserPerformanceAnalytics, error) {
	analytics, err := s.AnalyticsRepo.FindByUser(userID)
	if err == nil {
		return analytics, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	analytics = &model.UserPerformanceAnalytics{
		UserID:            userID,
		AvgCompletionRate: 80,
		AvgAttemptCount:   1,
		RecentTrend:       model.TrendStable,
		AdaptiveLevel:     1,
		LastAnalysisAt:    time.Now(),
	}
	if err := s.AnalyticsRepo.Create(analytics); err != nil {
		return nil, err
	}
	return analytics, nil
}

// Update folds one challenge outcome into the rolling averages.
// Completions nudge the rate up slowly (+2), failures pull it down
// faster (-5); the attempt count is a running midpoint average floored
// at 1. The trend flips only on a move bigger than 5 points.
func (s *AnalyticsService) Update(userID uint, completed bool, attempts int) error {
	analytics, err := s.GetOrCreate(userID)
	if err != nil {
		return err
	}

	oldRate := analytics.AvgCompletionRate
	if completed {
		analytics.AvgCompletionRate = minFloat(100, oldRate+2)
	} else {
		analytics.AvgCompletionRate = maxFloat(0, oldRate-5)
	}

	analytics.AvgAttemptCount = maxFloat(1, (analytics.AvgAttemptCount+float64(attempts))/2)

	switch {
	case analytics.AvgCompletionRate > oldRate+5:
		analytics.RecentTrend = model.TrendImproving
	case analytics.AvgCompletionRate < oldRate-5:
		analytics.RecentTrend = model.TrendDeclining
	default:
		analytics.RecentTrend = model.TrendStable
	}

	analytics.LastAnalysisAt = time.Now()
	return s.AnalyticsRepo.Save(analytics)
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
