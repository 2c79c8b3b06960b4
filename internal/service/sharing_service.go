package service

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"kickstart_run_backend/internal/model"
	"kickstart_run_backend/internal/repository"

	"gorm.io/gorm"
)

const baseSharePoints = 10
const repeatSharePoints = 5

var streakMilestones = []int{3, 7, 14, 30, 50, 100}

// SharingService scores social shares with a daily streak. Streak
// points are their own currency and never feed the GPS rankings.
type SharingService struct {
	SharingRepo *repository.SharingRepository
}

func NewSharingService(sharingRepo *repository.SharingRepository) *SharingService {
	return &SharingService{SharingRepo: sharingRepo}
}

type ShareInput struct {
	Platform      string `json:"platform" binding:"required"`
	ShareType     string `json:"shareType" binding:"required"`
	AchievementID *uint  `json:"achievementId"`
	ChallengeID   *uint  `json:"challengeId"`
}

type ShareResult struct {
	Share         *model.ShareActivity `json:"share"`
	Streak        *model.SharingStreak `json:"streak"`
	NewMilestones []string             `json:"newMilestones,omitempty"`
}

// RecordShare logs one share and advances the daily streak. A second
// share on the same day earns a flat bonus without moving the streak.
func (s *SharingService) RecordShare(userID uint, input ShareInput) (*ShareResult, error) {
	streak, err := s.getOrCreateStreak(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	points := repeatSharePoints
	var newMilestones []string

	sameDay := streak.LastShareDate != nil && sameCalendarDay(*streak.LastShareDate, now)
	if !sameDay {
		if streak.LastShareDate != nil && sameCalendarDay(streak.LastShareDate.AddDate(0, 0, 1), now) {
			streak.CurrentStreak++
		} else {
			streak.CurrentStreak = 1
		}
		if streak.CurrentStreak > streak.LongestStreak {
			streak.LongestStreak = streak.CurrentStreak
		}
		streak.StreakMultiplier = multiplierForStreak(streak.CurrentStreak)
		points = int(math.Round(baseSharePoints * streak.StreakMultiplier))
		newMilestones = s.awardMilestones(streak)
	}

	streak.StreakPoints += points
	streak.TotalShares++
	streak.LastShareDate = &now

	share := &model.ShareActivity{
		UserID:        userID,
		ShareToken:    model.GenerateUUID(),
		AchievementID: input.AchievementID,
		ChallengeID:   input.ChallengeID,
		Platform:      input.Platform,
		ShareType:     input.ShareType,
		PointsEarned:  points,
		StreakDay:     streak.CurrentStreak,
	}

	if err := s.SharingRepo.CreateShare(share); err != nil {
		return nil, err
	}
	if err := s.SharingRepo.SaveStreak(streak); err != nil {
		return nil, err
	}

	return &ShareResult{Share: share, Streak: streak, NewMilestones: newMilestones}, nil
}

const streakRiskWindow = 20 * time.Hour

type StreakStatus struct {
	Streak *model.SharingStreak `json:"streak"`
	AtRisk bool                 `json:"atRisk"`
}

// GetStreak returns the streak plus an at-risk flag once more than 20
// hours have passed since the last share.
func (s *SharingService) GetStreak(userID uint) (*StreakStatus, error) {
	streak, err := s.getOrCreateStreak(userID)
	if err != nil {
		return nil, err
	}

	atRisk := streak.CurrentStreak > 0 &&
		streak.LastShareDate != nil &&
		time.Since(*streak.LastShareDate) > streakRiskWindow
	return &StreakStatus{Streak: streak, AtRisk: atRisk}, nil
}

func (s *SharingService) ShareHistory(userID uint, limit int) ([]model.ShareActivity, error) {
	return s.SharingRepo.ShareHistory(userID, limit)
}

func (s *SharingService) TopStreaks(limit int) ([]model.SharingStreak, error) {
	return s.SharingRepo.TopStreaks(limit)
}

func (s *SharingService) getOrCreateStreak(userID uint) (*model.SharingStreak, error) {
	streak, err := s.SharingRepo.FindStreak(userID)
	if err == nil {
		return streak, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	streak = &model.SharingStreak{UserID: userID, StreakMultiplier: 1}
	if err := s.SharingRepo.CreateStreak(streak); err != nil {
		return nil, err
	}
	return streak, nil
}

func (s *SharingService) awardMilestones(streak *model.SharingStreak) []string {
	var earned []string
	for _, m := range streakMilestones {
		if streak.CurrentStreak != m {
			continue
		}
		badge := fmt.Sprintf("%d-day-streak", m)
		if hasBadge(streak.MilestoneBadges, badge) {
			continue
		}
		if streak.MilestoneBadges == "" {
			streak.MilestoneBadges = badge
		} else {
			streak.MilestoneBadges += "," + badge
		}
		earned = append(earned, badge)
	}
	return earned
}

func hasBadge(badges, badge string) bool {
	for _, b := range strings.Split(badges, ",") {
		if b == badge {
			return true
		}
	}
	return false
}

func multiplierForStreak(days int) float64 {
	switch {
	case days >= 30:
		return 3.0
	case days >= 14:
		return 2.5
	case days >= 7:
		return 2.0
	case days >= 3:
		return 1.5
	default:
		return 1.0
	}
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
