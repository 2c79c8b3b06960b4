package service

import (
	"fmt"
	"math"

	"kickstart_run_backend/internal/model"
	"kickstart_run_backend/internal/repository"
	"kickstart_run_backend/pkg/logger"

	"go.uber.org/zap"
)

const (
	minMultiplier = 0.5
	maxMultiplier = 2.0

	recentWindow = 10
)

// DifficultyService computes per-user adaptive targets. It is a pure
// read path: it never changes challenge state, only scales the targets
// shown to the athlete.
type DifficultyService struct {
	UserRepo          *repository.UserRepository
	ChallengeRepo     *repository.ChallengeRepository
	UserChallengeRepo *repository.UserChallengeRepository
	Analytics         *AnalyticsService
}

func NewDifficultyService(
	userRepo *repository.UserRepository,
	challengeRepo *repository.ChallengeRepository,
	userChallengeRepo *repository.UserChallengeRepository,
	analytics *AnalyticsService,
) *DifficultyService {
	return &DifficultyService{
		UserRepo:          userRepo,
		ChallengeRepo:     challengeRepo,
		UserChallengeRepo: userChallengeRepo,
		Analytics:         analytics,
	}
}

type AdaptedChallenge struct {
	ChallengeID       uint     `json:"challengeId"`
	Title             string   `json:"title"`
	Type              string   `json:"type"`
	Multiplier        float64  `json:"difficultyMultiplier"`
	AdaptedDistanceKm float64  `json:"adaptedDistanceKm,omitempty"`
	AdaptedTimeSec    int      `json:"adaptedTimeSeconds,omitempty"`
	Reasoning         []string `json:"reasoning"`
}

// AdaptChallenge scales one challenge's targets for one athlete. Any
// lookup failure degrades to the neutral multiplier so the athlete
// always gets targets back.
func (s *DifficultyService) AdaptChallenge(userID, challengeID uint) (*AdaptedChallenge, error) {
	challenge, err := s.ChallengeRepo.FindByID(challengeID)
	if err != nil {
		logger.Log.Warn("difficulty falling back to neutral, challenge lookup failed",
			zap.Uint("challengeID", challengeID), zap.Error(err))
		return &AdaptedChallenge{
			ChallengeID: challengeID,
			Multiplier:  1.0,
			Reasoning:   []string{"Standard difficulty applied"},
		}, nil
	}

	multiplier, reasoning := s.multiplierFor(userID, challenge)

	adapted := &AdaptedChallenge{
		ChallengeID: challenge.ID,
		Title:       challenge.Title,
		Type:        string(challenge.Type),
		Multiplier:  multiplier,
		Reasoning:   reasoning,
	}
	if challenge.TargetDistanceKm > 0 {
		adapted.AdaptedDistanceKm = round2(challenge.TargetDistanceKm * multiplier)
	}
	if challenge.TargetTimeSec > 0 {
		adapted.AdaptedTimeSec = int(math.Round(float64(challenge.TargetTimeSec) / multiplier))
	}
	return adapted, nil
}

// AdaptAll returns the full active catalog with per-user targets.
func (s *DifficultyService) AdaptAll(userID uint) ([]AdaptedChallenge, error) {
	challenges, err := s.ChallengeRepo.FindActive()
	if err != nil {
		return nil, err
	}

	adapted := make([]AdaptedChallenge, 0, len(challenges))
	for i := range challenges {
		ch := &challenges[i]
		multiplier, reasoning := s.multiplierFor(userID, ch)
		a := AdaptedChallenge{
			ChallengeID: ch.ID,
			Title:       ch.Title,
			Type:        string(ch.Type),
			Multiplier:  multiplier,
			Reasoning:   reasoning,
		}
		if ch.TargetDistanceKm > 0 {
			a.AdaptedDistanceKm = round2(ch.TargetDistanceKm * multiplier)
		}
		if ch.TargetTimeSec > 0 {
			a.AdaptedTimeSec = int(math.Round(float64(ch.TargetTimeSec) / multiplier))
		}
		adapted = append(adapted, a)
	}
	return adapted, nil
}

func (s *DifficultyService) multiplierFor(userID uint, challenge *model.Challenge) (float64, []string) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		logger.Log.Warn("difficulty falling back to neutral, user lookup failed",
			zap.Uint("userID", userID), zap.Error(err))
		return 1.0, []string{"Standard difficulty applied"}
	}

	analytics, err := s.Analytics.GetOrCreate(userID)
	if err != nil {
		logger.Log.Warn("difficulty falling back to neutral, analytics lookup failed",
			zap.Uint("userID", userID), zap.Error(err))
		return 1.0, []string{"Standard difficulty applied"}
	}

	var reasoning []string

	rateFactor := completionRateFactor(analytics.AvgCompletionRate)
	switch {
	case rateFactor > 1.0:
		reasoning = append(reasoning, fmt.Sprintf("High completion rate (%.0f%%) - increasing difficulty", analytics.AvgCompletionRate))
	case rateFactor < 1.0:
		reasoning = append(reasoning, fmt.Sprintf("Lower completion rate (%.0f%%) - reducing difficulty", analytics.AvgCompletionRate))
	}

	trendFactor := s.trendFactor(userID, analytics.RecentTrend, &reasoning)
	ageFactor := ageFactorFor(user.Age, &reasoning)
	typeFactor := typeFactorFor(challenge.Type)

	multiplier := rateFactor * trendFactor * ageFactor * typeFactor
	multiplier = math.Min(maxMultiplier, math.Max(minMultiplier, multiplier))
	multiplier = round2(multiplier)

	if len(reasoning) == 0 {
		reasoning = append(reasoning, "Standard difficulty applied")
	}
	return multiplier, reasoning
}

func completionRateFactor(rate float64) float64 {
	switch {
	case rate >= 90:
		return 1.3
	case rate >= 75:
		return 1.1
	case rate >= 50:
		return 1.0
	case rate >= 25:
		return 0.8
	default:
		return 0.6
	}
}

func (s *DifficultyService) trendFactor(userID uint, trend model.PerformanceTrend, reasoning *[]string) float64 {
	ratio := s.recentCompletionRatio(userID)
	switch {
	case trend == model.TrendImproving || ratio > 0.8:
		*reasoning = append(*reasoning, "Strong recent performance - raising the bar")
		return 1.2
	case trend == model.TrendDeclining || ratio < 0.4:
		*reasoning = append(*reasoning, "Recent struggles detected - easing difficulty")
		return 0.7
	default:
		return 1.0
	}
}

// recentCompletionRatio looks at the last few challenge attempts. With
// no history it reports a neutral 0.5 so new athletes never trip the
// declining branch.
func (s *DifficultyService) recentCompletionRatio(userID uint) float64 {
	recent, err := s.UserChallengeRepo.Recent(userID, recentWindow)
	if err != nil || len(recent) == 0 {
		return 0.5
	}
	var done int
	for _, uc := range recent {
		if uc.Status == model.StatusCompleted {
			done++
		}
	}
	return float64(done) / float64(len(recent))
}

func ageFactorFor(age int, reasoning *[]string) float64 {
	switch {
	case age >= 6 && age <= 8:
		*reasoning = append(*reasoning, "Age-appropriate scaling for young athletes")
		return 0.7
	case age >= 9 && age <= 12:
		*reasoning = append(*reasoning, "Moderate scaling for middle age group")
		return 0.9
	case age >= 13 && age <= 18:
		*reasoning = append(*reasoning, "Teen athletes can handle greater challenges")
		return 1.1
	default:
		return 1.0
	}
}

func typeFactorFor(t model.ChallengeType) float64 {
	switch t {
	case model.ChallengeEndurance:
		return 1.1
	case model.ChallengeDrill:
		return 0.9
	case model.ChallengeForm:
		return 0.8
	default:
		return 1.0
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
