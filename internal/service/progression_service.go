package service

import (
	"errors"
	"fmt"
	"kickstart_run_backend/internal/model"
	"kickstart_run_backend/internal/repository"
	"kickstart_run_backend/internal/util"
	"kickstart_run_backend/pkg/logger"
	"kickstart_run_backend/pkg/monitoring"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProgressionService owns the per-user challenge state machine. It is
// the only writer of user_challenges rows; difficulty and ranking reads
// never mutate state through it.
type ProgressionService struct {
	ChallengeRepo     *repository.ChallengeRepository
	UserChallengeRepo *repository.UserChallengeRepository
	ActivityRepo      *repository.ActivityRepository
	AchievementRepo   *repository.AchievementRepository
	Analytics         *AnalyticsService
	Adventures        *AdventureService
	DB                *gorm.DB
}

func NewProgressionService(
	challengeRepo *repository.ChallengeRepository,
	userChallengeRepo *repository.UserChallengeRepository,
	activityRepo *repository.ActivityRepository,
	achievementRepo *repository.AchievementRepository,
	analytics *AnalyticsService,
	adventures *AdventureService,
	db *gorm.DB,
) *ProgressionService {
	return &ProgressionService{
		ChallengeRepo:     challengeRepo,
		UserChallengeRepo: userChallengeRepo,
		ActivityRepo:      activityRepo,
		AchievementRepo:   achievementRepo,
		Analytics:         analytics,
		Adventures:        adventures,
		DB:                db,
	}
}

type ActivityInput struct {
	ChallengeID *uint     `json:"challengeId"`
	DistanceKm  float64   `json:"distanceKm" binding:"required"`
	DurationSec int       `json:"durationSeconds" binding:"required"`
	Pace        float64   `json:"paceMinPerKm" binding:"required"`
	StartedAt   time.Time `json:"startedAt"`
}

type CompletedChallenge struct {
	ChallengeID   uint    `json:"challengeId"`
	Title         string  `json:"title"`
	DistanceKm    float64 `json:"distanceKm"`
	PointsAwarded int     `json:"pointsAwarded"`
}

type ActivityResult struct {
	Activity            *model.Activity      `json:"activity"`
	ChallengesCompleted []CompletedChallenge `json:"challengesCompleted"`
}

// seedRule is the onboarding policy for one challenge type: whether the
// first challenge in the type's sequence starts available, or every
// challenge of the type does.
type seedRule struct {
	firstAvailable  bool
	alwaysAvailable bool
}

var seedPolicy = map[model.ChallengeType]seedRule{
	model.ChallengeDistance:  {firstAvailable: true},
	model.ChallengeEndurance: {firstAvailable: true},
	model.ChallengeForm:      {alwaysAvailable: true},
	model.ChallengeDrill:     {alwaysAvailable: true},
}

// RecordActivity persists one GPS run and advances every open distance
// challenge it satisfies, in catalog order. Completions cascade within
// the single call: a 5km run completes 1km, 3km and 5km targets at
// once and unlocks the next challenge in the sequence.
func (s *ProgressionService) RecordActivity(userID uint, input ActivityInput) (*ActivityResult, error) {
	if input.DistanceKm <= 0 || input.DurationSec <= 0 || input.Pace <= 0 {
		return nil, util.ErrInvalidActivity
	}

	startedAt := input.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}

	activity := &model.Activity{
		UserID:      userID,
		ChallengeID: input.ChallengeID,
		DistanceKm:  input.DistanceKm,
		DurationSec: input.DurationSec,
		Pace:        input.Pace,
		StartedAt:   startedAt,
	}

	var completed []CompletedChallenge

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.ActivityRepo.Create(tx, activity); err != nil {
			return fmt.Errorf("persist activity: %w", err)
		}

		if input.ChallengeID != nil {
			if err := s.recordAttempt(tx, userID, *input.ChallengeID, input); err != nil {
				return err
			}
		}

		var err error
		completed, err = s.autoCompleteDistance(tx, userID, input.DistanceKm)
		return err
	})
	if err != nil {
		return nil, err
	}
	if completed == nil {
		completed = []CompletedChallenge{}
	}

	monitoring.ActivitiesRecorded.Inc()

	// Analytics and adventure progress are best-effort: the activity and
	// completions are durable already, a tracker failure must not fail
	// the response.
	s.reportOutcomes(userID, input.ChallengeID, completed)
	if s.Adventures != nil {
		if err := s.Adventures.ApplyDistance(userID, input.DistanceKm); err != nil {
			logger.Log.Error("adventure progress update failed",
				zap.Uint("userID", userID), zap.Error(err))
		}
	}

	return &ActivityResult{Activity: activity, ChallengesCompleted: completed}, nil
}

func (s *ProgressionService) recordAttempt(tx *gorm.DB, userID, challengeID uint, input ActivityInput) error {
	state, err := s.UserChallengeRepo.FindByUserAndChallengeTx(tx, userID, challengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrChallengeNotFound
		}
		return err
	}

	if err := s.UserChallengeRepo.IncrementAttempts(tx, userID, challengeID); err != nil {
		return err
	}

	updates := map[string]interface{}{}
	if state.BestTimeSec == 0 || input.DurationSec < state.BestTimeSec {
		updates["best_time_sec"] = input.DurationSec
	}
	if state.BestPace == 0 || input.Pace < state.BestPace {
		updates["best_pace"] = input.Pace
	}
	if len(updates) == 0 {
		return nil
	}
	return tx.Model(&model.UserChallenge{}).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Updates(updates).Error
}

func (s *ProgressionService) autoCompleteDistance(tx *gorm.DB, userID uint, distanceKm float64) ([]CompletedChallenge, error) {
	var completed []CompletedChallenge

	// Each unlock can expose the next target to the same run, so keep
	// re-reading the open rows until a pass completes nothing.
	for {
		open, err := s.UserChallengeRepo.OpenByType(tx, userID, model.ChallengeDistance)
		if err != nil {
			return nil, err
		}

		progressed := false
		for i := range open {
			state := &open[i]
			challenge := state.Challenge
			if challenge == nil || challenge.TargetDistanceKm <= 0 {
				continue
			}
			if distanceKm < challenge.TargetDistanceKm {
				continue
			}

			if err := s.completeInTx(tx, userID, challenge, model.AchievementDistanceMilestone,
				fmt.Sprintf("Completed %gkm distance challenge - %d points awarded", challenge.TargetDistanceKm, challenge.PointsReward),
				fmt.Sprintf("%s Complete", challenge.Title)); err != nil {
				return nil, err
			}

			completed = append(completed, CompletedChallenge{
				ChallengeID:   challenge.ID,
				Title:         challenge.Title,
				DistanceKm:    challenge.TargetDistanceKm,
				PointsAwarded: challenge.PointsReward,
			})

			if err := s.unlockNext(tx, userID, challenge); err != nil {
				return nil, err
			}
			monitoring.ChallengesCompleted.WithLabelValues("auto").Inc()
			progressed = true
		}

		if !progressed {
			return completed, nil
		}
	}
}

func (s *ProgressionService) completeInTx(tx *gorm.DB, userID uint, challenge *model.Challenge, achievementType, description, title string) error {
	if err := s.UserChallengeRepo.Complete(tx, userID, challenge.ID, challenge.PointsReward, time.Now().Year()); err != nil {
		return fmt.Errorf("complete challenge %d: %w", challenge.ID, err)
	}
	return s.AchievementRepo.Create(tx, &model.Achievement{
		UserID:      userID,
		Type:        achievementType,
		Title:       title,
		Description: description,
		EarnedAt:    time.Now(),
	})
}

func (s *ProgressionService) unlockNext(tx *gorm.DB, userID uint, challenge *model.Challenge) error {
	next, err := s.ChallengeRepo.FindNextInSequence(challenge.Type, challenge.OrderIndex)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // end of the sequence
		}
		return err
	}
	return s.UserChallengeRepo.Unlock(tx, userID, next.ID)
}

// MarkManualComplete completes a form or drill challenge on the
// athlete's word; there is no measurement to compare. Distance and
// endurance challenges only complete through recorded activities.
func (s *ProgressionService) MarkManualComplete(userID, challengeID uint) error {
	state, err := s.UserChallengeRepo.FindByUserAndChallenge(userID, challengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrChallengeNotFound
		}
		return err
	}

	if state.Status == model.StatusCompleted {
		return util.ErrAlreadyCompleted
	}
	if state.Status == model.StatusLocked {
		return util.ErrChallengeLocked
	}

	challenge, err := s.ChallengeRepo.FindByID(challengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrChallengeNotFound
		}
		return err
	}

	if challenge.Type != model.ChallengeForm && challenge.Type != model.ChallengeDrill {
		return util.ErrWrongChallengeType
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return s.completeInTx(tx, userID, challenge, model.AchievementManualComplete,
			fmt.Sprintf("Manually marked %s as complete - %d points awarded", challenge.Title, challenge.PointsReward),
			fmt.Sprintf("%s Done!", challenge.Title))
	})
	if err != nil {
		return err
	}

	monitoring.ChallengesCompleted.WithLabelValues("manual").Inc()
	s.reportOutcome(userID, true, state.Attempts+1)
	return nil
}

// StartChallenge moves an available non-distance challenge into
// in_progress. Distance challenges jump straight from available to
// completed when an activity satisfies them.
func (s *ProgressionService) StartChallenge(userID, challengeID uint) error {
	challenge, err := s.ChallengeRepo.FindByID(challengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrChallengeNotFound
		}
		return err
	}
	if challenge.Type == model.ChallengeDistance {
		return util.ErrWrongChallengeType
	}

	state, err := s.UserChallengeRepo.FindByUserAndChallenge(userID, challengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrChallengeNotFound
		}
		return err
	}
	switch state.Status {
	case model.StatusCompleted:
		return util.ErrAlreadyCompleted
	case model.StatusLocked:
		return util.ErrChallengeLocked
	}

	return s.UserChallengeRepo.MarkInProgress(userID, challengeID)
}

// InitializeForUser bulk-creates state rows for every active catalog
// entry the user does not have yet. The seeding policy lives in
// seedPolicy so the unlock rules stay data, not type checks.
func (s *ProgressionService) InitializeForUser(userID uint) error {
	challenges, err := s.ChallengeRepo.FindActive()
	if err != nil {
		return err
	}

	existing, err := s.UserChallengeRepo.ExistingChallengeIDs(userID)
	if err != nil {
		return err
	}

	firstSeen := make(map[model.ChallengeType]bool)
	states := make([]model.UserChallenge, 0, len(challenges))
	for _, ch := range challenges {
		rule := seedPolicy[ch.Type]
		isFirst := !firstSeen[ch.Type]
		firstSeen[ch.Type] = true

		if existing[ch.ID] {
			continue
		}

		status := model.StatusLocked
		if rule.alwaysAvailable || (rule.firstAvailable && isFirst) {
			status = model.StatusAvailable
		}

		states = append(states, model.UserChallenge{
			UserID:      userID,
			ChallengeID: ch.ID,
			Status:      status,
			YearEarned:  time.Now().Year(),
		})
	}

	return s.UserChallengeRepo.BulkCreate(states)
}

func (s *ProgressionService) GetUserChallenges(userID uint) ([]model.UserChallenge, error) {
	return s.UserChallengeRepo.FindByUser(userID)
}

func (s *ProgressionService) GetUserActivities(userID uint) ([]model.Activity, error) {
	return s.ActivityRepo.FindByUser(userID)
}

func (s *ProgressionService) GetUserAchievements(userID uint) ([]model.Achievement, error) {
	return s.AchievementRepo.FindByUser(userID)
}

func (s *ProgressionService) reportOutcomes(userID uint, linkedChallengeID *uint, completed []CompletedChallenge) {
	if s.Analytics == nil {
		return
	}
	for range completed {
		s.reportOutcome(userID, true, 1)
	}
	if linkedChallengeID == nil || len(completed) > 0 {
		return
	}
	// A targeted attempt that completed nothing is a failed outcome.
	s.reportOutcome(userID, false, 1)
}

func (s *ProgressionService) reportOutcome(userID uint, completedOutcome bool, attempts int) {
	if s.Analytics == nil {
		return
	}
	if err := s.Analytics.Update(userID, completedOutcome, attempts); err != nil {
		logger.Log.Error("analytics update failed",
			zap.Uint("userID", userID), zap.Bool("completed", completedOutcome), zap.Error(err))
	}
}
