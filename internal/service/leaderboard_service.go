package service

import (
	"kickstart_run_backend/internal/model"
	"kickstart_run_backend/internal/repository"
	"kickstart_run_backend/pkg/logger"

	"go.uber.org/zap"
)

// LeaderboardService maintains denormalized per-school snapshots for
// cheap reads on school pages. A background job recomputes them from
// activities; the live ranking endpoints never read these tables.
type LeaderboardService struct {
	LeaderboardRepo   *repository.LeaderboardRepository
	UserChallengeRepo *repository.UserChallengeRepository
	Rankings          *RankingService
}

func NewLeaderboardService(leaderboardRepo *repository.LeaderboardRepository, userChallengeRepo *repository.UserChallengeRepository, rankings *RankingService) *LeaderboardService {
	return &LeaderboardService{
		LeaderboardRepo:   leaderboardRepo,
		UserChallengeRepo: userChallengeRepo,
		Rankings:          rankings,
	}
}

// RecomputeAll rebuilds every school snapshot. Called on a timer; a
// failure for one school is logged and the rest continue.
func (s *LeaderboardService) RecomputeAll() {
	totals, err := s.Rankings.ActivityRepo.UserTotals()
	if err != nil {
		logger.Log.Error("leaderboard recompute aborted", zap.Error(err))
		return
	}

	bySchool := make(map[string][]repository.UserTotal)
	for _, t := range totals {
		if t.SchoolClub == "" {
			continue
		}
		bySchool[t.SchoolClub] = append(bySchool[t.SchoolClub], t)
	}

	for school, members := range bySchool {
		if err := s.recomputeSchool(school, members); err != nil {
			logger.Log.Error("leaderboard recompute failed",
				zap.String("school", school), zap.Error(err))
		}
	}
}

func (s *LeaderboardService) recomputeSchool(school string, members []repository.UserTotal) error {
	board, err := s.LeaderboardRepo.GetOrCreate(school)
	if err != nil {
		return err
	}

	ranked := rankedTotals(members)

	var totalPoints float64
	for _, r := range ranked {
		totalPoints += r.Points
	}

	top := ranked
	if limit := s.Rankings.Config.SchoolTopContributors; limit > 0 && len(top) > limit {
		top = top[:limit]
	}

	for _, r := range top {
		completedCount, err := s.UserChallengeRepo.CountCompleted(r.UserID)
		if err != nil {
			return err
		}
		entry := &model.LeaderboardEntry{
			LeaderboardID:       board.ID,
			UserID:              r.UserID,
			TotalPoints:         r.Points,
			ChallengesCompleted: int(completedCount),
			Rank:                r.Rank,
		}
		if err := s.LeaderboardRepo.UpsertEntry(entry); err != nil {
			return err
		}
	}

	return s.LeaderboardRepo.UpdateSnapshot(board.ID, round1(totalPoints))
}

// SchoolSnapshot returns the cached board and its top contributors.
func (s *LeaderboardService) SchoolSnapshot(school string) (*model.Leaderboard, []model.LeaderboardEntry, error) {
	board, err := s.LeaderboardRepo.GetOrCreate(school)
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.LeaderboardRepo.EntriesRanked(board.ID, s.Rankings.Config.SchoolTopContributors)
	if err != nil {
		return nil, nil, err
	}
	return board, entries, nil
}
