package repository

import (
	"errors"
	"kickstart_run_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LeaderboardRepository struct {
	DB *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) *LeaderboardRepository {
	return &LeaderboardRepository{DB: db}
}

func (r *LeaderboardRepository) GetOrCreate(schoolClub string) (*model.Leaderboard, error) {
	var board model.Leaderboard
	err := r.DB.Where("school_club = ?", schoolClub).First(&board).Error
	if err == nil {
		return &board, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	board = model.Leaderboard{SchoolClub: schoolClub, IsActive: true, LastUpdated: time.Now()}
	if err := r.DB.Create(&board).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *LeaderboardRepository) UpdateSnapshot(boardID uint, totalPoints float64) error {
	return r.DB.Model(&model.Leaderboard{}).Where("id = ?", boardID).
		Updates(map[string]interface{}{
			"total_points": totalPoints,
			"last_updated": time.Now(),
		}).Error
}

// UpsertEntry writes one contributor row, keyed by (leaderboard, user).
func (r *LeaderboardRepository) UpsertEntry(entry *model.LeaderboardEntry) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "leaderboard_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"total_points", "challenges_completed", "rank", "updated_at"}),
	}).Create(entry).Error
}

func (r *LeaderboardRepository) EntriesRanked(boardID uint, limit int) ([]model.LeaderboardEntry, error) {
	var entries []model.LeaderboardEntry
	err := r.DB.Where("leaderboard_id = ?", boardID).
		Order("rank asc").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
