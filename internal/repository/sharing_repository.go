package repository

import (
	"kickstart_run_backend/internal/model"

	"gorm.io/gorm"
)

type SharingRepository struct {
	DB *gorm.DB
}

func NewSharingRepository(db *gorm.DB) *SharingRepository {
	return &SharingRepository{DB: db}
}

func (r *SharingRepository) FindStreak(userID uint) (*model.SharingStreak, error) {
	var streak model.SharingStreak
	err := r.DB.Where("user_id = ?", userID).First(&streak).Error
	if err != nil {
		return nil, err
	}
	return &streak, nil
}

func (r *SharingRepository) CreateStreak(streak *model.SharingStreak) error {
	return r.DB.Create(streak).Error
}

func (r *SharingRepository) SaveStreak(streak *model.SharingStreak) error {
	return r.DB.Save(streak).Error
}

func (r *SharingRepository) CreateShare(share *model.ShareActivity) error {
	return r.DB.Create(share).Error
}

func (r *SharingRepository) LatestShare(userID uint) (*model.ShareActivity, error) {
	var share model.ShareActivity
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at desc").
		First(&share).Error
	if err != nil {
		return nil, err
	}
	return &share, nil
}

func (r *SharingRepository) ShareHistory(userID uint, limit int) ([]model.ShareActivity, error) {
	var shares []model.ShareActivity
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&shares).Error
	if err != nil {
		return nil, err
	}
	return shares, nil
}

func (r *SharingRepository) TopStreaks(limit int) ([]model.SharingStreak, error) {
	var streaks []model.SharingStreak
	err := r.DB.Order("current_streak desc").
		Limit(limit).
		Find(&streaks).Error
	if err != nil {
		return nil, err
	}
	return streaks, nil
}
