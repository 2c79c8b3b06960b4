package repository

import (
	"kickstart_run_backend/internal/model"

	"gorm.io/gorm"
)

type AchievementRepository struct {
	DB *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

func (r *AchievementRepository) Create(tx *gorm.DB, achievement *model.Achievement) error {
	return tx.Create(achievement).Error
}

func (r *AchievementRepository) FindByUser(userID uint) ([]model.Achievement, error) {
	var achievements []model.Achievement
	err := r.DB.Where("user_id = ?", userID).
		Order("earned_at desc").
		Find(&achievements).Error
	if err != nil {
		return nil, err
	}
	return achievements, nil
}
