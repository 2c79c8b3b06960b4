package repository

import (
	"kickstart_run_backend/internal/model"

	"gorm.io/gorm"
)

type ChallengeRepository struct {
	DB *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{DB: db}
}

func (r *ChallengeRepository) FindActive() ([]model.Challenge, error) {
	var challenges []model.Challenge
	err := r.DB.Where("is_active = ?", true).
		Order("type asc, order_index asc").
		Find(&challenges).Error
	if err != nil {
		return nil, err
	}
	return challenges, nil
}

func (r *ChallengeRepository) FindByID(id uint) (*model.Challenge, error) {
	var challenge model.Challenge
	err := r.DB.First(&challenge, id).Error
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

// FindNextInSequence returns the active challenge of the same type with
// the next order index, used by the unlock cascade.
func (r *ChallengeRepository) FindNextInSequence(challengeType model.ChallengeType, orderIndex int) (*model.Challenge, error) {
	var challenge model.Challenge
	err := r.DB.Where("type = ? AND order_index = ? AND is_active = ?", challengeType, orderIndex+1, true).
		First(&challenge).Error
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (r *ChallengeRepository) Create(challenge *model.Challenge) error {
	return r.DB.Create(challenge).Error
}

func (r *ChallengeRepository) Update(challenge *model.Challenge) error {
	return r.DB.Save(challenge).Error
}

func (r *ChallengeRepository) Deactivate(id uint) error {
	return r.DB.Model(&model.Challenge{}).Where("id = ?", id).
		Update("is_active", false).Error
}
