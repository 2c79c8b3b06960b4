package repository

import (
	"kickstart_run_backend/internal/model"

	"gorm.io/gorm"
)

type AdventureRepository struct {
	DB *gorm.DB
}

func NewAdventureRepository(db *gorm.DB) *AdventureRepository {
	return &AdventureRepository{DB: db}
}

func (r *AdventureRepository) FindForAgeGroup(ageGroup string) ([]model.Adventure, error) {
	var adventures []model.Adventure
	err := r.DB.Where("age_group = ? AND is_active = ?", ageGroup, true).
		Order("order_index asc").
		Find(&adventures).Error
	if err != nil {
		return nil, err
	}
	return adventures, nil
}

func (r *AdventureRepository) FindByID(id uint) (*model.Adventure, error) {
	var adventure model.Adventure
	err := r.DB.First(&adventure, id).Error
	if err != nil {
		return nil, err
	}
	return &adventure, nil
}

func (r *AdventureRepository) FindUserAdventures(userID uint) ([]model.UserAdventure, error) {
	var states []model.UserAdventure
	err := r.DB.Preload("Adventure").
		Joins("JOIN adventures ON adventures.id = user_adventures.adventure_id").
		Where("user_adventures.user_id = ?", userID).
		Order("adventures.order_index asc").
		Find(&states).Error
	if err != nil {
		return nil, err
	}
	return states, nil
}

func (r *AdventureRepository) FindUserAdventure(userID, adventureID uint) (*model.UserAdventure, error) {
	var state model.UserAdventure
	err := r.DB.Where("user_id = ? AND adventure_id = ?", userID, adventureID).
		First(&state).Error
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (r *AdventureRepository) CreateUserAdventure(state *model.UserAdventure) error {
	return r.DB.Create(state).Error
}

func (r *AdventureRepository) SaveUserAdventure(state *model.UserAdventure) error {
	return r.DB.Save(state).Error
}
