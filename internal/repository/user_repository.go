package repository

import (
	"kickstart_run_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) UpdateOptOut(userID uint, optOut bool) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).
		Update("opt_out_public", optOut).Error
}

func (r *UserRepository) UpdateLastLogin(userID uint) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).
		Update("last_login", time.Now()).Error
}

// DistinctSchools lists every school/club any athlete has registered
// under, including ones with no recorded activities yet.
func (r *UserRepository) DistinctSchools() ([]string, error) {
	var schools []string
	err := r.DB.Model(&model.User{}).
		Where("school_club IS NOT NULL AND school_club != ''").
		Distinct("school_club").
		Order("school_club asc").
		Pluck("school_club", &schools).Error
	if err != nil {
		return nil, err
	}
	return schools, nil
}
