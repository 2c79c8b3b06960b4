package service

import (
	"errors"

	"kickstart_run_backend/internal/model"
	"kickstart_run_backend/internal/repository"
	"kickstart_run_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

type ProfileUpdateInput struct {
	AthleteName string `json:"athleteName"`
	SchoolClub  string `json:"schoolClub"`
	ParentEmail string `json:"parentEmail"`
}

func (s *UserService) UpdateProfile(userID uint, input ProfileUpdateInput) (*model.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if input.AthleteName != "" {
		user.AthleteName = input.AthleteName
	}
	if input.SchoolClub != "" {
		user.SchoolClub = input.SchoolClub
	}
	if input.ParentEmail != "" {
		user.ParentEmail = input.ParentEmail
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetPublicOptOut flips the privacy flag that removes the athlete from
// public ranking views. Their activities keep counting toward school
// totals.
func (s *UserService) SetPublicOptOut(userID uint, optOut bool) error {
	if _, err := s.GetProfile(userID); err != nil {
		return err
	}
	return s.UserRepo.UpdateOptOut(userID, optOut)
}

// GrantParentalConsent records consent and activates a pending account.
func (s *UserService) GrantParentalConsent(userID uint) (*model.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	user.ParentalConsentGiven = true
	if user.AccountStatus == model.AccountPendingParentConsent {
		user.AccountStatus = model.AccountActive
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
