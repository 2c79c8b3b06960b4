package service

import (
	"errors"
	"time"

	"kickstart_run_backend/internal/config"
	"kickstart_run_backend/internal/model"
	"kickstart_run_backend/internal/repository"
	"kickstart_run_backend/internal/util"
	"kickstart_run_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const consentAgeThreshold = 13

// AuthService handles registration, login and the onboarding hooks
// that seed a new athlete's challenge and adventure state.
type AuthService struct {
	UserRepo    *repository.UserRepository
	Progression *ProgressionService
	Adventures  *AdventureService
	JWTConfig   config.JWTConfig
}

func NewAuthService(userRepo *repository.UserRepository, progression *ProgressionService, adventures *AdventureService, jwtConfig config.JWTConfig) *AuthService {
	return &AuthService{
		UserRepo:    userRepo,
		Progression: progression,
		Adventures:  adventures,
		JWTConfig:   jwtConfig,
	}
}

type RegisterInput struct {
	Email                string `json:"email" binding:"required,email"`
	Password             string `json:"password" binding:"required,min=8"`
	AthleteName          string `json:"athleteName" binding:"required"`
	SchoolClub           string `json:"schoolClub"`
	DateOfBirth          string `json:"dateOfBirth" binding:"required"`
	ParentEmail          string `json:"parentEmail"`
	ParentalConsentGiven bool   `json:"parentalConsentGiven"`
	ConsentLeaderboard   *bool  `json:"consentLeaderboard"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Register creates the account and seeds its progression state. Ages
// outside 6-18 are rejected; under-13 accounts without recorded
// parental consent start in pending_parent_consent.
func (s *AuthService) Register(input RegisterInput) (*AuthResult, error) {
	age := util.AgeFromDateOfBirth(input.DateOfBirth, time.Now().Year())
	if age < 6 || age > 18 {
		return nil, util.ErrInvalidAge
	}

	if _, err := s.UserRepo.FindByEmail(input.Email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	status := model.AccountActive
	if age < consentAgeThreshold && !input.ParentalConsentGiven {
		status = model.AccountPendingParentConsent
	}

	user := &model.User{
		Email:                input.Email,
		Password:             string(hashed),
		AthleteName:          input.AthleteName,
		SchoolClub:           input.SchoolClub,
		DateOfBirth:          input.DateOfBirth,
		Age:                  age,
		ParentEmail:          input.ParentEmail,
		Role:                 model.Athlete,
		ConsentDataUse:       true,
		ParentalConsentGiven: input.ParentalConsentGiven,
		AccountStatus:        status,
		YearJoined:           time.Now().Year(),
		LastLogin:            time.Now(),
	}
	if input.ConsentLeaderboard != nil {
		user.ConsentLeaderboard = *input.ConsentLeaderboard
		user.OptOutPublic = !*input.ConsentLeaderboard
	} else {
		user.ConsentLeaderboard = true
	}

	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}

	// Onboarding seeds are best-effort: a partial seed repairs itself on
	// the next challenge or adventure read.
	if err := s.Progression.InitializeForUser(user.ID); err != nil {
		logger.Log.Error("challenge seed failed", zap.Uint("userID", user.ID), zap.Error(err))
	}
	if err := s.Adventures.InitializeForUser(user.ID); err != nil {
		logger.Log.Error("adventure seed failed", zap.Uint("userID", user.ID), zap.Error(err))
	}

	token, err := util.GenerateJWT(user, s.JWTConfig.Secret, s.JWTConfig.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Login(input LoginInput) (*AuthResult, error) {
	user, err := s.UserRepo.FindByEmail(input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, util.ErrUserNotFound
	}

	if err := s.UserRepo.UpdateLastLogin(user.ID); err != nil {
		logger.Log.Warn("last login update failed", zap.Uint("userID", user.ID), zap.Error(err))
	}

	token, err := util.GenerateJWT(user, s.JWTConfig.Secret, s.JWTConfig.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}
