package service

import (
	"errors"
	"fmt"
	"time"

	"kickstart_run_backend/internal/model"
	"kickstart_run_backend/internal/repository"
	"kickstart_run_backend/internal/util"

	"gorm.io/gorm"
)

// AdventureService runs the themed quest track. Adventures are
// age-bracketed and complete by accumulated running distance, one
// active adventure at a time per user.
type AdventureService struct {
	AdventureRepo *repository.AdventureRepository
	UserRepo      *repository.UserRepository
}

func NewAdventureService(adventureRepo *repository.AdventureRepository, userRepo *repository.UserRepository) *AdventureService {
	return &AdventureService{AdventureRepo: adventureRepo, UserRepo: userRepo}
}

// InitializeForUser seeds the user's age-group adventures: the first in
// the sequence starts available, the rest locked.
func (s *AdventureService) InitializeForUser(userID uint) error {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return err
	}

	adventures, err := s.AdventureRepo.FindForAgeGroup(util.AgeGroupFor(user.Age))
	if err != nil {
		return err
	}

	for i, adv := range adventures {
		_, err := s.AdventureRepo.FindUserAdventure(userID, adv.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		status := model.StatusLocked
		if i == 0 {
			status = model.StatusAvailable
		}
		state := &model.UserAdventure{
			UserID:      userID,
			AdventureID: adv.ID,
			Status:      status,
		}
		if err := s.AdventureRepo.CreateUserAdventure(state); err != nil {
			return err
		}
	}
	return nil
}

// ApplyDistance credits a run's distance to the user's active
// adventure. Completing one unlocks the next in the sequence; surplus
// distance does not carry over.
func (s *AdventureService) ApplyDistance(userID uint, distanceKm float64) error {
	if distanceKm <= 0 {
		return nil
	}

	states, err := s.AdventureRepo.FindUserAdventures(userID)
	if err != nil {
		return err
	}

	for i := range states {
		state := &states[i]
		if state.Status != model.StatusAvailable && state.Status != model.StatusInProgress {
			continue
		}
		adventure := state.Adventure
		if adventure == nil {
			a, err := s.AdventureRepo.FindByID(state.AdventureID)
			if err != nil {
				return err
			}
			adventure = a
		}

		state.ProgressDistanceKm += distanceKm
		state.Status = model.StatusInProgress

		if state.ProgressDistanceKm >= adventure.RequiredDistanceKm {
			now := time.Now()
			state.Status = model.StatusCompleted
			state.CompletedAt = &now
			state.RewardsEarned = fmt.Sprintf("%s:%s", adventure.RewardType, adventure.RewardData)
		}

		if err := s.AdventureRepo.SaveUserAdventure(state); err != nil {
			return err
		}

		if state.Status == model.StatusCompleted {
			return s.unlockNext(userID, states, i)
		}
		return nil
	}
	return nil
}

func (s *AdventureService) unlockNext(userID uint, states []model.UserAdventure, completedIdx int) error {
	for j := completedIdx + 1; j < len(states); j++ {
		if states[j].Status != model.StatusLocked {
			continue
		}
		states[j].Status = model.StatusAvailable
		return s.AdventureRepo.SaveUserAdventure(&states[j])
	}
	return nil
}

// GetUserAdventures returns the user's adventure states, seeding them
// first so a fresh account sees its track immediately.
func (s *AdventureService) GetUserAdventures(userID uint) ([]model.UserAdventure, error) {
	if err := s.InitializeForUser(userID); err != nil {
		return nil, err
	}
	return s.AdventureRepo.FindUserAdventures(userID)
}

// GetCatalog lists active adventures for one age group.
func (s *AdventureService) GetCatalog(ageGroup string) ([]model.Adventure, error) {
	if !util.ValidAgeGroup(ageGroup) {
		return nil, util.ErrAdventureNotFound
	}
	return s.AdventureRepo.FindForAgeGroup(ageGroup)
}
