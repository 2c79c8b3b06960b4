package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("this email is already registered")
	ErrInvalidAge         = errors.New("athlete must be between 6 and 18 years old")
	ErrInvalidActivity    = errors.New("invalid activity: distance, duration and pace must be positive")
	ErrChallengeNotFound  = errors.New("challenge not found")
	ErrAlreadyCompleted   = errors.New("challenge already completed")
	ErrChallengeLocked    = errors.New("challenge is locked")
	ErrWrongChallengeType = errors.New("challenge type cannot be completed manually")
	ErrAdventureNotFound  = errors.New("adventure not found")
)
