package model

import "time"

// Activity is an immutable GPS run record. Distances arrive
// pre-computed from the tracking client; this is the only input that
// can change challenge state.
type Activity struct {
	BaseModel
	UserID      uint      `gorm:"not null;index" json:"userId"`
	ChallengeID *uint     `gorm:"index" json:"challengeId"`
	DistanceKm  float64   `gorm:"not null" json:"distanceKm"`
	DurationSec int       `gorm:"not null" json:"durationSeconds"`
	Pace        float64   `gorm:"not null" json:"paceMinPerKm"`
	StartedAt   time.Time `gorm:"not null" json:"startedAt"`
}

func (Activity) TableName() string {
	return "activities"
}
