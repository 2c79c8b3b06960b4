package model

import "time"

const (
	AchievementDistanceMilestone = "distance_milestone"
	AchievementManualComplete    = "manual_complete"
)

type Achievement struct {
	BaseModel
	UserID      uint      `gorm:"not null;index" json:"userId"`
	Type        string    `gorm:"size:50;not null" json:"type"`
	Title       string    `gorm:"size:150;not null" json:"title"`
	Description string    `gorm:"size:500" json:"description"`
	EarnedAt    time.Time `gorm:"not null" json:"earnedAt"`
}

func (Achievement) TableName() string {
	return "achievements"
}
