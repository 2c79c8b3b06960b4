package model

import "time"

// Adventure is a themed quest tied to an age bracket; athletes complete
// it by accumulating running distance across activities.
type Adventure struct {
	BaseModel
	Title              string  `gorm:"size:150;not null" json:"title"`
	Description        string  `gorm:"size:500" json:"description"`
	Theme              string  `gorm:"size:30;not null" json:"theme"` // fantasy, space, ocean, dinosaur, magic
	AgeGroup           string  `gorm:"size:10;not null;index" json:"ageGroup"` // 6-8, 9-12, 13-18
	RequiredDistanceKm float64 `gorm:"not null" json:"requiredDistanceKm"`
	RewardType         string  `gorm:"size:30;not null" json:"rewardType"` // badge, character, treasure, power
	RewardData         string  `gorm:"size:500" json:"rewardData"`
	IsActive           bool    `gorm:"default:true" json:"isActive"`
	OrderIndex         int     `gorm:"not null" json:"orderIndex"`
}

func (Adventure) TableName() string {
	return "adventures"
}

type UserAdventure struct {
	BaseModel
	UserID             uint            `gorm:"not null;index:idx_user_adventure,unique" json:"userId"`
	AdventureID        uint            `gorm:"not null;index:idx_user_adventure,unique" json:"adventureId"`
	Status             ChallengeStatus `gorm:"size:20;not null;default:'locked'" json:"status"`
	ProgressDistanceKm float64         `gorm:"default:0" json:"progressDistanceKm"`
	CompletedAt        *time.Time      `json:"completedAt"`
	RewardsEarned      string          `gorm:"size:500" json:"rewardsEarned"`

	Adventure *Adventure `gorm:"foreignKey:AdventureID" json:"adventure,omitempty"`
}

func (UserAdventure) TableName() string {
	return "user_adventures"
}
