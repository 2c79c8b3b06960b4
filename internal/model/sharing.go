package model

import "time"

// SharingStreak tracks consecutive days with at least one share.
// Streak points are a separate currency from GPS ranking points.
type SharingStreak struct {
	BaseModel
	UserID           uint       `gorm:"not null;uniqueIndex" json:"userId"`
	CurrentStreak    int        `gorm:"default:0" json:"currentStreak"`
	LongestStreak    int        `gorm:"default:0" json:"longestStreak"`
	LastShareDate    *time.Time `json:"lastShareDate"`
	TotalShares      int        `gorm:"default:0" json:"totalShares"`
	StreakMultiplier float64    `gorm:"default:1" json:"streakMultiplier"`
	StreakPoints     int        `gorm:"default:0" json:"streakPoints"`
	MilestoneBadges  string     `gorm:"size:1000" json:"milestoneBadges"` // comma separated badge names
}

func (SharingStreak) TableName() string {
	return "sharing_streaks"
}

type ShareActivity struct {
	BaseModel
	UserID        uint   `gorm:"not null;index" json:"userId"`
	ShareToken    string `gorm:"size:36;uniqueIndex" json:"shareToken"` // public share link id
	AchievementID *uint  `json:"achievementId"`
	ChallengeID   *uint  `json:"challengeId"`
	Platform      string `gorm:"size:30;not null" json:"platform"`
	ShareType     string `gorm:"size:30;not null" json:"shareType"` // achievement, challenge, ranking
	PointsEarned  int    `gorm:"default:10" json:"pointsEarned"`
	StreakDay     int    `gorm:"default:1" json:"streakDay"`
}

func (ShareActivity) TableName() string {
	return "share_activities"
}
