package model

import "time"

// Leaderboard is a denormalized per-school snapshot maintained by the
// background recompute job. Never authoritative: ranking reads always
// recompute from activities.
type Leaderboard struct {
	BaseModel
	SchoolClub  string    `gorm:"size:150;not null;uniqueIndex" json:"schoolClub"`
	TotalPoints float64   `gorm:"default:0" json:"totalPoints"`
	IsActive    bool      `gorm:"default:true" json:"isActive"`
	LastUpdated time.Time `json:"lastUpdated"`
}

func (Leaderboard) TableName() string {
	return "leaderboards"
}

type LeaderboardEntry struct {
	BaseModel
	LeaderboardID       uint    `gorm:"not null;index:idx_board_user,unique" json:"leaderboardId"`
	UserID              uint    `gorm:"not null;index:idx_board_user,unique" json:"userId"`
	TotalPoints         float64 `gorm:"default:0" json:"totalPoints"`
	ChallengesCompleted int     `gorm:"default:0" json:"challengesCompleted"`
	Rank                int     `gorm:"default:0" json:"rank"`
}

func (LeaderboardEntry) TableName() string {
	return "leaderboard_entries"
}
