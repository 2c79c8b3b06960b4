package model

import "time"

type ChallengeStatus string

const (
	StatusLocked     ChallengeStatus = "locked"
	StatusAvailable  ChallengeStatus = "available"
	StatusInProgress ChallengeStatus = "in_progress"
	StatusCompleted  ChallengeStatus = "completed"
)

// UserChallenge is the per-(user, challenge) state machine row.
// Transitions are monotonic: locked -> available -> in_progress ->
// completed, except the unlock cascade which only ever moves
// locked -> available. completed is terminal.
type UserChallenge struct {
	BaseModel
	UserID      uint            `gorm:"not null;index:idx_user_challenge,unique" json:"userId"`
	ChallengeID uint            `gorm:"not null;index:idx_user_challenge,unique" json:"challengeId"`
	Status      ChallengeStatus `gorm:"size:20;not null;default:'locked'" json:"status"`
	Attempts    int             `gorm:"default:0" json:"attempts"`
	BestTimeSec int             `json:"bestTime"` // seconds
	BestPace    float64         `json:"bestPace"` // min/km
	CompletedAt *time.Time      `json:"completedAt"`
	Points      int             `gorm:"default:0" json:"points"`
	YearEarned  int             `json:"yearEarned"`

	Challenge *Challenge `gorm:"foreignKey:ChallengeID" json:"challenge,omitempty"`
}

func (UserChallenge) TableName() string {
	return "user_challenges"
}
