package model

type ChallengeType string

const (
	ChallengeDistance  ChallengeType = "distance"
	ChallengeDrill     ChallengeType = "drill"
	ChallengeForm      ChallengeType = "form"
	ChallengeEndurance ChallengeType = "endurance"
)

// Challenge is a catalog entry. Admin-managed; the progression engine
// never mutates it.
type Challenge struct {
	BaseModel
	Title            string        `gorm:"size:150;not null" json:"title"`
	Description      string        `gorm:"size:500" json:"description"`
	Type             ChallengeType `gorm:"size:20;not null;index" json:"type"`
	IsActive         bool          `gorm:"default:true" json:"isActive"`
	OrderIndex       int           `gorm:"not null;index" json:"orderIndex"`
	PointsReward     int           `gorm:"default:100" json:"pointsReward"`
	TargetDistanceKm float64       `json:"targetDistanceKm"` // 0 = no distance target
	TargetTimeSec    int           `json:"targetTimeSeconds"` // 0 = no time target
}

func (Challenge) TableName() string {
	return "challenges"
}
