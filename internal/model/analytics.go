package model

import "time"

type PerformanceTrend string

const (
	TrendImproving PerformanceTrend = "improving"
	TrendStable    PerformanceTrend = "stable"
	TrendDeclining PerformanceTrend = "declining"
)

// UserPerformanceAnalytics holds the rolling per-user statistics that
// feed the adaptive difficulty model. One row per user, lazily created
// with optimistic defaults so new athletes are not penalized on their
// first difficulty calculation.
type UserPerformanceAnalytics struct {
	BaseModel
	UserID            uint             `gorm:"not null;uniqueIndex" json:"userId"`
	AvgCompletionRate float64          `gorm:"default:80" json:"avgCompletionRate"` // 0-100
	AvgAttemptCount   float64          `gorm:"default:1" json:"avgAttemptCount"`
	RecentTrend       PerformanceTrend `gorm:"size:20;default:'stable'" json:"recentTrend"`
	AdaptiveLevel     float64          `gorm:"default:1" json:"adaptiveLevel"` // baseline set at row creation
	LastAnalysisAt    time.Time        `json:"lastAnalysisAt"`
}

func (UserPerformanceAnalytics) TableName() string {
	return "user_performance_analytics"
}
