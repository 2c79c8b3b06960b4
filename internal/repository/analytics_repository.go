package repository

import (
	"kickstart_run_backend/internal/model"

	"gorm.io/gorm"
)

type AnalyticsRepository struct {
	DB *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{DB: db}
}

func (r *AnalyticsRepository) FindByUser(userID uint) (*model.UserPerformanceAnalytics, error) {
	var analytics model.UserPerformanceAnalytics
	err := r.DB.Where("user_id = ?", userID).First(&analytics).Error
	if err != nil {
		return nil, err
	}
	return &analytics, nil
}

func (r *AnalyticsRepository) Create(analytics *model.UserPerformanceAnalytics) error {
	return r.DB.Create(analytics).Error
}

// Save writes all analytics fields in a single transaction so readers
// never observe a half-updated row.
func (r *AnalyticsRepository) Save(analytics *model.UserPerformanceAnalytics) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Save(analytics).Error
	})
}
