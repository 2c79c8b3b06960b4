package repository

import (
	"kickstart_run_backend/internal/model"

	"gorm.io/gorm"
)

type ActivityRepository struct {
	DB *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

func (r *ActivityRepository) Create(tx *gorm.DB, activity *model.Activity) error {
	return tx.Create(activity).Error
}

func (r *ActivityRepository) FindByUser(userID uint) ([]model.Activity, error) {
	var activities []model.Activity
	err := r.DB.Where("user_id = ?", userID).
		Order("started_at desc").
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

// UserTotal is one user's raw GPS aggregate. Rounding and ranking rules
// live in the ranking service so they hold on any storage engine.
type UserTotal struct {
	UserID        uint
	AthleteName   string
	SchoolClub    string
	Age           int
	OptOutPublic  bool
	TotalKm       float64
	ActivityCount int
}

// UserTotals aggregates distance and activity count for every user in
// one grouped query. Users with no activities appear with zero totals.
func (r *ActivityRepository) UserTotals() ([]UserTotal, error) {
	var totals []UserTotal
	err := r.DB.Table("users u").
		Select("u.id AS user_id, u.athlete_name, u.school_club, u.age, u.opt_out_public, COALESCE(SUM(a.distance_km), 0) AS total_km, COUNT(a.id) AS activity_count").
		Joins("LEFT JOIN activities a ON a.user_id = u.id AND a.deleted_at IS NULL").
		Where("u.deleted_at IS NULL").
		Group("u.id, u.athlete_name, u.school_club, u.age, u.opt_out_public").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}
