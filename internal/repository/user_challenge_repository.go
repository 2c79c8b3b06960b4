package repository

import (
	"kickstart_run_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserChallengeRepository struct {
	DB *gorm.DB
}

func NewUserChallengeRepository(db *gorm.DB) *UserChallengeRepository {
	return &UserChallengeRepository{DB: db}
}

func (r *UserChallengeRepository) FindByUser(userID uint) ([]model.UserChallenge, error) {
	var states []model.UserChallenge
	err := r.DB.Preload("Challenge").
		Joins("JOIN challenges ON challenges.id = user_challenges.challenge_id AND challenges.is_active = ?", true).
		Where("user_challenges.user_id = ?", userID).
		Order("challenges.type asc, challenges.order_index asc").
		Find(&states).Error
	if err != nil {
		return nil, err
	}
	return states, nil
}

func (r *UserChallengeRepository) FindByUserAndChallenge(userID, challengeID uint) (*model.UserChallenge, error) {
	return findByUserAndChallenge(r.DB, userID, challengeID)
}

// FindByUserAndChallengeTx reads the state row on the caller's
// transaction so the read sees that transaction's own writes.
func (r *UserChallengeRepository) FindByUserAndChallengeTx(tx *gorm.DB, userID, challengeID uint) (*model.UserChallenge, error) {
	return findByUserAndChallenge(tx, userID, challengeID)
}

func findByUserAndChallenge(db *gorm.DB, userID, challengeID uint) (*model.UserChallenge, error) {
	var state model.UserChallenge
	err := db.Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		First(&state).Error
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// ExistingChallengeIDs returns the challenge ids the user already has a
// state row for; used by onboarding to avoid duplicate rows.
func (r *UserChallengeRepository) ExistingChallengeIDs(userID uint) (map[uint]bool, error) {
	var ids []uint
	err := r.DB.Model(&model.UserChallenge{}).
		Where("user_id = ?", userID).
		Pluck("challenge_id", &ids).Error
	if err != nil {
		return nil, err
	}
	existing := make(map[uint]bool, len(ids))
	for _, id := range ids {
		existing[id] = true
	}
	return existing, nil
}

func (r *UserChallengeRepository) BulkCreate(states []model.UserChallenge) error {
	if len(states) == 0 {
		return nil
	}
	return r.DB.Create(&states).Error
}

// OpenByType locks and returns the user's available/in_progress rows of
// the given challenge type, ordered by catalog sequence. Must run inside
// a transaction; the row locks serialize concurrent submissions for the
// same user.
func (r *UserChallengeRepository) OpenByType(tx *gorm.DB, userID uint, challengeType model.ChallengeType) ([]model.UserChallenge, error) {
	q := tx
	// SQLite has no SELECT ... FOR UPDATE; its writes serialize anyway.
	if tx.Dialector.Name() == "mysql" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var states []model.UserChallenge
	err := q.Preload("Challenge").
		Joins("JOIN challenges ON challenges.id = user_challenges.challenge_id").
		Where("user_challenges.user_id = ? AND challenges.type = ? AND user_challenges.status IN ?",
			userID, challengeType, []model.ChallengeStatus{model.StatusAvailable, model.StatusInProgress}).
		Order("challenges.order_index asc").
		Find(&states).Error
	if err != nil {
		return nil, err
	}
	return states, nil
}

func (r *UserChallengeRepository) Complete(tx *gorm.DB, userID, challengeID uint, points, yearEarned int) error {
	return tx.Model(&model.UserChallenge{}).
		Where("user_id = ? AND challenge_id = ? AND status != ?", userID, challengeID, model.StatusCompleted).
		Updates(map[string]interface{}{
			"status":       model.StatusCompleted,
			"completed_at": tx.NowFunc(),
			"points":       points,
			"year_earned":  yearEarned,
		}).Error
}

func (r *UserChallengeRepository) Unlock(tx *gorm.DB, userID, challengeID uint) error {
	return tx.Model(&model.UserChallenge{}).
		Where("user_id = ? AND challenge_id = ? AND status = ?", userID, challengeID, model.StatusLocked).
		Update("status", model.StatusAvailable).Error
}

func (r *UserChallengeRepository) MarkInProgress(userID, challengeID uint) error {
	return r.DB.Model(&model.UserChallenge{}).
		Where("user_id = ? AND challenge_id = ? AND status = ?", userID, challengeID, model.StatusAvailable).
		Update("status", model.StatusInProgress).Error
}

func (r *UserChallengeRepository) IncrementAttempts(tx *gorm.DB, userID, challengeID uint) error {
	return tx.Model(&model.UserChallenge{}).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Update("attempts", gorm.Expr("attempts + 1")).Error
}

// Recent returns the user's most recently completed-at challenge rows,
// newest first, feeding the trend factor of the difficulty model.
func (r *UserChallengeRepository) Recent(userID uint, limit int) ([]model.UserChallenge, error) {
	var states []model.UserChallenge
	err := r.DB.Where("user_id = ?", userID).
		Order("completed_at desc").
		Limit(limit).
		Find(&states).Error
	if err != nil {
		return nil, err
	}
	return states, nil
}

func (r *UserChallengeRepository) CountCompleted(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserChallenge{}).
		Where("user_id = ? AND status = ?", userID, model.StatusCompleted).
		Count(&count).Error
	return count, err
}
