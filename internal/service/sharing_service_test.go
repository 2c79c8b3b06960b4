package service

import (
	"testing"
	"time"

	"kickstart_run_backend/internal/model"
	"kickstart_run_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSharingEnv(t *testing.T) (*testEnv, *SharingService) {
	t.Helper()
	env := newTestEnv(t)
	sharing := NewSharingService(repository.NewSharingRepository(env.db))
	return env, sharing
}

// backdateStreak fakes an existing streak whose last share was n days
// ago.
func backdateStreak(t *testing.T, env *testEnv, userID uint, current int, daysAgo int) {
	t.Helper()
	last := time.Now().AddDate(0, 0, -daysAgo).Truncate(24 * time.Hour)
	require.NoError(t, env.db.Create(&model.SharingStreak{
		UserID:           userID,
		CurrentStreak:    current,
		LongestStreak:    current,
		LastShareDate:    &last,
		TotalShares:      current,
		StreakMultiplier: 1,
	}).Error)
}

func TestFirstShareStartsStreak(t *testing.T) {
	env, sharing := newSharingEnv(t)
	user := createUser(t, env, "social", "", 12)

	result, err := sharing.RecordShare(user.ID, ShareInput{Platform: "instagram", ShareType: "achievement"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Streak.CurrentStreak)
	assert.Equal(t, 10, result.Share.PointsEarned)
	assert.Equal(t, 1, result.Share.StreakDay)
	assert.Equal(t, 1.0, result.Streak.StreakMultiplier)
}

func TestSameDayShareEarnsBonusWithoutAdvancing(t *testing.T) {
	env, sharing := newSharingEnv(t)
	user := createUser(t, env, "social", "", 12)

	_, err := sharing.RecordShare(user.ID, ShareInput{Platform: "instagram", ShareType: "achievement"})
	require.NoError(t, err)

	second, err := sharing.RecordShare(user.ID, ShareInput{Platform: "tiktok", ShareType: "ranking"})
	require.NoError(t, err)

	assert.Equal(t, 1, second.Streak.CurrentStreak)
	assert.Equal(t, 5, second.Share.PointsEarned)
	assert.Equal(t, 15, second.Streak.StreakPoints)
	assert.Equal(t, 2, second.Streak.TotalShares)
}

func TestConsecutiveDayHitsTierAndMilestone(t *testing.T) {
	env, sharing := newSharingEnv(t)
	user := createUser(t, env, "social", "", 12)
	backdateStreak(t, env, user.ID, 2, 1)

	result, err := sharing.RecordShare(user.ID, ShareInput{Platform: "instagram", ShareType: "challenge"})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Streak.CurrentStreak)
	assert.Equal(t, 1.5, result.Streak.StreakMultiplier)
	assert.Equal(t, 15, result.Share.PointsEarned)
	assert.Equal(t, []string{"3-day-streak"}, result.NewMilestones)
	assert.Contains(t, result.Streak.MilestoneBadges, "3-day-streak")
}

func TestGapResetsStreak(t *testing.T) {
	env, sharing := newSharingEnv(t)
	user := createUser(t, env, "social", "", 12)
	backdateStreak(t, env, user.ID, 6, 3)

	result, err := sharing.RecordShare(user.ID, ShareInput{Platform: "instagram", ShareType: "achievement"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Streak.CurrentStreak)
	assert.Equal(t, 6, result.Streak.LongestStreak)
	assert.Equal(t, 10, result.Share.PointsEarned)
}

func TestStreakTiers(t *testing.T) {
	cases := []struct {
		days       int
		multiplier float64
		points     int
	}{
		{3, 1.5, 15},
		{7, 2.0, 20},
		{14, 2.5, 25},
		{30, 3.0, 30},
	}

	for _, tc := range cases {
		env, sharing := newSharingEnv(t)
		user := createUser(t, env, "social", "", 12)
		backdateStreak(t, env, user.ID, tc.days-1, 1)

		result, err := sharing.RecordShare(user.ID, ShareInput{Platform: "instagram", ShareType: "achievement"})
		require.NoError(t, err)

		assert.Equal(t, tc.days, result.Streak.CurrentStreak)
		assert.Equal(t, tc.multiplier, result.Streak.StreakMultiplier)
		assert.Equal(t, tc.points, result.Share.PointsEarned)
	}
}

func TestStreakAtRisk(t *testing.T) {
	env, sharing := newSharingEnv(t)
	fresh := createUser(t, env, "fresh", "", 12)
	lapsing := createUser(t, env, "lapsing", "", 13)
	backdateStreak(t, env, lapsing.ID, 4, 1)

	status, err := sharing.GetStreak(fresh.ID)
	require.NoError(t, err)
	assert.False(t, status.AtRisk)

	status, err = sharing.GetStreak(lapsing.ID)
	require.NoError(t, err)
	assert.True(t, status.AtRisk)

	// Sharing now clears the risk flag.
	_, err = sharing.RecordShare(lapsing.ID, ShareInput{Platform: "instagram", ShareType: "achievement"})
	require.NoError(t, err)
	status, err = sharing.GetStreak(lapsing.ID)
	require.NoError(t, err)
	assert.False(t, status.AtRisk)
}

func TestShareHistoryAndTopStreaks(t *testing.T) {
	env, sharing := newSharingEnv(t)
	ada := createUser(t, env, "ada", "", 12)
	ben := createUser(t, env, "ben", "", 13)

	_, err := sharing.RecordShare(ada.ID, ShareInput{Platform: "instagram", ShareType: "achievement"})
	require.NoError(t, err)
	_, err = sharing.RecordShare(ada.ID, ShareInput{Platform: "tiktok", ShareType: "ranking"})
	require.NoError(t, err)
	_, err = sharing.RecordShare(ben.ID, ShareInput{Platform: "instagram", ShareType: "achievement"})
	require.NoError(t, err)

	history, err := sharing.ShareHistory(ada.ID, 10)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	top, err := sharing.TopStreaks(10)
	require.NoError(t, err)
	assert.Len(t, top, 2)
}
