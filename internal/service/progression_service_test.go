package service

import (
	"testing"

	"kickstart_run_backend/internal/model"
	"kickstart_run_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeForUserSeedsByPolicy(t *testing.T) {
	env := newTestEnv(t)

	createChallenge(t, env, "First Kilometer", model.ChallengeDistance, 1, 100, 1, 0)
	createChallenge(t, env, "5K Builder", model.ChallengeDistance, 2, 150, 3, 0)
	createChallenge(t, env, "High Knees", model.ChallengeDrill, 1, 50, 0, 0)
	createChallenge(t, env, "Arm Swing", model.ChallengeForm, 1, 50, 0, 0)
	createChallenge(t, env, "Posture Check", model.ChallengeForm, 2, 50, 0, 0)
	createChallenge(t, env, "20 Minute Run", model.ChallengeEndurance, 1, 200, 0, 1200)
	createChallenge(t, env, "30 Minute Run", model.ChallengeEndurance, 2, 300, 0, 1800)

	user := createUser(t, env, "newbie", "", 9)
	require.NoError(t, env.progression.InitializeForUser(user.ID))

	states, err := env.states.FindByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, states, 7)

	byTitle := map[string]model.ChallengeStatus{}
	for _, s := range states {
		byTitle[s.Challenge.Title] = s.Status
	}

	assert.Equal(t, model.StatusAvailable, byTitle["First Kilometer"])
	assert.Equal(t, model.StatusLocked, byTitle["5K Builder"])
	assert.Equal(t, model.StatusAvailable, byTitle["High Knees"])
	assert.Equal(t, model.StatusAvailable, byTitle["Arm Swing"])
	assert.Equal(t, model.StatusAvailable, byTitle["Posture Check"])
	assert.Equal(t, model.StatusAvailable, byTitle["20 Minute Run"])
	assert.Equal(t, model.StatusLocked, byTitle["30 Minute Run"])
}

func TestInitializeForUserIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	user, _ := seedDistanceTrack(t, env)

	require.NoError(t, env.progression.InitializeForUser(user.ID))

	states, err := env.states.FindByUser(user.ID)
	require.NoError(t, err)
	assert.Len(t, states, 3)
}

func TestRecordActivityCascadesCompletions(t *testing.T) {
	env := newTestEnv(t)
	user, _ := seedDistanceTrack(t, env)

	result, err := env.progression.RecordActivity(user.ID, ActivityInput{
		DistanceKm:  5.2,
		DurationSec: 1800,
		Pace:        5.77,
	})
	require.NoError(t, err)

	require.Len(t, result.ChallengesCompleted, 3)
	assert.Equal(t, "First Kilometer", result.ChallengesCompleted[0].Title)
	assert.Equal(t, "5K Builder", result.ChallengesCompleted[1].Title)
	assert.Equal(t, "5K Finisher", result.ChallengesCompleted[2].Title)
	assert.Equal(t, 100, result.ChallengesCompleted[0].PointsAwarded)
	assert.Equal(t, 250, result.ChallengesCompleted[2].PointsAwarded)

	states, err := env.states.FindByUser(user.ID)
	require.NoError(t, err)
	for _, s := range states {
		assert.Equal(t, model.StatusCompleted, s.Status)
		assert.NotNil(t, s.CompletedAt)
	}

	achievements, err := env.progression.GetUserAchievements(user.ID)
	require.NoError(t, err)
	assert.Len(t, achievements, 3)
}

func TestRecordActivityPartialProgress(t *testing.T) {
	env := newTestEnv(t)
	user, challenges := seedDistanceTrack(t, env)

	result, err := env.progression.RecordActivity(user.ID, ActivityInput{
		DistanceKm:  3.4,
		DurationSec: 1300,
		Pace:        6.37,
	})
	require.NoError(t, err)

	// 3.4km clears the 1km and 3km targets but not the 5km.
	require.Len(t, result.ChallengesCompleted, 2)

	state, err := env.states.FindByUserAndChallenge(user.ID, challenges[2].ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAvailable, state.Status)
}

func TestRecordActivityAwardsPointsOnce(t *testing.T) {
	env := newTestEnv(t)
	user, challenges := seedDistanceTrack(t, env)

	first, err := env.progression.RecordActivity(user.ID, ActivityInput{
		DistanceKm: 5.0, DurationSec: 1700, Pace: 5.67,
	})
	require.NoError(t, err)
	require.Len(t, first.ChallengesCompleted, 3)

	second, err := env.progression.RecordActivity(user.ID, ActivityInput{
		DistanceKm: 6.0, DurationSec: 2000, Pace: 5.56,
	})
	require.NoError(t, err)
	assert.Empty(t, second.ChallengesCompleted)

	state, err := env.states.FindByUserAndChallenge(user.ID, challenges[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 100, state.Points)
}

func TestRecordActivityRejectsInvalidInput(t *testing.T) {
	env := newTestEnv(t)
	user, _ := seedDistanceTrack(t, env)

	cases := []ActivityInput{
		{DistanceKm: 0, DurationSec: 600, Pace: 6},
		{DistanceKm: -1, DurationSec: 600, Pace: 6},
		{DistanceKm: 2, DurationSec: 0, Pace: 6},
		{DistanceKm: 2, DurationSec: 600, Pace: 0},
	}
	for _, input := range cases {
		_, err := env.progression.RecordActivity(user.ID, input)
		assert.ErrorIs(t, err, util.ErrInvalidActivity)
	}

	activities, err := env.progression.GetUserActivities(user.ID)
	require.NoError(t, err)
	assert.Empty(t, activities)
}

func TestRecordActivityTracksAttemptAndBests(t *testing.T) {
	env := newTestEnv(t)
	user, challenges := seedDistanceTrack(t, env)
	target := challenges[2].ID

	_, err := env.progression.RecordActivity(user.ID, ActivityInput{
		ChallengeID: &target, DistanceKm: 2, DurationSec: 900, Pace: 7.5,
	})
	require.NoError(t, err)

	_, err = env.progression.RecordActivity(user.ID, ActivityInput{
		ChallengeID: &target, DistanceKm: 2.5, DurationSec: 850, Pace: 5.67,
	})
	require.NoError(t, err)

	state, err := env.states.FindByUserAndChallenge(user.ID, target)
	require.NoError(t, err)
	assert.Equal(t, 2, state.Attempts)
	assert.Equal(t, 850, state.BestTimeSec)
	assert.InDelta(t, 5.67, state.BestPace, 0.001)
}

func TestMarkManualCompleteFormChallenge(t *testing.T) {
	env := newTestEnv(t)
	form := createChallenge(t, env, "Arm Swing", model.ChallengeForm, 1, 50, 0, 0)
	user := createUser(t, env, "runner", "", 12)
	require.NoError(t, env.progression.InitializeForUser(user.ID))

	require.NoError(t, env.progression.MarkManualComplete(user.ID, form.ID))

	state, err := env.states.FindByUserAndChallenge(user.ID, form.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, state.Status)
	assert.Equal(t, 50, state.Points)

	err = env.progression.MarkManualComplete(user.ID, form.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyCompleted)
}

func TestMarkManualCompleteRejectsDistance(t *testing.T) {
	env := newTestEnv(t)
	user, challenges := seedDistanceTrack(t, env)

	err := env.progression.MarkManualComplete(user.ID, challenges[0].ID)
	assert.ErrorIs(t, err, util.ErrWrongChallengeType)
}

func TestMarkManualCompleteLockedAndMissing(t *testing.T) {
	env := newTestEnv(t)
	createChallenge(t, env, "High Knees", model.ChallengeDrill, 1, 50, 0, 0)
	locked := createChallenge(t, env, "Butt Kicks", model.ChallengeDrill, 2, 50, 0, 0)
	user := createUser(t, env, "runner", "", 12)
	require.NoError(t, env.progression.InitializeForUser(user.ID))

	// Drills all seed available, force one locked to exercise the guard.
	require.NoError(t, env.db.Model(&model.UserChallenge{}).
		Where("user_id = ? AND challenge_id = ?", user.ID, locked.ID).
		Update("status", model.StatusLocked).Error)

	err := env.progression.MarkManualComplete(user.ID, locked.ID)
	assert.ErrorIs(t, err, util.ErrChallengeLocked)

	err = env.progression.MarkManualComplete(user.ID, 9999)
	assert.ErrorIs(t, err, util.ErrChallengeNotFound)
}

func TestStartChallenge(t *testing.T) {
	env := newTestEnv(t)
	drill := createChallenge(t, env, "High Knees", model.ChallengeDrill, 1, 50, 0, 0)
	user, challenges := seedDistanceTrack(t, env)
	require.NoError(t, env.progression.InitializeForUser(user.ID))

	require.NoError(t, env.progression.StartChallenge(user.ID, drill.ID))

	state, err := env.states.FindByUserAndChallenge(user.ID, drill.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, state.Status)

	err = env.progression.StartChallenge(user.ID, challenges[0].ID)
	assert.ErrorIs(t, err, util.ErrWrongChallengeType)
}

func TestRecordActivityUpdatesAnalytics(t *testing.T) {
	env := newTestEnv(t)
	user, _ := seedDistanceTrack(t, env)

	_, err := env.progression.RecordActivity(user.ID, ActivityInput{
		DistanceKm: 1.2, DurationSec: 500, Pace: 6.9,
	})
	require.NoError(t, err)

	analytics, err := env.analytics.GetOrCreate(user.ID)
	require.NoError(t, err)
	assert.Greater(t, analytics.AvgCompletionRate, 80.0)
}
