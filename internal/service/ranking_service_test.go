package service

import (
	"context"
	"testing"
	"time"

	"kickstart_run_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addActivity(t *testing.T, env *testEnv, userID uint, km float64) {
	t.Helper()
	require.NoError(t, env.db.Create(&model.Activity{
		UserID:      userID,
		DistanceKm:  km,
		DurationSec: int(km * 360),
		Pace:        6,
		StartedAt:   time.Now(),
	}).Error)
}

func TestUserRankSumsAndRounds(t *testing.T) {
	env := newTestEnv(t)
	user := createUser(t, env, "ada", "Northside", 10)

	addActivity(t, env, user.ID, 2.3)
	addActivity(t, env, user.ID, 4.7)

	rank, err := env.ranking.GetUserRank(user.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, rank.Rank)
	assert.Equal(t, 7.0, rank.Points)
	assert.Equal(t, 2, rank.ActivityCount)
	assert.Equal(t, 1, rank.TotalParticipants)
}

func TestGlobalRankingOrderAndTieBreaks(t *testing.T) {
	env := newTestEnv(t)
	ada := createUser(t, env, "ada", "Northside", 10)
	ben := createUser(t, env, "ben", "Southside", 11)
	cal := createUser(t, env, "cal", "Northside", 12)

	addActivity(t, env, ada.ID, 10)

	// ben and cal tie on points; ben has more activities.
	addActivity(t, env, ben.ID, 3)
	addActivity(t, env, ben.ID, 2)
	addActivity(t, env, cal.ID, 5)

	ranked, err := env.ranking.GetGlobalRankings(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	assert.Equal(t, "ada", ranked[0].AthleteName)
	assert.Equal(t, "ben", ranked[1].AthleteName)
	assert.Equal(t, "cal", ranked[2].AthleteName)
	assert.Equal(t, []int{1, 2, 3}, []int{ranked[0].Rank, ranked[1].Rank, ranked[2].Rank})
}

func TestGlobalRankingNameTieBreak(t *testing.T) {
	env := newTestEnv(t)
	zoe := createUser(t, env, "zoe", "", 10)
	amy := createUser(t, env, "amy", "", 10)

	addActivity(t, env, zoe.ID, 4)
	addActivity(t, env, amy.ID, 4)

	ranked, err := env.ranking.GetGlobalRankings(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "amy", ranked[0].AthleteName)
	assert.Equal(t, "zoe", ranked[1].AthleteName)
}

func TestGlobalRankingExcludesOptOut(t *testing.T) {
	env := newTestEnv(t)
	ada := createUser(t, env, "ada", "", 10)
	hidden := createUser(t, env, "hidden", "", 10)
	require.NoError(t, env.users.UpdateOptOut(hidden.ID, true))

	addActivity(t, env, ada.ID, 2)
	addActivity(t, env, hidden.ID, 20)

	ranked, err := env.ranking.GetGlobalRankings(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "ada", ranked[0].AthleteName)
	assert.Equal(t, 1, ranked[0].Rank)

	// The opted-out athlete still sees their own standing.
	own, err := env.ranking.GetUserRank(hidden.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, own.Rank)
}

func TestGlobalRankingLimitClamp(t *testing.T) {
	env := newTestEnv(t)
	for _, name := range []string{"a", "b", "c"} {
		u := createUser(t, env, name, "", 10)
		addActivity(t, env, u.ID, 1)
	}

	ranked, err := env.ranking.GetGlobalRankings(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, ranked, 2)

	ranked, err = env.ranking.GetGlobalRankings(context.Background(), 100000)
	require.NoError(t, err)
	assert.Len(t, ranked, 3)
}

func TestSchoolRankingsIncludeZeroPointSchools(t *testing.T) {
	env := newTestEnv(t)
	ada := createUser(t, env, "ada", "Northside", 10)
	createUser(t, env, "ben", "Southside", 11)

	addActivity(t, env, ada.ID, 6.2)

	ranked, err := env.ranking.GetSchoolRankings()
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	assert.Equal(t, "Northside", ranked[0].SchoolClub)
	assert.Equal(t, 6.2, ranked[0].Points)
	assert.Equal(t, 1, ranked[0].Rank)

	assert.Equal(t, "Southside", ranked[1].SchoolClub)
	assert.Equal(t, 0.0, ranked[1].Points)
	assert.Equal(t, 2, ranked[1].Rank)
}

func TestSchoolRankingsSumAcrossAthletes(t *testing.T) {
	env := newTestEnv(t)
	ada := createUser(t, env, "ada", "Northside", 10)
	cal := createUser(t, env, "cal", "Northside", 12)

	addActivity(t, env, ada.ID, 3.3)
	addActivity(t, env, cal.ID, 4.4)

	ranked, err := env.ranking.GetSchoolRankings()
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, 7.7, ranked[0].Points)
	assert.Equal(t, 2, ranked[0].AthleteCount)
}

func TestAgeGroupRankingsBracketsAndEmptyGroups(t *testing.T) {
	env := newTestEnv(t)
	young := createUser(t, env, "young", "", 7)
	teen := createUser(t, env, "teen", "", 15)

	addActivity(t, env, young.ID, 2)
	addActivity(t, env, teen.ID, 8)

	groups, err := env.ranking.GetAgeGroupRankings()
	require.NoError(t, err)
	require.Len(t, groups, 3)

	byKey := map[string]AgeGroupRanking{}
	for _, g := range groups {
		byKey[g.Bracket] = g
	}

	assert.Equal(t, 1, byKey["elementary"].TotalParticipants)
	assert.Equal(t, "young", byKey["elementary"].Rankings[0].AthleteName)

	assert.Equal(t, 0, byKey["middle"].TotalParticipants)
	assert.Empty(t, byKey["middle"].Rankings)
	assert.NotNil(t, byKey["middle"].Rankings)

	assert.Equal(t, 1, byKey["high"].TotalParticipants)
}

func TestAgeGroupRankingsExcludeOutOfRangeAges(t *testing.T) {
	env := newTestEnv(t)
	adult := createUser(t, env, "adult", "", 25)
	addActivity(t, env, adult.ID, 12)

	groups, err := env.ranking.GetAgeGroupRankings()
	require.NoError(t, err)
	for _, g := range groups {
		assert.Zero(t, g.TotalParticipants)
	}

	// They still rank globally.
	rank, err := env.ranking.GetUserRank(adult.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, rank.Rank)
}
