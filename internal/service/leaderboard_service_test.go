package service

import (
	"testing"

	"kickstart_run_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLeaderboardEnv(t *testing.T) (*testEnv, *LeaderboardService) {
	t.Helper()
	env := newTestEnv(t)
	boards := NewLeaderboardService(repository.NewLeaderboardRepository(env.db), env.states, env.ranking)
	return env, boards
}

func TestRecomputeAllBuildsSchoolSnapshots(t *testing.T) {
	env, boards := newLeaderboardEnv(t)
	ada := createUser(t, env, "ada", "Northside", 10)
	ben := createUser(t, env, "ben", "Northside", 11)
	cal := createUser(t, env, "cal", "Southside", 12)

	addActivity(t, env, ada.ID, 5)
	addActivity(t, env, ben.ID, 3)
	addActivity(t, env, cal.ID, 2)

	boards.RecomputeAll()

	board, entries, err := boards.SchoolSnapshot("Northside")
	require.NoError(t, err)
	assert.Equal(t, 8.0, board.TotalPoints)
	require.Len(t, entries, 2)
	assert.Equal(t, ada.ID, entries[0].UserID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, ben.ID, entries[1].UserID)
	assert.Equal(t, 2, entries[1].Rank)

	south, _, err := boards.SchoolSnapshot("Southside")
	require.NoError(t, err)
	assert.Equal(t, 2.0, south.TotalPoints)
}

func TestRecomputeAllIsRepeatable(t *testing.T) {
	env, boards := newLeaderboardEnv(t)
	ada := createUser(t, env, "ada", "Northside", 10)
	addActivity(t, env, ada.ID, 4)

	boards.RecomputeAll()
	addActivity(t, env, ada.ID, 2)
	boards.RecomputeAll()

	board, entries, err := boards.SchoolSnapshot("Northside")
	require.NoError(t, err)
	assert.Equal(t, 6.0, board.TotalPoints)
	require.Len(t, entries, 1)
	assert.Equal(t, 6.0, entries[0].TotalPoints)
}
