package service

import (
	"testing"

	"kickstart_run_backend/internal/model"
	"kickstart_run_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAdventures(t *testing.T, env *testEnv, ageGroup string) []*model.Adventure {
	t.Helper()
	a1 := &model.Adventure{
		Title: "Dragon Valley", Theme: "fantasy", AgeGroup: ageGroup,
		RequiredDistanceKm: 5, RewardType: "badge", RewardData: "dragon-egg",
		IsActive: true, OrderIndex: 1,
	}
	a2 := &model.Adventure{
		Title: "Crystal Caves", Theme: "fantasy", AgeGroup: ageGroup,
		RequiredDistanceKm: 10, RewardType: "character", RewardData: "cave-sprite",
		IsActive: true, OrderIndex: 2,
	}
	require.NoError(t, env.db.Create(a1).Error)
	require.NoError(t, env.db.Create(a2).Error)
	return []*model.Adventure{a1, a2}
}

func TestAdventureSeedingFirstAvailable(t *testing.T) {
	env := newTestEnv(t)
	seedAdventures(t, env, "9-12")
	user := createUser(t, env, "quester", "", 10)

	states, err := env.adventures.GetUserAdventures(user.ID)
	require.NoError(t, err)
	require.Len(t, states, 2)

	assert.Equal(t, model.StatusAvailable, states[0].Status)
	assert.Equal(t, model.StatusLocked, states[1].Status)
}

func TestAdventureProgressAccumulates(t *testing.T) {
	env := newTestEnv(t)
	seedAdventures(t, env, "9-12")
	user := createUser(t, env, "quester", "", 10)
	require.NoError(t, env.adventures.InitializeForUser(user.ID))

	require.NoError(t, env.adventures.ApplyDistance(user.ID, 2))
	require.NoError(t, env.adventures.ApplyDistance(user.ID, 1.5))

	states, err := env.adventures.GetUserAdventures(user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, states[0].Status)
	assert.InDelta(t, 3.5, states[0].ProgressDistanceKm, 0.001)
}

func TestAdventureCompletionUnlocksNext(t *testing.T) {
	env := newTestEnv(t)
	seedAdventures(t, env, "9-12")
	user := createUser(t, env, "quester", "", 10)
	require.NoError(t, env.adventures.InitializeForUser(user.ID))

	require.NoError(t, env.adventures.ApplyDistance(user.ID, 6))

	states, err := env.adventures.GetUserAdventures(user.ID)
	require.NoError(t, err)

	assert.Equal(t, model.StatusCompleted, states[0].Status)
	assert.NotNil(t, states[0].CompletedAt)
	assert.Equal(t, "badge:dragon-egg", states[0].RewardsEarned)
	assert.Equal(t, model.StatusAvailable, states[1].Status)
}

func TestAdventureAgeGroupIsolation(t *testing.T) {
	env := newTestEnv(t)
	seedAdventures(t, env, "6-8")
	user := createUser(t, env, "teen", "", 15)

	states, err := env.adventures.GetUserAdventures(user.ID)
	require.NoError(t, err)
	assert.Empty(t, states)
}

func TestAdventureCatalogValidation(t *testing.T) {
	env := newTestEnv(t)
	seedAdventures(t, env, "6-8")

	adventures, err := env.adventures.GetCatalog("6-8")
	require.NoError(t, err)
	assert.Len(t, adventures, 2)

	_, err = env.adventures.GetCatalog("30-40")
	assert.ErrorIs(t, err, util.ErrAdventureNotFound)
}
