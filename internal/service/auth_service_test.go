package service

import (
	"fmt"
	"testing"
	"time"

	"kickstart_run_backend/internal/config"
	"kickstart_run_backend/internal/model"
	"kickstart_run_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthEnv(t *testing.T) (*testEnv, *AuthService) {
	t.Helper()
	env := newTestEnv(t)
	auth := NewAuthService(env.users, env.progression, env.adventures, config.JWTConfig{
		Secret:     "test-secret-test-secret-test-secret",
		ExpireTime: time.Hour,
	})
	return env, auth
}

func birthYearForAge(age int) string {
	return fmt.Sprintf("%d-06-01", time.Now().Year()-age)
}

func TestRegisterSeedsChallengesAndAdventures(t *testing.T) {
	env, auth := newAuthEnv(t)
	createChallenge(t, env, "First Kilometer", model.ChallengeDistance, 1, 100, 1, 0)
	createChallenge(t, env, "5K Builder", model.ChallengeDistance, 2, 150, 3, 0)
	seedAdventures(t, env, "9-12")

	result, err := auth.Register(RegisterInput{
		Email:       "kid@test.local",
		Password:    "supersecret",
		AthleteName: "Kid Runner",
		SchoolClub:  "Northside",
		DateOfBirth: birthYearForAge(10),
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	assert.Equal(t, 10, result.User.Age)
	assert.Equal(t, model.Athlete, result.User.Role)

	states, err := env.states.FindByUser(result.User.ID)
	require.NoError(t, err)
	assert.Len(t, states, 2)

	adventures, err := env.adventures.GetUserAdventures(result.User.ID)
	require.NoError(t, err)
	assert.Len(t, adventures, 2)

	claims, err := util.ParseJWT(result.Token, "test-secret-test-secret-test-secret")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
}

func TestRegisterRejectsOutOfRangeAges(t *testing.T) {
	_, auth := newAuthEnv(t)

	for _, age := range []int{4, 5, 19, 40} {
		_, err := auth.Register(RegisterInput{
			Email:       fmt.Sprintf("age%d@test.local", age),
			Password:    "supersecret",
			AthleteName: "Nope",
			DateOfBirth: birthYearForAge(age),
		})
		assert.ErrorIs(t, err, util.ErrInvalidAge)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	_, auth := newAuthEnv(t)

	input := RegisterInput{
		Email:       "kid@test.local",
		Password:    "supersecret",
		AthleteName: "Kid",
		DateOfBirth: birthYearForAge(12),
	}
	_, err := auth.Register(input)
	require.NoError(t, err)

	_, err = auth.Register(input)
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestRegisterUnderThirteenNeedsConsent(t *testing.T) {
	_, auth := newAuthEnv(t)

	pending, err := auth.Register(RegisterInput{
		Email:       "young@test.local",
		Password:    "supersecret",
		AthleteName: "Young",
		DateOfBirth: birthYearForAge(9),
		ParentEmail: "parent@test.local",
	})
	require.NoError(t, err)
	assert.Equal(t, model.AccountPendingParentConsent, pending.User.AccountStatus)

	consented, err := auth.Register(RegisterInput{
		Email:                "young2@test.local",
		Password:             "supersecret",
		AthleteName:          "Young Two",
		DateOfBirth:          birthYearForAge(9),
		ParentEmail:          "parent@test.local",
		ParentalConsentGiven: true,
	})
	require.NoError(t, err)
	assert.Equal(t, model.AccountActive, consented.User.AccountStatus)
}

func TestRegisterLeaderboardConsentSetsOptOut(t *testing.T) {
	env, auth := newAuthEnv(t)

	declined := false
	result, err := auth.Register(RegisterInput{
		Email:              "private@test.local",
		Password:           "supersecret",
		AthleteName:        "Private",
		DateOfBirth:        birthYearForAge(14),
		ConsentLeaderboard: &declined,
	})
	require.NoError(t, err)
	assert.True(t, result.User.OptOutPublic)
	assert.False(t, result.User.ConsentLeaderboard)

	// The declined consent must survive the round trip to storage, not
	// just the in-memory struct.
	stored, err := env.users.FindByID(result.User.ID)
	require.NoError(t, err)
	assert.False(t, stored.ConsentLeaderboard)
	assert.True(t, stored.OptOutPublic)
	assert.True(t, stored.ConsentDataUse)
}

func TestLogin(t *testing.T) {
	_, auth := newAuthEnv(t)

	_, err := auth.Register(RegisterInput{
		Email:       "kid@test.local",
		Password:    "supersecret",
		AthleteName: "Kid",
		DateOfBirth: birthYearForAge(12),
	})
	require.NoError(t, err)

	result, err := auth.Login(LoginInput{Email: "kid@test.local", Password: "supersecret"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	_, err = auth.Login(LoginInput{Email: "kid@test.local", Password: "wrong"})
	assert.ErrorIs(t, err, util.ErrUserNotFound)

	_, err = auth.Login(LoginInput{Email: "nobody@test.local", Password: "supersecret"})
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}
