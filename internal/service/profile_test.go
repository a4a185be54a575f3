package service_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/healthyrecipe/backend/internal/apperr"
	"github.com/pageza/healthyrecipe/backend/internal/models"
	"github.com/pageza/healthyrecipe/backend/internal/types"
)

func strPtr(s string) *string { return &s }

func TestUpdateProfileAppliesOnlyPresentFields(t *testing.T) {
	env := setupServices(t)
	user, _, err := env.auth.Register(ctx, registerRequest("erin"))
	require.NoError(t, err)

	updated, err := env.profiles.UpdateProfile(ctx, user, &types.UpdateProfileRequest{
		Bio:                strPtr("Home cook"),
		DietaryPreferences: []string{"keto"},
		FitnessGoal:        strPtr("MUSCLE_GAIN"),
		DailyCalorieTarget: intPtr(2500),
	})
	require.NoError(t, err)
	assert.Equal(t, "Home cook", updated.Bio)
	assert.Equal(t, "Test", updated.FirstName, "absent fields are untouched")
	assert.Equal(t, models.StringSet{"KETO"}, updated.DietaryPreferences)
	assert.Equal(t, models.GoalMuscleGain, updated.FitnessGoal)

	reloaded, err := env.profiles.GetProfile(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, "Home cook", reloaded.Bio)
	require.NotNil(t, reloaded.DailyCalorieTarget)
	assert.Equal(t, 2500, *reloaded.DailyCalorieTarget)
}

func TestUpdateProfileEmail(t *testing.T) {
	env := setupServices(t)
	frank, _, err := env.auth.Register(ctx, registerRequest("frank"))
	require.NoError(t, err)
	_, _, err = env.auth.Register(ctx, registerRequest("grace"))
	require.NoError(t, err)

	_, err = env.profiles.UpdateProfile(ctx, frank, &types.UpdateProfileRequest{Email: strPtr("grace@example.com")})
	assert.True(t, errors.Is(err, apperr.ErrConflict), "got %v", err)

	updated, err := env.profiles.UpdateProfile(ctx, frank, &types.UpdateProfileRequest{Email: strPtr("Frank@Example.com")})
	require.NoError(t, err, "changing only the case of your own email is not a conflict")
	assert.Equal(t, "Frank@Example.com", updated.Email)

	_, err = env.profiles.UpdateProfile(ctx, frank, &types.UpdateProfileRequest{FitnessGoal: strPtr("flying")})
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))
}

func TestChangePassword(t *testing.T) {
	env := setupServices(t)
	user, _, err := env.auth.Register(ctx, registerRequest("heidi"))
	require.NoError(t, err)

	err = env.profiles.ChangePassword(ctx, user, "wrong", "newsecret1")
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))
	assert.Equal(t, "Current password is incorrect", apperr.Message(err))

	err = env.profiles.ChangePassword(ctx, user, "secret123", "123")
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))

	require.NoError(t, env.profiles.ChangePassword(ctx, user, "secret123", "newsecret1"))

	_, _, err = env.auth.Login(ctx, "heidi", "secret123")
	assert.True(t, errors.Is(err, apperr.ErrUnauthenticated))
	_, _, err = env.auth.Login(ctx, "heidi", "newsecret1")
	assert.NoError(t, err)
}

func TestPublicProfile(t *testing.T) {
	env := setupServices(t)
	user, _, err := env.auth.Register(ctx, registerRequest("ivan"))
	require.NoError(t, err)

	got, err := env.profiles.GetPublicProfile(ctx, user.ID)
	require.NoError(t, err)
	public := types.NewPublicProfile(*got)
	assert.Equal(t, "ivan", public.Username)
	assert.Equal(t, models.RoleUser, public.Role)
}
