package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/healthyrecipe/backend/internal/apperr"
	"github.com/pageza/healthyrecipe/backend/internal/models"
	"github.com/pageza/healthyrecipe/backend/internal/types"
)

func registerRequest(username string) *types.RegisterRequest {
	return &types.RegisterRequest{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "secret123",
		FirstName: "Test",
		LastName:  "User",
	}
}

func TestRegister(t *testing.T) {
	env := setupServices(t)

	req := registerRequest("alice")
	req.Role = "chef"
	req.DietaryPreferences = []string{"vegan", "Gluten Free"}
	req.Allergies = []string{"Nuts"}
	req.FitnessGoal = "weight-loss"
	req.DailyCalorieTarget = intPtr(1800)

	user, token, err := env.auth.Register(ctx, req)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, models.RoleChef, user.Role)
	assert.Equal(t, models.AccountActive, user.Status)
	assert.Equal(t, models.StringSet{"GLUTEN_FREE", "VEGAN"}, user.DietaryPreferences)
	assert.Equal(t, models.StringSet{"nuts"}, user.Allergies)
	assert.Equal(t, models.GoalWeightLoss, user.FitnessGoal)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	claims, err := env.auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "CHEF", claims.Role)
}

func TestRegisterRejections(t *testing.T) {
	env := setupServices(t)
	_, _, err := env.auth.Register(ctx, registerRequest("taken"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		req    func() *types.RegisterRequest
		target error
	}{
		{"duplicate username", func() *types.RegisterRequest {
			r := registerRequest("taken")
			r.Email = "other@example.com"
			return r
		}, apperr.ErrConflict},
		{"duplicate email ignores case", func() *types.RegisterRequest {
			r := registerRequest("fresh")
			r.Email = "TAKEN@example.com"
			return r
		}, apperr.ErrConflict},
		{"admin self-registration", func() *types.RegisterRequest {
			r := registerRequest("sneaky")
			r.Role = "ADMIN"
			return r
		}, apperr.ErrPermissionDenied},
		{"short username", func() *types.RegisterRequest { return registerRequest("ab") }, apperr.ErrInvalidInput},
		{"short password", func() *types.RegisterRequest {
			r := registerRequest("shortpw")
			r.Password = "123"
			return r
		}, apperr.ErrInvalidInput},
		{"unknown preference", func() *types.RegisterRequest {
			r := registerRequest("carnivore")
			r.DietaryPreferences = []string{"CARNIVORE"}
			return r
		}, apperr.ErrInvalidInput},
		{"unknown role", func() *types.RegisterRequest {
			r := registerRequest("pirate")
			r.Role = "PIRATE"
			return r
		}, apperr.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := env.auth.Register(ctx, tt.req())
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
		})
	}
}

func TestLogin(t *testing.T) {
	env := setupServices(t)
	registered, _, err := env.auth.Register(ctx, registerRequest("bob"))
	require.NoError(t, err)

	t.Run("by username", func(t *testing.T) {
		user, token, err := env.auth.Login(ctx, "bob", "secret123")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("by email", func(t *testing.T) {
		user, _, err := env.auth.Login(ctx, "Bob@Example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := env.auth.Login(ctx, "bob", "wrong-password")
		assert.True(t, errors.Is(err, apperr.ErrUnauthenticated))
	})

	t.Run("unknown user", func(t *testing.T) {
		_, _, err := env.auth.Login(ctx, "nobody", "secret123")
		assert.True(t, errors.Is(err, apperr.ErrUnauthenticated))
	})

	t.Run("suspended account", func(t *testing.T) {
		require.NoError(t, env.db.Model(&models.User{}).Where("id = ?", registered.ID).
			Update("status", models.AccountSuspended).Error)
		_, _, err := env.auth.Login(ctx, "bob", "secret123")
		assert.True(t, errors.Is(err, apperr.ErrPermissionDenied))
	})
}

func TestValidateToken(t *testing.T) {
	env := setupServices(t)
	user, token, err := env.auth.Register(ctx, registerRequest("carol"))
	require.NoError(t, err)

	sign := func(secret string, claims *types.TokenClaims) string {
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return signed
	}

	expired := sign(testSecret, &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))},
		UserID:           user.ID,
	})
	forged := sign("some-other-secret", &types.TokenClaims{UserID: user.ID})
	noUser := sign(testSecret, &types.TokenClaims{Username: "carol"})

	for name, tok := range map[string]string{"expired": expired, "forged": forged, "no user id": noUser, "garbage": "not.a.token"} {
		t.Run(name, func(t *testing.T) {
			_, err := env.auth.ValidateToken(tok)
			assert.True(t, errors.Is(err, apperr.ErrUnauthenticated), "got %v", err)
		})
	}

	claims, err := env.auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestActor(t *testing.T) {
	env := setupServices(t)
	user, _, err := env.auth.Register(ctx, registerRequest("dave"))
	require.NoError(t, err)

	actor, err := env.auth.Actor(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, actor.ID)

	_, err = env.auth.Actor(ctx, uuid.New())
	assert.True(t, errors.Is(err, apperr.ErrUnauthenticated))

	require.NoError(t, env.db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("status", models.AccountInactive).Error)
	_, err = env.auth.Actor(ctx, user.ID)
	assert.True(t, errors.Is(err, apperr.ErrPermissionDenied))
}
