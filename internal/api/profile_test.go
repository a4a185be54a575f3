package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/healthyrecipe/backend/internal/models"
	th "github.com/pageza/healthyrecipe/backend/internal/testhelpers"
	"github.com/pageza/healthyrecipe/backend/internal/types"
)

func TestProfileEndpoints(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodPost, "/auth/register", "", registration("carol"))
	require.Equal(t, http.StatusCreated, w.Code)
	registered := decode[types.AuthResponse](t, w)
	token := registered.Token

	t.Run("update applies only the given fields", func(t *testing.T) {
		w := s.do(http.MethodPut, "/profile", token, map[string]interface{}{
			"bio":                  "Loves soup",
			"fitness_goal":         "weight loss",
			"daily_calorie_target": 1800,
			"allergies":            []string{"Nuts"},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		profile := decode[types.UserResponse](t, w)
		assert.Equal(t, "Loves soup", profile.Bio)
		assert.Equal(t, models.GoalWeightLoss, profile.FitnessGoal)
		require.NotNil(t, profile.DailyCalorieTarget)
		assert.Equal(t, 1800, *profile.DailyCalorieTarget)
		assert.Equal(t, []string{"nuts"}, profile.Allergies)
		assert.Equal(t, "Test", profile.FirstName)
	})

	t.Run("email conflicts", func(t *testing.T) {
		require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/auth/register", "", registration("dave")).Code)
		w := s.do(http.MethodPut, "/profile", token, map[string]interface{}{"email": "DAVE@example.com"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("password change", func(t *testing.T) {
		w := s.do(http.MethodPut, "/profile/password", token, types.ChangePasswordRequest{CurrentPassword: "nope-nope", NewPassword: "newsecret"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Current password is incorrect", decode[errorBody](t, w).Error)

		w = s.do(http.MethodPut, "/profile/password", token, types.ChangePasswordRequest{CurrentPassword: "secret123", NewPassword: "newsecret"})
		require.Equal(t, http.StatusOK, w.Code)

		assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/auth/login", "", types.LoginRequest{Login: "carol", Password: "secret123"}).Code)
		assert.Equal(t, http.StatusOK, s.do(http.MethodPost, "/auth/login", "", types.LoginRequest{Login: "carol", Password: "newsecret"}).Code)
	})

	t.Run("public profile hides private fields", func(t *testing.T) {
		w := s.do(http.MethodGet, "/profile/users/"+registered.User.ID.String(), "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "carol", decode[types.PublicProfile](t, w).Username)
		assert.NotContains(t, w.Body.String(), "carol@example.com")
	})
}

func TestProfileRecipes(t *testing.T) {
	s := newTestServer(t)
	chef := th.CreateUser(t, s.db, "chef", models.RoleChef)
	th.CreateRecipe(t, s.db, chef, "Published", models.StatusApproved)
	th.CreateRecipe(t, s.db, chef, "Waiting", models.StatusPending)
	th.CreateRecipe(t, s.db, chef, "Turned Down", models.StatusRejected)

	mine := decode[recipePage](t, s.do(http.MethodGet, "/profile/recipes", s.token(chef), nil))
	assert.ElementsMatch(t, []string{"Published", "Waiting", "Turned Down"}, recipeTitles(mine))

	public := decode[recipePage](t, s.do(http.MethodGet, "/profile/users/"+chef.ID.String()+"/recipes", "", nil))
	assert.Equal(t, []string{"Published"}, recipeTitles(public))
}
