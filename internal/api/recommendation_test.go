package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/healthyrecipe/backend/internal/models"
	"github.com/pageza/healthyrecipe/backend/internal/service"
	th "github.com/pageza/healthyrecipe/backend/internal/testhelpers"
)

type personalizedPage struct {
	recipePage
	Strategy service.Strategy `json:"strategy"`
}

func TestRecommendationEndpoints(t *testing.T) {
	s := newTestServer(t)
	chef := th.CreateUser(t, s.db, "chef", models.RoleChef)
	fan := th.CreateUser(t, s.db, "fan", models.RoleUser)

	th.CreateRecipe(t, s.db, chef, "Vegan Chili", models.StatusApproved,
		th.WithTags("vegan", "high-protein"), th.WithCategories(models.CategoryDinner),
		th.WithTimes(15, 45), th.WithDifficulty(models.DifficultyMedium), th.WithCalories(600))
	toast := th.CreateRecipe(t, s.db, chef, "Avocado Toast", models.StatusApproved,
		th.WithTags("healthy", "dairy-free"), th.WithCategories(models.CategoryBreakfast),
		th.WithTimes(5, 5), th.WithDifficulty(models.DifficultyEasy), th.WithCalories(320))
	th.CreateRecipe(t, s.db, chef, "Pending Porridge", models.StatusPending,
		th.WithTags("vegan", "healthy"), th.WithCategories(models.CategoryBreakfast),
		th.WithTimes(5, 5), th.WithDifficulty(models.DifficultyEasy))

	t.Run("personalized requires authentication", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/recommendations/personalized", "", nil).Code)
	})

	t.Run("personalized falls back to top rated without a profile", func(t *testing.T) {
		w := s.do(http.MethodGet, "/recommendations/personalized", s.token(fan), nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		page := decode[personalizedPage](t, w)
		assert.Equal(t, service.StrategyTopRated, page.Strategy)
		assert.Len(t, page.Content, 2)
	})

	t.Run("personalized uses dietary preferences from the profile", func(t *testing.T) {
		w := s.do(http.MethodPut, "/profile", s.token(fan), map[string]interface{}{
			"dietary_preferences": []string{"vegan"},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		page := decode[personalizedPage](t, s.do(http.MethodGet, "/recommendations/personalized", s.token(fan), nil))
		assert.Equal(t, service.StrategyDietaryPreferences, page.Strategy)
		assert.Equal(t, []string{"Vegan Chili"}, recipeTitles(page.recipePage))
	})

	tests := []struct {
		path string
		want []string
	}{
		{"/recommendations/quick", []string{"Avocado Toast"}},
		{"/recommendations/healthy", []string{"Avocado Toast"}},
		{"/recommendations/beginner", []string{"Avocado Toast"}},
		{"/recommendations/fitness-goal?goal=muscle-gain", []string{"Vegan Chili"}},
		{"/recommendations/allergy-free?allergies=dairy", []string{"Avocado Toast"}},
		{"/recommendations/similar/" + toast.ID.String(), []string{"Avocado Toast"}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := s.do(http.MethodGet, tt.path, "", nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, tt.want, recipeTitles(decode[recipePage](t, w)))
		})
	}

	t.Run("fitness goal is required for anonymous callers", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/recommendations/fitness-goal", "", nil).Code)
		assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/recommendations/fitness-goal?goal=flying", "", nil).Code)
	})
}
