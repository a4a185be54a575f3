package service_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/healthyrecipe/backend/internal/apperr"
	"github.com/pageza/healthyrecipe/backend/internal/models"
	th "github.com/pageza/healthyrecipe/backend/internal/testhelpers"
)

func TestRecipeLifecycleEndToEnd(t *testing.T) {
	env := setupServices(t)
	chef := th.CreateUser(t, env.db, "chef", models.RoleChef)
	admin := th.CreateUser(t, env.db, "admin", models.RoleAdmin)
	u1 := th.CreateUser(t, env.db, "u1", models.RoleUser)
	u2 := th.CreateUser(t, env.db, "u2", models.RoleUser)

	recipe, err := env.recipes.CreateRecipe(ctx, chef, validRecipe("Green Curry"))
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, recipe.Status)

	latest, err := env.recipes.ListLatest(ctx, firstPage)
	require.NoError(t, err)
	assert.Empty(t, latest.Items, "pending recipes stay out of public listings")

	_, err = env.recipes.GetRecipe(ctx, u1, recipe.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = env.recipes.ApproveRecipe(ctx, admin, recipe.ID)
	require.NoError(t, err)

	latest, err = env.recipes.ListLatest(ctx, firstPage)
	require.NoError(t, err)
	assert.Equal(t, []string{"Green Curry"}, recipeTitles(latest))

	r1, err := env.ratings.Rate(ctx, u1, recipe.ID, 2, "")
	require.NoError(t, err)
	_, err = env.ratings.Rate(ctx, u2, recipe.ID, 4, "")
	require.NoError(t, err)

	stats, err := env.ratings.Stats(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.0, stats.AverageRating)
	assert.Equal(t, int64(2), stats.TotalRatings)

	require.NoError(t, env.favorites.AddFavorite(ctx, u1, recipe.ID))
	count, err := env.favorites.CountForRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, env.ratings.DeleteRating(ctx, u1, r1.ID))
	stats, err = env.ratings.Stats(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, stats.AverageRating)
	assert.Equal(t, int64(1), stats.TotalRatings)

	got, err := env.recipes.GetRecipe(ctx, nil, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, got.AverageRating)
	assert.Equal(t, int64(1), got.TotalRatings)
	assert.Equal(t, int64(1), got.FavoriteCount)
}
