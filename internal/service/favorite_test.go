package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/healthyrecipe/backend/internal/apperr"
	"github.com/pageza/healthyrecipe/backend/internal/models"
	th "github.com/pageza/healthyrecipe/backend/internal/testhelpers"
)

func TestFavoriteAddRemove(t *testing.T) {
	env := setupServices(t)
	chef := th.CreateUser(t, env.db, "chef", models.RoleChef)
	alice := th.CreateUser(t, env.db, "alice", models.RoleUser)
	recipe := th.CreateRecipe(t, env.db, chef, "Pancakes", models.StatusApproved)

	isFav := func() bool {
		ok, err := env.favorites.IsFavorited(ctx, alice, recipe.ID)
		require.NoError(t, err)
		return ok
	}
	count := func() int64 {
		n, err := env.favorites.CountForRecipe(ctx, recipe.ID)
		require.NoError(t, err)
		return n
	}

	assert.False(t, isFav())
	assert.Zero(t, count())

	require.NoError(t, env.favorites.AddFavorite(ctx, alice, recipe.ID))
	assert.True(t, isFav())
	assert.Equal(t, int64(1), count())

	err := env.favorites.AddFavorite(ctx, alice, recipe.ID)
	assert.True(t, errors.Is(err, apperr.ErrConflict), "got %v", err)
	assert.Equal(t, int64(1), count())

	require.NoError(t, env.favorites.RemoveFavorite(ctx, alice, recipe.ID))
	assert.False(t, isFav())
	assert.Zero(t, count())

	err = env.favorites.RemoveFavorite(ctx, alice, recipe.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound), "got %v", err)
}

func TestFavoriteRequiresVisibleRecipe(t *testing.T) {
	env := setupServices(t)
	chef := th.CreateUser(t, env.db, "chef", models.RoleChef)
	alice := th.CreateUser(t, env.db, "alice", models.RoleUser)
	pending := th.CreateRecipe(t, env.db, chef, "Unpublished", models.StatusPending)

	err := env.favorites.AddFavorite(ctx, alice, pending.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	require.NoError(t, env.favorites.AddFavorite(ctx, chef, pending.ID), "authors may bookmark their own drafts")
}

func TestListFavoritesMostRecentFirst(t *testing.T) {
	env := setupServices(t)
	chef := th.CreateUser(t, env.db, "chef", models.RoleChef)
	alice := th.CreateUser(t, env.db, "alice", models.RoleUser)
	older := th.CreateRecipe(t, env.db, chef, "Older", models.StatusApproved)
	newer := th.CreateRecipe(t, env.db, chef, "Newer", models.StatusApproved)

	base := time.Now().Add(-time.Hour)
	require.NoError(t, env.db.Create(&models.RecipeFavorite{UserID: alice.ID, RecipeID: newer.ID, CreatedAt: base}).Error)
	require.NoError(t, env.db.Create(&models.RecipeFavorite{UserID: alice.ID, RecipeID: older.ID, CreatedAt: base.Add(time.Minute)}).Error)

	page, err := env.favorites.ListFavorites(ctx, alice, firstPage)
	require.NoError(t, err)
	assert.Equal(t, []string{"Older", "Newer"}, recipeTitles(page))
	assert.Equal(t, int64(1), page.Items[0].FavoriteCount)

	_, err = env.favorites.ListFavorites(ctx, nil, firstPage)
	assert.True(t, errors.Is(err, apperr.ErrUnauthenticated))
}
