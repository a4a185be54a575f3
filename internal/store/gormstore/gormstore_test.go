package gormstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/healthyrecipe/backend/internal/apperr"
	"github.com/pageza/healthyrecipe/backend/internal/models"
	"github.com/pageza/healthyrecipe/backend/internal/store"
	th "github.com/pageza/healthyrecipe/backend/internal/testhelpers"
)

var firstPage = store.PageRequest{Page: 0, Size: 10}

func titles(recipes []models.Recipe) []string {
	out := make([]string, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, r.Title)
	}
	return out
}

func TestRecipeCreateGetUpdate(t *testing.T) {
	db := th.NewSQLiteDB(t)
	stores := New(db).Stores()
	ctx := context.Background()
	chef := th.CreateUser(t, db, "chef", models.RoleChef)

	recipe := &models.Recipe{
		Title:           "Green Salad",
		Description:     "Crunchy",
		Instructions:    "Toss",
		PreparationTime: 5,
		CookingTime:     0,
		Servings:        1,
		Status:          models.StatusPending,
		AuthorID:        chef.ID,
		Ingredients: []models.Ingredient{
			{Name: "lettuce", Quantity: 1, Unit: "head"},
			{Name: "olive oil", Quantity: 2, Unit: "tbsp"},
		},
	}
	recipe.SetCategories([]models.Category{models.CategorySalad})
	recipe.SetDietaryTags([]string{"vegan"})
	require.NoError(t, stores.Recipes.Create(ctx, recipe))

	loaded, err := stores.Recipes.Get(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "chef", loaded.Author.Username)
	assert.Len(t, loaded.Ingredients, 2)
	assert.Equal(t, []models.Category{models.CategorySalad}, loaded.CategoryList())

	loaded.Title = "Big Green Salad"
	loaded.Ingredients = []models.Ingredient{{Name: "spinach", Quantity: 100, Unit: "g"}}
	loaded.SetCategories([]models.Category{models.CategorySalad, models.CategoryLunch})
	loaded.SetDietaryTags(nil)
	require.NoError(t, stores.Recipes.Update(ctx, loaded))

	updated, err := stores.Recipes.Get(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Big Green Salad", updated.Title)
	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, "spinach", updated.Ingredients[0].Name)
	assert.Equal(t, []models.Category{models.CategoryLunch, models.CategorySalad}, updated.CategoryList())
	assert.Empty(t, updated.TagList())

	var ingredientRows int64
	require.NoError(t, db.Model(&models.Ingredient{}).Where("recipe_id = ?", recipe.ID).Count(&ingredientRows).Error)
	assert.Equal(t, int64(1), ingredientRows)
}

func TestRecipeSearchMatchesWildcardsLiterally(t *testing.T) {
	db := th.NewSQLiteDB(t)
	stores := New(db).Stores()
	ctx := context.Background()
	chef := th.CreateUser(t, db, "chef", models.RoleChef)
	th.CreateRecipe(t, db, chef, "Muffins with 50% less sugar", models.StatusApproved)
	th.CreateRecipe(t, db, chef, "Banana Bread", models.StatusApproved)

	tests := []struct {
		keyword string
		want    []string
	}{
		{"_", []string{}},
		{"%", []string{"Muffins with 50% less sugar"}},
		{"50%", []string{"Muffins with 50% less sugar"}},
		{"!", []string{}},
		{"banana", []string{"Banana Bread"}},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			page, err := stores.Recipes.List(ctx, store.ApprovedSearch(tt.keyword), firstPage)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(page.Items))
		})
	}
}

func TestRecipeGetMissing(t *testing.T) {
	stores := New(th.NewSQLiteDB(t)).Stores()
	_, err := stores.Recipes.Get(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestRecipeUpdateStatusAndDelete(t *testing.T) {
	db := th.NewSQLiteDB(t)
	stores := New(db).Stores()
	ctx := context.Background()
	chef := th.CreateUser(t, db, "chef", models.RoleChef)
	recipe := th.CreateRecipe(t, db, chef, "Pancakes", models.StatusPending, th.WithCategories(models.CategoryBreakfast))

	require.NoError(t, stores.Recipes.UpdateStatus(ctx, recipe.ID, models.StatusApproved))
	loaded, err := stores.Recipes.Get(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, loaded.Status)

	require.NoError(t, stores.Recipes.Delete(ctx, recipe.ID))
	_, err = stores.Recipes.Get(ctx, recipe.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	var links int64
	require.NoError(t, db.Model(&models.RecipeCategory{}).Where("recipe_id = ?", recipe.ID).Count(&links).Error)
	assert.Zero(t, links)

	assert.True(t, errors.Is(stores.Recipes.Delete(ctx, recipe.ID), apperr.ErrNotFound))
	assert.True(t, errors.Is(stores.Recipes.UpdateStatus(ctx, recipe.ID, models.StatusRejected), apperr.ErrNotFound))
}

func TestRecipeListFilters(t *testing.T) {
	db := th.NewSQLiteDB(t)
	stores := New(db).Stores()
	ctx := context.Background()
	chef := th.CreateUser(t, db, "chef", models.RoleChef)
	base := time.Now().Add(-time.Hour)

	th.CreateRecipe(t, db, chef, "Oatmeal", models.StatusApproved,
		th.WithCategories(models.CategoryBreakfast), th.WithTags("vegan"), th.WithCalories(300),
		th.WithTimes(5, 5), th.WithDifficulty(models.DifficultyEasy), th.WithCreatedAt(base))
	th.CreateRecipe(t, db, chef, "Beef Stew", models.StatusApproved,
		th.WithCategories(models.CategoryDinner), th.WithTags("high-protein"), th.WithCalories(800),
		th.WithTimes(20, 120), th.WithDifficulty(models.DifficultyHard), th.WithCreatedAt(base.Add(time.Minute)))
	th.CreateRecipe(t, db, chef, "Secret Vegan Curry", models.StatusPending,
		th.WithCategories(models.CategoryDinner), th.WithTags("vegan"), th.WithCalories(500),
		th.WithCreatedAt(base.Add(2*time.Minute)))

	tests := []struct {
		name  string
		query store.RecipeQuery
		want  []string
	}{
		{"approved latest", store.ApprovedLatest(), []string{"Beef Stew", "Oatmeal"}},
		{"by category", store.ApprovedByCategories([]models.Category{models.CategoryDinner}), []string{"Beef Stew"}},
		{"by tag skips pending", store.ApprovedByDietaryTags([]string{"Vegan"}), []string{"Oatmeal"}},
		{"calorie window", store.ApprovedByCalorieRange(200, 400), []string{"Oatmeal"}},
		{"max total time", store.ApprovedByMaxTotalTime(30), []string{"Oatmeal"}},
		{"difficulty", store.ApprovedByDifficulty(models.DifficultyHard), []string{"Beef Stew"}},
		{"keyword", store.ApprovedSearch("stew"), []string{"Beef Stew"}},
		{"author sees all", store.ByAuthor(chef.ID), []string{"Secret Vegan Curry", "Beef Stew", "Oatmeal"}},
		{"pending queue", store.PendingQueue(), []string{"Secret Vegan Curry"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := stores.Recipes.List(ctx, tt.query, firstPage)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(page.Items))
			assert.Equal(t, int64(len(tt.want)), page.Total)
		})
	}
}

func TestRecipeListOrderings(t *testing.T) {
	db := th.NewSQLiteDB(t)
	stores := New(db).Stores()
	ctx := context.Background()
	chef := th.CreateUser(t, db, "chef", models.RoleChef)
	alice := th.CreateUser(t, db, "alice", models.RoleUser)
	bob := th.CreateUser(t, db, "bob", models.RoleUser)
	base := time.Now().Add(-time.Hour)

	unrated := th.CreateRecipe(t, db, chef, "Unrated", models.StatusApproved, th.WithCreatedAt(base.Add(3*time.Minute)))
	good := th.CreateRecipe(t, db, chef, "Good", models.StatusApproved, th.WithCreatedAt(base))
	great := th.CreateRecipe(t, db, chef, "Great", models.StatusApproved, th.WithCreatedAt(base.Add(time.Minute)))

	th.Rate(t, db, alice, good, 3)
	th.Rate(t, db, bob, good, 4)
	th.Rate(t, db, alice, great, 5)
	th.Favorite(t, db, alice, good)
	th.Favorite(t, db, bob, good)
	th.Favorite(t, db, alice, unrated)

	page, err := stores.Recipes.List(ctx, store.ApprovedTopRated(), firstPage)
	require.NoError(t, err)
	assert.Equal(t, []string{"Great", "Good", "Unrated"}, titles(page.Items))

	page, err = stores.Recipes.List(ctx, store.ApprovedMostFavorited(), firstPage)
	require.NoError(t, err)
	assert.Equal(t, []string{"Good", "Unrated", "Great"}, titles(page.Items))
}

func TestRecipeListPaging(t *testing.T) {
	db := th.NewSQLiteDB(t)
	stores := New(db).Stores()
	chef := th.CreateUser(t, db, "chef", models.RoleChef)
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		th.CreateRecipe(t, db, chef, string(rune('A'+i)), models.StatusApproved, th.WithCreatedAt(base.Add(time.Duration(i)*time.Minute)))
	}

	page, err := stores.Recipes.List(context.Background(), store.ApprovedLatest(), store.PageRequest{Page: 1, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, 3, page.TotalPages())
	assert.Equal(t, []string{"C", "B"}, titles(page.Items))

	page, err = stores.Recipes.List(context.Background(), store.ApprovedLatest(), store.PageRequest{Page: 9, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	assert.Empty(t, page.Items)
}

func TestRatingStore(t *testing.T) {
	db := th.NewSQLiteDB(t)
	stores := New(db).Stores()
	ctx := context.Background()
	chef := th.CreateUser(t, db, "chef", models.RoleChef)
	alice := th.CreateUser(t, db, "alice", models.RoleUser)
	bob := th.CreateUser(t, db, "bob", models.RoleUser)
	rated := th.CreateRecipe(t, db, chef, "Rated", models.StatusApproved)
	unrated := th.CreateRecipe(t, db, chef, "Unrated", models.StatusApproved)

	require.NoError(t, stores.Ratings.Create(ctx, &models.Rating{UserID: alice.ID, RecipeID: rated.ID, Score: 3}))
	require.NoError(t, stores.Ratings.Create(ctx, &models.Rating{UserID: bob.ID, RecipeID: rated.ID, Score: 5}))

	err := stores.Ratings.Create(ctx, &models.Rating{UserID: alice.ID, RecipeID: rated.ID, Score: 1})
	assert.True(t, errors.Is(err, apperr.ErrConflict), "duplicate pair must be a conflict, got %v", err)

	stats, err := stores.Ratings.Stats(ctx, rated.ID, unrated.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, stats[rated.ID].AverageRating, 1e-9)
	assert.Equal(t, int64(2), stats[rated.ID].TotalRatings)
	assert.Equal(t, 0.0, stats[unrated.ID].AverageRating)
	assert.Equal(t, int64(0), stats[unrated.ID].TotalRatings)

	existing, err := stores.Ratings.GetByUserAndRecipe(ctx, alice.ID, rated.ID)
	require.NoError(t, err)
	existing.Score = 4
	existing.Comment = "better the second time"
	require.NoError(t, stores.Ratings.Update(ctx, existing))

	reloaded, err := stores.Ratings.Get(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, reloaded.Score)
	assert.Equal(t, "better the second time", reloaded.Comment)

	page, err := stores.Ratings.ListByRecipe(ctx, rated.ID, firstPage)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	require.NoError(t, stores.Ratings.DeleteByRecipe(ctx, rated.ID))
	_, err = stores.Ratings.GetByUserAndRecipe(ctx, alice.ID, rated.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	assert.True(t, errors.Is(stores.Ratings.Delete(ctx, existing.ID), apperr.ErrNotFound))
}

func TestFavoriteStore(t *testing.T) {
	db := th.NewSQLiteDB(t)
	stores := New(db).Stores()
	ctx := context.Background()
	chef := th.CreateUser(t, db, "chef", models.RoleChef)
	alice := th.CreateUser(t, db, "alice", models.RoleUser)
	first := th.CreateRecipe(t, db, chef, "First", models.StatusApproved)
	second := th.CreateRecipe(t, db, chef, "Second", models.StatusApproved)
	hidden := th.CreateRecipe(t, db, chef, "Hidden", models.StatusApproved)

	require.NoError(t, stores.Favorites.Create(ctx, &models.RecipeFavorite{UserID: alice.ID, RecipeID: first.ID, CreatedAt: time.Now().Add(-2 * time.Minute)}))
	require.NoError(t, stores.Favorites.Create(ctx, &models.RecipeFavorite{UserID: alice.ID, RecipeID: hidden.ID, CreatedAt: time.Now().Add(-time.Minute)}))
	require.NoError(t, stores.Favorites.Create(ctx, &models.RecipeFavorite{UserID: alice.ID, RecipeID: second.ID, CreatedAt: time.Now()}))

	err := stores.Favorites.Create(ctx, &models.RecipeFavorite{UserID: alice.ID, RecipeID: first.ID})
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	require.NoError(t, stores.Recipes.UpdateStatus(ctx, hidden.ID, models.StatusRejected))

	page, err := stores.Favorites.ListRecipes(ctx, alice.ID, firstPage)
	require.NoError(t, err)
	assert.Equal(t, []string{"Second", "First"}, titles(page.Items))

	counts, err := stores.Favorites.Counts(ctx, first.ID, chef.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[first.ID])
	assert.Equal(t, int64(0), counts[chef.ID])

	removed, err := stores.Favorites.Delete(ctx, alice.ID, first.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = stores.Favorites.Delete(ctx, alice.ID, first.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	exists, err := stores.Favorites.Exists(ctx, alice.ID, second.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserStore(t *testing.T) {
	db := th.NewSQLiteDB(t)
	stores := New(db).Stores()
	ctx := context.Background()
	alice := th.CreateUser(t, db, "alice", models.RoleUser)
	th.CreateUser(t, db, "chef", models.RoleChef)

	err := stores.Users.Create(ctx, &models.User{Username: "alice", Email: "other@example.com", PasswordHash: "x"})
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	byEmail, err := stores.Users.GetByLogin(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, byEmail.ID)

	exists, err := stores.Users.ExistsByUsername(ctx, "chef")
	require.NoError(t, err)
	assert.True(t, exists)

	page, err := stores.Users.List(ctx, store.UserQuery{Role: models.RoleChef}, firstPage)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "chef", page.Items[0].Username)

	_, err = stores.Users.GetByLogin(ctx, "nobody")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestWithinTransactionRollsBack(t *testing.T) {
	db := th.NewSQLiteDB(t)
	s := New(db)
	ctx := context.Background()
	chef := th.CreateUser(t, db, "chef", models.RoleChef)
	recipe := th.CreateRecipe(t, db, chef, "Doomed", models.StatusApproved)

	boom := errors.New("boom")
	err := s.WithinTransaction(ctx, func(ctx context.Context, tx store.Stores) error {
		if err := tx.Recipes.Delete(ctx, recipe.ID); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = s.Stores().Recipes.Get(ctx, recipe.ID)
	assert.NoError(t, err)
}
