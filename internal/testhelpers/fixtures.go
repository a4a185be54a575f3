package testhelpers

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/pageza/healthyrecipe/backend/internal/models"
)

// CreateUser inserts an active user with the given role.
func CreateUser(t *testing.T, db *gorm.DB, username string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: "not-a-real-hash",
		Role:         role,
		Status:       models.AccountActive,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

// RecipeOption customizes a fixture recipe before it is inserted.
type RecipeOption func(*models.Recipe)

func WithCategories(categories ...models.Category) RecipeOption {
	return func(r *models.Recipe) { r.SetCategories(categories) }
}

func WithTags(tags ...string) RecipeOption {
	return func(r *models.Recipe) { r.SetDietaryTags(tags) }
}

func WithCalories(calories int) RecipeOption {
	return func(r *models.Recipe) { r.Nutrition.Calories = &calories }
}

func WithTimes(prep, cook int) RecipeOption {
	return func(r *models.Recipe) {
		r.PreparationTime = prep
		r.CookingTime = cook
	}
}

func WithDifficulty(d models.Difficulty) RecipeOption {
	return func(r *models.Recipe) { r.Difficulty = d }
}

// WithCreatedAt pins the creation time so ordering tests are deterministic.
func WithCreatedAt(ts time.Time) RecipeOption {
	return func(r *models.Recipe) { r.CreatedAt = ts }
}

// CreateRecipe inserts a recipe by author with the given status.
func CreateRecipe(t *testing.T, db *gorm.DB, author *models.User, title string, status models.RecipeStatus, opts ...RecipeOption) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		Title:           title,
		Description:     title + " description",
		Instructions:    "Mix and cook.",
		PreparationTime: 10,
		CookingTime:     20,
		Servings:        2,
		Status:          status,
		AuthorID:        author.ID,
		Ingredients:     []models.Ingredient{{Name: "salt", Quantity: 1, Unit: "tsp"}},
	}
	for _, opt := range opts {
		opt(recipe)
	}
	if err := db.Omit("Author").Create(recipe).Error; err != nil {
		t.Fatalf("failed to create recipe %s: %v", title, err)
	}
	return recipe
}

// Rate inserts a rating directly.
func Rate(t *testing.T, db *gorm.DB, user *models.User, recipe *models.Recipe, score int) *models.Rating {
	t.Helper()
	rating := &models.Rating{UserID: user.ID, RecipeID: recipe.ID, Score: score}
	if err := db.Omit("User").Create(rating).Error; err != nil {
		t.Fatalf("failed to rate recipe: %v", err)
	}
	return rating
}

// Favorite inserts a favorite directly.
func Favorite(t *testing.T, db *gorm.DB, user *models.User, recipe *models.Recipe) *models.RecipeFavorite {
	t.Helper()
	favorite := &models.RecipeFavorite{UserID: user.ID, RecipeID: recipe.ID}
	if err := db.Create(favorite).Error; err != nil {
		t.Fatalf("failed to favorite recipe: %v", err)
	}
	return favorite
}
