// Package seed fills an empty database with demo accounts and recipes.
package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/pageza/healthyrecipe/backend/internal/models"
	"github.com/pageza/healthyrecipe/backend/internal/service"
	"github.com/pageza/healthyrecipe/backend/internal/store"
	"github.com/pageza/healthyrecipe/backend/internal/types"
)

type Options struct {
	AdminUsername string
	AdminEmail    string
	AdminPassword string
	// DemoPassword is shared by the demo chef and user accounts.
	DemoPassword string
}

// Summary reports what a run created.
type Summary struct {
	Skipped  bool
	Users    int
	Approved int
	Pending  int
	Ratings  int
}

// Run seeds the database through the domain services. It does nothing when
// the admin account already exists.
func Run(ctx context.Context, stores store.Stores, tx store.Transactor, hasher service.Hasher, opts Options) (*Summary, error) {
	exists, err := stores.Users.ExistsByUsername(ctx, opts.AdminUsername)
	if err != nil {
		return nil, err
	}
	if exists {
		log.Info().Str("admin", opts.AdminUsername).Msg("Database already seeded")
		return &Summary{Skipped: true}, nil
	}

	admin, err := createUser(ctx, stores.Users, hasher, opts.AdminUsername, opts.AdminEmail, opts.AdminPassword, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	chef, err := createUser(ctx, stores.Users, hasher, "demochef", "chef@example.com", opts.DemoPassword, models.RoleChef)
	if err != nil {
		return nil, err
	}
	eater, err := createUser(ctx, stores.Users, hasher, "demouser", "user@example.com", opts.DemoPassword, models.RoleUser)
	if err != nil {
		return nil, err
	}
	summary := &Summary{Users: 3}

	recipes := service.NewRecipeService(stores, tx)
	ratings := service.NewRatingService(stores, tx)
	favorites := service.NewFavoriteService(stores)

	samples := sampleRecipes()
	for i := range samples {
		recipe, err := recipes.CreateRecipe(ctx, chef, &samples[i])
		if err != nil {
			return nil, fmt.Errorf("failed to create %q: %w", samples[i].Title, err)
		}
		// The last sample stays in the moderation queue.
		if i == len(samples)-1 {
			summary.Pending++
			continue
		}
		if _, err := recipes.ApproveRecipe(ctx, admin, recipe.ID); err != nil {
			return nil, err
		}
		summary.Approved++

		score := 5 - i%3
		if _, err := ratings.Rate(ctx, eater, recipe.ID, score, ""); err != nil {
			return nil, err
		}
		summary.Ratings++
		if i%2 == 0 {
			if err := favorites.AddFavorite(ctx, eater, recipe.ID); err != nil {
				return nil, err
			}
		}
	}

	log.Info().
		Int("users", summary.Users).
		Int("approved", summary.Approved).
		Int("pending", summary.Pending).
		Msg("Seeded database")
	return summary, nil
}

func createUser(ctx context.Context, users store.UserStore, hasher service.Hasher, username, email, password string, role models.Role) (*models.User, error) {
	hash, err := hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Demo",
		LastName:     string(role),
		Role:         role,
		Status:       models.AccountActive,
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", username, err)
	}
	return user, nil
}

func calories(n int) *int { return &n }

func sampleRecipes() []types.RecipeRequest {
	return []types.RecipeRequest{
		{
			Title:           "Overnight Oats",
			Description:     "Creamy oats soaked overnight with berries.",
			Instructions:    "Combine oats and almond milk. Refrigerate overnight. Top with berries.",
			PreparationTime: 5,
			CookingTime:     1,
			Servings:        1,
			Difficulty:      "easy",
			Categories:      []string{"breakfast"},
			DietaryTags:     []string{"vegan", "dairy-free", "healthy"},
			Ingredients: []types.IngredientRequest{
				{Name: "rolled oats", Quantity: 0.5, Unit: "cup"},
				{Name: "almond milk", Quantity: 0.75, Unit: "cup"},
				{Name: "blueberries", Quantity: 0.25, Unit: "cup"},
			},
			Nutrition: models.NutritionInfo{Calories: calories(310)},
		},
		{
			Title:           "Grilled Chicken Quinoa Bowl",
			Description:     "Lean chicken over quinoa with roasted vegetables.",
			Instructions:    "Cook quinoa. Grill chicken. Roast vegetables. Assemble the bowl.",
			PreparationTime: 15,
			CookingTime:     25,
			Servings:        2,
			Difficulty:      "medium",
			Categories:      []string{"lunch", "main course"},
			DietaryTags:     []string{"high-protein", "gluten-free", "post-workout"},
			Ingredients: []types.IngredientRequest{
				{Name: "chicken breast", Quantity: 300, Unit: "g"},
				{Name: "quinoa", Quantity: 1, Unit: "cup"},
				{Name: "zucchini", Quantity: 1},
			},
			Nutrition: models.NutritionInfo{Calories: calories(540)},
		},
		{
			Title:           "Lentil Soup",
			Description:     "A hearty red lentil soup with cumin.",
			Instructions:    "Saute onion and garlic. Add lentils, stock and spices. Simmer until soft.",
			PreparationTime: 10,
			CookingTime:     30,
			Servings:        4,
			Difficulty:      "easy",
			Categories:      []string{"soup", "dinner"},
			DietaryTags:     []string{"vegan", "high-fiber", "low-fat"},
			Ingredients: []types.IngredientRequest{
				{Name: "red lentils", Quantity: 1, Unit: "cup"},
				{Name: "vegetable stock", Quantity: 1, Unit: "l"},
				{Name: "cumin", Quantity: 1, Unit: "tsp"},
			},
			Nutrition: models.NutritionInfo{Calories: calories(280)},
		},
		{
			Title:           "Greek Salad",
			Description:     "Tomatoes, cucumber, olives and feta.",
			Instructions:    "Chop the vegetables, add olives and feta, dress with olive oil.",
			PreparationTime: 10,
			CookingTime:     1,
			Servings:        2,
			Difficulty:      "easy",
			Categories:      []string{"salad", "side dish"},
			DietaryTags:     []string{"vegetarian", "mediterranean", "gluten-free"},
			Ingredients: []types.IngredientRequest{
				{Name: "tomatoes", Quantity: 2},
				{Name: "cucumber", Quantity: 1},
				{Name: "feta", Quantity: 100, Unit: "g"},
			},
			Nutrition: models.NutritionInfo{Calories: calories(220)},
		},
		{
			Title:           "Salmon with Asparagus",
			Description:     "Oven baked salmon with lemon and asparagus.",
			Instructions:    "Season salmon, lay on a tray with asparagus, bake for 15 minutes.",
			PreparationTime: 10,
			CookingTime:     15,
			Servings:        2,
			Difficulty:      "medium",
			Categories:      []string{"dinner"},
			DietaryTags:     []string{"keto", "low-carb", "high-protein"},
			Ingredients: []types.IngredientRequest{
				{Name: "salmon fillet", Quantity: 2},
				{Name: "asparagus", Quantity: 250, Unit: "g"},
				{Name: "lemon", Quantity: 1},
			},
			Nutrition: models.NutritionInfo{Calories: calories(460)},
		},
		{
			Title:           "Chocolate Soufflé",
			Description:     "A light and airy chocolate dessert.",
			Instructions:    "Melt chocolate, fold in whipped egg whites, bake until risen.",
			PreparationTime: 20,
			CookingTime:     15,
			Servings:        4,
			Difficulty:      "hard",
			Categories:      []string{"dessert"},
			DietaryTags:     []string{"vegetarian"},
			Ingredients: []types.IngredientRequest{
				{Name: "dark chocolate", Quantity: 150, Unit: "g"},
				{Name: "eggs", Quantity: 4},
				{Name: "sugar", Quantity: 50, Unit: "g"},
			},
			Nutrition: models.NutritionInfo{Calories: calories(390)},
		},
	}
}
