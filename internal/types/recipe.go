package types

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/healthyrecipe/backend/internal/apperr"
	"github.com/pageza/healthyrecipe/backend/internal/models"
)

const maxTitleLength = 100

// IngredientRequest is one ingredient line of a recipe submission.
type IngredientRequest struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Notes    string  `json:"notes"`
}

// RecipeRequest represents the request body for creating or updating a recipe.
// Updates replace every field, including the ingredient list.
type RecipeRequest struct {
	Title           string               `json:"title"`
	Description     string               `json:"description"`
	Instructions    string               `json:"instructions"`
	PreparationTime int                  `json:"preparation_time"`
	CookingTime     int                  `json:"cooking_time"`
	Servings        int                  `json:"servings"`
	Difficulty      string               `json:"difficulty"`
	ImageURL        string               `json:"image_url"`
	Categories      []string             `json:"categories"`
	DietaryTags     []string             `json:"dietary_tags"`
	Ingredients     []IngredientRequest  `json:"ingredients"`
	Nutrition       models.NutritionInfo `json:"nutrition"`
}

// Validate checks the submission and reports the first violation as
// InvalidInput.
func (r *RecipeRequest) Validate() error {
	title := strings.TrimSpace(r.Title)
	switch {
	case title == "":
		return apperr.InvalidInput("title is required")
	case len(title) > maxTitleLength:
		return apperr.InvalidInput("title must be at most %d characters", maxTitleLength)
	case strings.TrimSpace(r.Description) == "":
		return apperr.InvalidInput("description is required")
	case strings.TrimSpace(r.Instructions) == "":
		return apperr.InvalidInput("instructions are required")
	case r.PreparationTime <= 0:
		return apperr.InvalidInput("preparation time must be positive")
	case r.CookingTime <= 0:
		return apperr.InvalidInput("cooking time must be positive")
	case r.Servings <= 0:
		return apperr.InvalidInput("servings must be positive")
	}
	for i, ing := range r.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return apperr.InvalidInput("ingredient %d: name is required", i+1)
		}
		if ing.Quantity <= 0 {
			return apperr.InvalidInput("ingredient %d: quantity must be positive", i+1)
		}
	}
	if c := r.Nutrition.Calories; c != nil && *c < 0 {
		return apperr.InvalidInput("calories must not be negative")
	}
	return nil
}

// ApplyTo copies the validated request onto recipe. Status, author and
// identity are left untouched.
func (r *RecipeRequest) ApplyTo(recipe *models.Recipe) error {
	difficulty, err := models.ParseDifficulty(r.Difficulty)
	if err != nil {
		return err
	}
	categories, err := models.ParseCategories(r.Categories)
	if err != nil {
		return err
	}

	recipe.Title = strings.TrimSpace(r.Title)
	recipe.Description = r.Description
	recipe.Instructions = r.Instructions
	recipe.PreparationTime = r.PreparationTime
	recipe.CookingTime = r.CookingTime
	recipe.Servings = r.Servings
	recipe.Difficulty = difficulty
	recipe.ImageURL = r.ImageURL
	recipe.Nutrition = r.Nutrition
	recipe.SetCategories(categories)
	recipe.SetDietaryTags(r.DietaryTags)

	recipe.Ingredients = make([]models.Ingredient, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, models.Ingredient{
			Name:     strings.TrimSpace(ing.Name),
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
			Notes:    ing.Notes,
		})
	}
	return nil
}

// AuthorSummary is the public part of a recipe author.
type AuthorSummary struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
}

type IngredientResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Quantity float64   `json:"quantity"`
	Unit     string    `json:"unit,omitempty"`
	Notes    string    `json:"notes,omitempty"`
}

// RecipeResponse is the read model of a recipe.
type RecipeResponse struct {
	ID              uuid.UUID            `json:"id"`
	Title           string               `json:"title"`
	Description     string               `json:"description"`
	Instructions    string               `json:"instructions"`
	PreparationTime int                  `json:"preparation_time"`
	CookingTime     int                  `json:"cooking_time"`
	TotalTime       int                  `json:"total_time"`
	Servings        int                  `json:"servings"`
	Difficulty      models.Difficulty    `json:"difficulty,omitempty"`
	ImageURL        string               `json:"image_url,omitempty"`
	Status          models.RecipeStatus  `json:"status"`
	Categories      []models.Category    `json:"categories"`
	DietaryTags     []string             `json:"dietary_tags"`
	Ingredients     []IngredientResponse `json:"ingredients"`
	Nutrition       models.NutritionInfo `json:"nutrition"`
	Author          *AuthorSummary       `json:"author,omitempty"`
	AverageRating   float64              `json:"average_rating"`
	TotalRatings    int64                `json:"total_ratings"`
	FavoriteCount   int64                `json:"favorite_count"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

func NewRecipeResponse(r models.Recipe) RecipeResponse {
	resp := RecipeResponse{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		Instructions:    r.Instructions,
		PreparationTime: r.PreparationTime,
		CookingTime:     r.CookingTime,
		TotalTime:       r.TotalTime(),
		Servings:        r.Servings,
		Difficulty:      r.Difficulty,
		ImageURL:        r.ImageURL,
		Status:          r.Status,
		Categories:      r.CategoryList(),
		DietaryTags:     r.TagList(),
		Ingredients:     make([]IngredientResponse, 0, len(r.Ingredients)),
		Nutrition:       r.Nutrition,
		AverageRating:   r.AverageRating,
		TotalRatings:    r.TotalRatings,
		FavoriteCount:   r.FavoriteCount,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	for _, ing := range r.Ingredients {
		resp.Ingredients = append(resp.Ingredients, IngredientResponse{
			ID:       ing.ID,
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
			Notes:    ing.Notes,
		})
	}
	if r.Author != nil {
		resp.Author = &AuthorSummary{
			ID:        r.Author.ID,
			Username:  r.Author.Username,
			FirstName: r.Author.FirstName,
			LastName:  r.Author.LastName,
		}
	}
	return resp
}

// RatingResponse is a rating with its author's username.
type RatingResponse struct {
	ID        uuid.UUID `json:"id"`
	RecipeID  uuid.UUID `json:"recipe_id"`
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewRatingResponse(r models.Rating) RatingResponse {
	resp := RatingResponse{
		ID:        r.ID,
		RecipeID:  r.RecipeID,
		UserID:    r.UserID,
		Rating:    r.Score,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.User != nil {
		resp.Username = r.User.Username
	}
	return resp
}
