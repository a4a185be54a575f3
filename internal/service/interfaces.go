package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/healthyrecipe/backend/internal/models"
	"github.com/pageza/healthyrecipe/backend/internal/store"
	"github.com/pageza/healthyrecipe/backend/internal/types"
)

// Every operation takes the acting user explicitly. A nil actor stands for an
// anonymous visitor and is only accepted by read operations.

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, login, password string) (*models.User, string, error)
	GenerateToken(user *models.User) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	Actor(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, actor *models.User) (*models.User, error)
	UpdateProfile(ctx context.Context, actor *models.User, req *types.UpdateProfileRequest) (*models.User, error)
	ChangePassword(ctx context.Context, actor *models.User, current, next string) error
	GetPublicProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, actor *models.User, req *types.RecipeRequest) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, actor *models.User, id uuid.UUID, req *types.RecipeRequest) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, actor *models.User, id uuid.UUID) error
	GetRecipe(ctx context.Context, viewer *models.User, id uuid.UUID) (*models.Recipe, error)
	ApproveRecipe(ctx context.Context, actor *models.User, id uuid.UUID) (*models.Recipe, error)
	RejectRecipe(ctx context.Context, actor *models.User, id uuid.UUID) (*models.Recipe, error)

	ListRecipes(ctx context.Context, p store.PageRequest) (store.Page[models.Recipe], error)
	SearchRecipes(ctx context.Context, keyword string, p store.PageRequest) (store.Page[models.Recipe], error)
	ListByCategories(ctx context.Context, categories []string, p store.PageRequest) (store.Page[models.Recipe], error)
	ListByDietaryTags(ctx context.Context, tags []string, p store.PageRequest) (store.Page[models.Recipe], error)
	ListByCalorieRange(ctx context.Context, minCalories, maxCalories int, p store.PageRequest) (store.Page[models.Recipe], error)
	ListQuick(ctx context.Context, maxTotalTime int, p store.PageRequest) (store.Page[models.Recipe], error)
	ListByDifficulty(ctx context.Context, difficulty string, p store.PageRequest) (store.Page[models.Recipe], error)
	ListTopRated(ctx context.Context, p store.PageRequest) (store.Page[models.Recipe], error)
	ListLatest(ctx context.Context, p store.PageRequest) (store.Page[models.Recipe], error)
	ListMostFavorited(ctx context.Context, p store.PageRequest) (store.Page[models.Recipe], error)
	ListMine(ctx context.Context, actor *models.User, p store.PageRequest) (store.Page[models.Recipe], error)
	ListByUser(ctx context.Context, userID uuid.UUID, p store.PageRequest) (store.Page[models.Recipe], error)
	ListPending(ctx context.Context, actor *models.User, p store.PageRequest) (store.Page[models.Recipe], error)
}

// IRatingService defines the interface for rating operations
type IRatingService interface {
	Rate(ctx context.Context, actor *models.User, recipeID uuid.UUID, value int, comment string) (*models.Rating, error)
	DeleteRating(ctx context.Context, actor *models.User, ratingID uuid.UUID) error
	AverageRating(ctx context.Context, recipeID uuid.UUID) (float64, error)
	Stats(ctx context.Context, recipeID uuid.UUID) (models.RatingStats, error)
	ListForRecipe(ctx context.Context, viewer *models.User, recipeID uuid.UUID, p store.PageRequest) (store.Page[models.Rating], error)
	ListMine(ctx context.Context, actor *models.User, p store.PageRequest) (store.Page[models.Rating], error)
	GetMine(ctx context.Context, actor *models.User, recipeID uuid.UUID) (*models.Rating, error)
}

// IFavoriteService defines the interface for favorite operations
type IFavoriteService interface {
	AddFavorite(ctx context.Context, actor *models.User, recipeID uuid.UUID) error
	RemoveFavorite(ctx context.Context, actor *models.User, recipeID uuid.UUID) error
	IsFavorited(ctx context.Context, actor *models.User, recipeID uuid.UUID) (bool, error)
	CountForRecipe(ctx context.Context, recipeID uuid.UUID) (int64, error)
	ListFavorites(ctx context.Context, actor *models.User, p store.PageRequest) (store.Page[models.Recipe], error)
}

// IRecommendationService defines the interface for recommendation operations
type IRecommendationService interface {
	Personalized(ctx context.Context, actor *models.User, p store.PageRequest) (store.Page[models.Recipe], Strategy, error)
	ByFitnessGoal(ctx context.Context, actor *models.User, goal string, p store.PageRequest) (store.Page[models.Recipe], error)
	Quick(ctx context.Context, p store.PageRequest) (store.Page[models.Recipe], error)
	Healthy(ctx context.Context, p store.PageRequest) (store.Page[models.Recipe], error)
	Beginner(ctx context.Context, p store.PageRequest) (store.Page[models.Recipe], error)
	AllergyFree(ctx context.Context, actor *models.User, allergies []string, p store.PageRequest) (store.Page[models.Recipe], error)
	Similar(ctx context.Context, viewer *models.User, recipeID uuid.UUID, p store.PageRequest) (store.Page[models.Recipe], error)
}

// IAdminService defines the interface for account administration
type IAdminService interface {
	ListUsers(ctx context.Context, actor *models.User, q store.UserQuery, p store.PageRequest) (store.Page[models.User], error)
	SetUserStatus(ctx context.Context, actor *models.User, userID uuid.UUID, status string) (*models.User, error)
	SetUserRole(ctx context.Context, actor *models.User, userID uuid.UUID, role string) (*models.User, error)
}
