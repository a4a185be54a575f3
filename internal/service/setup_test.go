package service_test

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/healthyrecipe/backend/internal/models"
	"github.com/pageza/healthyrecipe/backend/internal/service"
	"github.com/pageza/healthyrecipe/backend/internal/store"
	"github.com/pageza/healthyrecipe/backend/internal/store/gormstore"
	"github.com/pageza/healthyrecipe/backend/internal/testhelpers"
	"github.com/pageza/healthyrecipe/backend/internal/types"
)

const testSecret = "test-secret-that-is-long-enough-for-hs256"

type testEnv struct {
	db              *gorm.DB
	stores          store.Stores
	recipes         *service.RecipeService
	ratings         *service.RatingService
	favorites       *service.FavoriteService
	recommendations *service.RecommendationService
	auth            *service.AuthService
	profiles        *service.ProfileService
	admin           *service.AdminService
}

func setupServices(t *testing.T) *testEnv {
	t.Helper()
	db := testhelpers.NewSQLiteDB(t)
	gs := gormstore.New(db)
	stores := gs.Stores()
	hasher := service.BcryptHasher{Cost: bcrypt.MinCost}

	return &testEnv{
		db:              db,
		stores:          stores,
		recipes:         service.NewRecipeService(stores, gs),
		ratings:         service.NewRatingService(stores, gs),
		favorites:       service.NewFavoriteService(stores),
		recommendations: service.NewRecommendationService(stores),
		auth:            service.NewAuthService(stores.Users, hasher, testSecret, time.Hour),
		profiles:        service.NewProfileService(stores.Users, hasher),
		admin:           service.NewAdminService(stores.Users),
	}
}

var (
	ctx       = context.Background()
	firstPage = store.NewPageRequest(0, 20)
)

func recipeTitles(page store.Page[models.Recipe]) []string {
	out := make([]string, 0, len(page.Items))
	for _, r := range page.Items {
		out = append(out, r.Title)
	}
	return out
}

func validRecipe(title string) *types.RecipeRequest {
	return &types.RecipeRequest{
		Title:           title,
		Description:     title + " description",
		Instructions:    "Chop, stir and serve.",
		PreparationTime: 10,
		CookingTime:     15,
		Servings:        2,
		Ingredients:     []types.IngredientRequest{{Name: "oats", Quantity: 1, Unit: "cup"}},
	}
}
