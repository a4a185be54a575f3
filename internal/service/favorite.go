package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/healthyrecipe/backend/internal/apperr"
	"github.com/pageza/healthyrecipe/backend/internal/metrics"
	"github.com/pageza/healthyrecipe/backend/internal/models"
	"github.com/pageza/healthyrecipe/backend/internal/store"
)

// FavoriteService manages each user's set of favorite recipes.
type FavoriteService struct {
	stores store.Stores
}

var _ IFavoriteService = (*FavoriteService)(nil)

func NewFavoriteService(stores store.Stores) *FavoriteService {
	return &FavoriteService{stores: stores}
}

func (s *FavoriteService) AddFavorite(ctx context.Context, actor *models.User, recipeID uuid.UUID) error {
	if actor == nil {
		return apperr.Unauthenticated("authentication required")
	}
	if _, err := visibleRecipe(ctx, s.stores.Recipes, actor, recipeID); err != nil {
		return err
	}
	if err := s.stores.Favorites.Create(ctx, &models.RecipeFavorite{UserID: actor.ID, RecipeID: recipeID}); err != nil {
		return err
	}
	metrics.RecordFavorite("added")
	return nil
}

func (s *FavoriteService) RemoveFavorite(ctx context.Context, actor *models.User, recipeID uuid.UUID) error {
	if actor == nil {
		return apperr.Unauthenticated("authentication required")
	}
	removed, err := s.stores.Favorites.Delete(ctx, actor.ID, recipeID)
	if err != nil {
		return err
	}
	if !removed {
		return apperr.NotFound("Recipe is not in favorites")
	}
	metrics.RecordFavorite("removed")
	return nil
}

func (s *FavoriteService) IsFavorited(ctx context.Context, actor *models.User, recipeID uuid.UUID) (bool, error) {
	if actor == nil {
		return false, apperr.Unauthenticated("authentication required")
	}
	return s.stores.Favorites.Exists(ctx, actor.ID, recipeID)
}

func (s *FavoriteService) CountForRecipe(ctx context.Context, recipeID uuid.UUID) (int64, error) {
	if _, err := s.stores.Recipes.Get(ctx, recipeID); err != nil {
		return 0, err
	}
	counts, err := s.stores.Favorites.Counts(ctx, recipeID)
	if err != nil {
		return 0, err
	}
	return counts[recipeID], nil
}

// ListFavorites returns actor's favorites, most recently added first.
func (s *FavoriteService) ListFavorites(ctx context.Context, actor *models.User, p store.PageRequest) (store.Page[models.Recipe], error) {
	if actor == nil {
		return store.Page[models.Recipe]{}, apperr.Unauthenticated("authentication required")
	}
	if err := p.Validate(); err != nil {
		return store.Page[models.Recipe]{}, err
	}
	page, err := s.stores.Favorites.ListRecipes(ctx, actor.ID, p)
	if err != nil {
		return page, err
	}
	if err := decoratePage(ctx, s.stores, &page); err != nil {
		return page, err
	}
	return page, nil
}
