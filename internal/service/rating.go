package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/pageza/healthyrecipe/backend/internal/apperr"
	"github.com/pageza/healthyrecipe/backend/internal/metrics"
	"github.com/pageza/healthyrecipe/backend/internal/models"
	"github.com/pageza/healthyrecipe/backend/internal/policy"
	"github.com/pageza/healthyrecipe/backend/internal/store"
)

// RatingService keeps at most one rating per user and recipe and derives the
// aggregate figures from the stored rows.
type RatingService struct {
	stores store.Stores
	tx     store.Transactor
}

var _ IRatingService = (*RatingService)(nil)

func NewRatingService(stores store.Stores, tx store.Transactor) *RatingService {
	return &RatingService{stores: stores, tx: tx}
}

// Rate records actor's score for a recipe. Rating the same recipe again
// overwrites the previous score and comment in place.
func (s *RatingService) Rate(ctx context.Context, actor *models.User, recipeID uuid.UUID, value int, comment string) (*models.Rating, error) {
	if actor == nil {
		return nil, apperr.Unauthenticated("authentication required")
	}
	if value < models.MinRating || value > models.MaxRating {
		return nil, apperr.InvalidInput("Rating must be between %d and %d", models.MinRating, models.MaxRating)
	}
	if _, err := visibleRecipe(ctx, s.stores.Recipes, actor, recipeID); err != nil {
		return nil, err
	}

	var (
		rating  *models.Rating
		created bool
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, tx store.Stores) error {
		existing, err := tx.Ratings.GetByUserAndRecipe(ctx, actor.ID, recipeID)
		switch {
		case err == nil:
			existing.Score = value
			existing.Comment = comment
			rating = existing
			return tx.Ratings.Update(ctx, existing)
		case errors.Is(err, apperr.ErrNotFound):
			rating = &models.Rating{UserID: actor.ID, RecipeID: recipeID, Score: value, Comment: comment}
			created = true
			// A concurrent first rating by the same user loses here with Conflict.
			return tx.Ratings.Create(ctx, rating)
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}

	if created {
		metrics.RecordRating("created")
	} else {
		metrics.RecordRating("updated")
	}
	return rating, nil
}

// DeleteRating removes a rating. Only its author or an administrator may.
func (s *RatingService) DeleteRating(ctx context.Context, actor *models.User, ratingID uuid.UUID) error {
	rating, err := s.stores.Ratings.Get(ctx, ratingID)
	if err != nil {
		return err
	}
	if err := policy.Authorize(actor, rating.UserID, "delete this rating"); err != nil {
		return err
	}
	if err := s.stores.Ratings.Delete(ctx, ratingID); err != nil {
		return err
	}
	metrics.RecordRating("deleted")
	return nil
}

// AverageRating is the arithmetic mean of the recipe's ratings, or exactly 0
// when it has none.
func (s *RatingService) AverageRating(ctx context.Context, recipeID uuid.UUID) (float64, error) {
	stats, err := s.Stats(ctx, recipeID)
	if err != nil {
		return 0, err
	}
	return stats.AverageRating, nil
}

func (s *RatingService) Stats(ctx context.Context, recipeID uuid.UUID) (models.RatingStats, error) {
	if _, err := s.stores.Recipes.Get(ctx, recipeID); err != nil {
		return models.RatingStats{}, err
	}
	stats, err := s.stores.Ratings.Stats(ctx, recipeID)
	if err != nil {
		return models.RatingStats{}, err
	}
	return stats[recipeID], nil
}

// ListForRecipe returns the ratings of a visible recipe, newest first.
func (s *RatingService) ListForRecipe(ctx context.Context, viewer *models.User, recipeID uuid.UUID, p store.PageRequest) (store.Page[models.Rating], error) {
	if err := p.Validate(); err != nil {
		return store.Page[models.Rating]{}, err
	}
	if _, err := visibleRecipe(ctx, s.stores.Recipes, viewer, recipeID); err != nil {
		return store.Page[models.Rating]{}, err
	}
	return s.stores.Ratings.ListByRecipe(ctx, recipeID, p)
}

func (s *RatingService) ListMine(ctx context.Context, actor *models.User, p store.PageRequest) (store.Page[models.Rating], error) {
	if actor == nil {
		return store.Page[models.Rating]{}, apperr.Unauthenticated("authentication required")
	}
	if err := p.Validate(); err != nil {
		return store.Page[models.Rating]{}, err
	}
	return s.stores.Ratings.ListByUser(ctx, actor.ID, p)
}

// GetMine returns actor's rating for the recipe, NotFound if there is none.
func (s *RatingService) GetMine(ctx context.Context, actor *models.User, recipeID uuid.UUID) (*models.Rating, error) {
	if actor == nil {
		return nil, apperr.Unauthenticated("authentication required")
	}
	return s.stores.Ratings.GetByUserAndRecipe(ctx, actor.ID, recipeID)
}
