package gormstore

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/healthyrecipe/backend/internal/apperr"
	"github.com/pageza/healthyrecipe/backend/internal/models"
	"github.com/pageza/healthyrecipe/backend/internal/store"
)

type ratingStore struct {
	db *gorm.DB
}

func (s *ratingStore) Get(ctx context.Context, id uuid.UUID) (*models.Rating, error) {
	var rating models.Rating
	if err := s.db.WithContext(ctx).First(&rating, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "Rating", id)
	}
	return &rating, nil
}

func (s *ratingStore) GetByUserAndRecipe(ctx context.Context, userID, recipeID uuid.UUID) (*models.Rating, error) {
	var rating models.Rating
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("You have not rated this recipe")
		}
		return nil, apperr.Internal(err, "failed to load rating")
	}
	return &rating, nil
}

func (s *ratingStore) Create(ctx context.Context, rating *models.Rating) error {
	if err := s.db.WithContext(ctx).Omit("User").Create(rating).Error; err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("You have already rated this recipe")
		}
		return apperr.Internal(err, "failed to create rating")
	}
	return nil
}

func (s *ratingStore) Update(ctx context.Context, rating *models.Rating) error {
	err := s.db.WithContext(ctx).Model(rating).
		Select("rating", "comment", "updated_at").
		Updates(rating).Error
	if err != nil {
		return apperr.Internal(err, "failed to update rating")
	}
	return nil
}

func (s *ratingStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Rating{})
	if result.Error != nil {
		return apperr.Internal(result.Error, "failed to delete rating")
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("Rating not found with id: %v", id)
	}
	return nil
}

func (s *ratingStore) DeleteByRecipe(ctx context.Context, recipeID uuid.UUID) error {
	if err := s.db.WithContext(ctx).Where("recipe_id = ?", recipeID).Delete(&models.Rating{}).Error; err != nil {
		return apperr.Internal(err, "failed to delete ratings")
	}
	return nil
}

func (s *ratingStore) ListByRecipe(ctx context.Context, recipeID uuid.UUID, p store.PageRequest) (store.Page[models.Rating], error) {
	return s.list(ctx, "recipe_id = ?", recipeID, p)
}

func (s *ratingStore) ListByUser(ctx context.Context, userID uuid.UUID, p store.PageRequest) (store.Page[models.Rating], error) {
	return s.list(ctx, "user_id = ?", userID, p)
}

func (s *ratingStore) list(ctx context.Context, cond string, id uuid.UUID, p store.PageRequest) (store.Page[models.Rating], error) {
	filtered := func() *gorm.DB {
		return s.db.WithContext(ctx).Model(&models.Rating{}).Where(cond, id)
	}
	ordered := func(tx *gorm.DB) *gorm.DB {
		return tx.Preload("User").Order("created_at DESC")
	}
	page, err := paginate[models.Rating](filtered, ordered, p)
	if err != nil {
		return page, apperr.Internal(err, "failed to list ratings")
	}
	return page, nil
}

type ratingAggregate struct {
	RecipeID      uuid.UUID
	AverageRating float64
	TotalRatings  int64
}

// Stats returns rating aggregates keyed by recipe. Recipes without ratings
// are present with a zero average and zero count.
func (s *ratingStore) Stats(ctx context.Context, recipeIDs ...uuid.UUID) (map[uuid.UUID]models.RatingStats, error) {
	stats := make(map[uuid.UUID]models.RatingStats, len(recipeIDs))
	for _, id := range recipeIDs {
		stats[id] = models.RatingStats{RecipeID: id}
	}
	if len(recipeIDs) == 0 {
		return stats, nil
	}

	var rows []ratingAggregate
	err := s.db.WithContext(ctx).Model(&models.Rating{}).
		Select("recipe_id, AVG(rating) AS average_rating, COUNT(*) AS total_ratings").
		Where("recipe_id IN ?", recipeIDs).
		Group("recipe_id").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Internal(err, "failed to aggregate ratings")
	}
	for _, row := range rows {
		stats[row.RecipeID] = models.RatingStats{
			RecipeID:      row.RecipeID,
			AverageRating: row.AverageRating,
			TotalRatings:  row.TotalRatings,
		}
	}
	return stats, nil
}
