package gormstore

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/healthyrecipe/backend/internal/apperr"
	"github.com/pageza/healthyrecipe/backend/internal/models"
	"github.com/pageza/healthyrecipe/backend/internal/store"
)

type favoriteStore struct {
	db *gorm.DB
}

func (s *favoriteStore) Create(ctx context.Context, favorite *models.RecipeFavorite) error {
	if err := s.db.WithContext(ctx).Create(favorite).Error; err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("Recipe is already in favorites")
		}
		return apperr.Internal(err, "failed to add favorite")
	}
	return nil
}

func (s *favoriteStore) Delete(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.RecipeFavorite{})
	if result.Error != nil {
		return false, apperr.Internal(result.Error, "failed to remove favorite")
	}
	return result.RowsAffected > 0, nil
}

func (s *favoriteStore) DeleteByRecipe(ctx context.Context, recipeID uuid.UUID) error {
	if err := s.db.WithContext(ctx).Where("recipe_id = ?", recipeID).Delete(&models.RecipeFavorite{}).Error; err != nil {
		return apperr.Internal(err, "failed to delete favorites")
	}
	return nil
}

func (s *favoriteStore) Exists(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.RecipeFavorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	if err != nil {
		return false, apperr.Internal(err, "failed to check favorite")
	}
	return count > 0, nil
}

type favoriteCount struct {
	RecipeID uuid.UUID
	Total    int64
}

// Counts returns favorite counts keyed by recipe, zero for recipes nobody
// has favorited.
func (s *favoriteStore) Counts(ctx context.Context, recipeIDs ...uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(recipeIDs))
	for _, id := range recipeIDs {
		counts[id] = 0
	}
	if len(recipeIDs) == 0 {
		return counts, nil
	}

	var rows []favoriteCount
	err := s.db.WithContext(ctx).Model(&models.RecipeFavorite{}).
		Select("recipe_id, COUNT(*) AS total").
		Where("recipe_id IN ?", recipeIDs).
		Group("recipe_id").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Internal(err, "failed to count favorites")
	}
	for _, row := range rows {
		counts[row.RecipeID] = row.Total
	}
	return counts, nil
}

// ListRecipes pages through the user's favorites, newest first. Recipes that
// are no longer approved stay listed only for their author.
func (s *favoriteStore) ListRecipes(ctx context.Context, userID uuid.UUID, p store.PageRequest) (store.Page[models.Recipe], error) {
	filtered := func() *gorm.DB {
		return s.db.WithContext(ctx).Model(&models.Recipe{}).
			Joins("JOIN recipe_favorites f ON f.recipe_id = recipes.id").
			Where("f.user_id = ?", userID).
			Where("recipes.status = ? OR recipes.author_id = ?", models.StatusApproved, userID)
	}
	ordered := func(tx *gorm.DB) *gorm.DB {
		return tx.Select("recipes.*").
			Preload("Author").Preload("Categories").Preload("DietaryTags").Preload("Ingredients").
			Order("f.created_at DESC")
	}

	page, err := paginate[models.Recipe](filtered, ordered, p)
	if err != nil {
		return page, apperr.Internal(err, "failed to list favorites")
	}
	return page, nil
}
