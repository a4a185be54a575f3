package gormstore

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/healthyrecipe/backend/internal/apperr"
	"github.com/pageza/healthyrecipe/backend/internal/models"
	"github.com/pageza/healthyrecipe/backend/internal/search"
	"github.com/pageza/healthyrecipe/backend/internal/store"
)

// likeEscaper makes LIKE wildcards in a keyword match literally.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

type recipeStore struct {
	db         *gorm.DB
	embeddings bool
}

func (s *recipeStore) preloaded(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Author").
		Preload("Categories").
		Preload("DietaryTags").
		Preload("Ingredients")
}

func (s *recipeStore) Get(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.preloaded(ctx).First(&recipe, "recipes.id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "Recipe", id)
	}
	return &recipe, nil
}

func (s *recipeStore) Create(ctx context.Context, recipe *models.Recipe) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}
		return s.replaceOwned(tx, recipe)
	})
	if err != nil {
		return apperr.Internal(err, "failed to create recipe")
	}
	return nil
}

func (s *recipeStore) Update(ctx context.Context, recipe *models.Recipe) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(recipe).Error; err != nil {
			return err
		}
		return s.replaceOwned(tx, recipe)
	})
	if err != nil {
		return apperr.Internal(err, "failed to update recipe")
	}
	return nil
}

// replaceOwned discards the recipe's ingredients, links and embedding and
// writes the current ones wholesale.
func (s *recipeStore) replaceOwned(tx *gorm.DB, recipe *models.Recipe) error {
	if err := deleteOwned(tx, recipe.ID, s.embeddings); err != nil {
		return err
	}

	for i := range recipe.Ingredients {
		recipe.Ingredients[i].ID = uuid.Nil
		recipe.Ingredients[i].RecipeID = recipe.ID
	}
	for i := range recipe.Categories {
		recipe.Categories[i].RecipeID = recipe.ID
	}
	for i := range recipe.DietaryTags {
		recipe.DietaryTags[i].RecipeID = recipe.ID
	}

	if len(recipe.Ingredients) > 0 {
		if err := tx.Create(&recipe.Ingredients).Error; err != nil {
			return err
		}
	}
	if len(recipe.Categories) > 0 {
		if err := tx.Create(&recipe.Categories).Error; err != nil {
			return err
		}
	}
	if len(recipe.DietaryTags) > 0 {
		if err := tx.Create(&recipe.DietaryTags).Error; err != nil {
			return err
		}
	}
	if s.embeddings {
		row := search.EmbedRecipe(recipe)
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func deleteOwned(tx *gorm.DB, recipeID uuid.UUID, embeddings bool) error {
	owned := []interface{}{&models.Ingredient{}, &models.RecipeCategory{}, &models.RecipeDietaryTag{}}
	if embeddings {
		owned = append(owned, &models.RecipeEmbedding{})
	}
	for _, model := range owned {
		if err := tx.Where("recipe_id = ?", recipeID).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *recipeStore) UpdateStatus(ctx context.Context, id uuid.UUID, status models.RecipeStatus) error {
	result := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return apperr.Internal(result.Error, "failed to update recipe status")
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("Recipe not found with id: %v", id)
	}
	return nil
}

// Delete removes the recipe and the rows it owns. Ratings and favorites are
// removed by their own stores.
func (s *recipeStore) Delete(ctx context.Context, id uuid.UUID) error {
	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteOwned(tx, id, s.embeddings); err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Recipe{})
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return apperr.Internal(err, "failed to delete recipe")
	}
	if affected == 0 {
		return apperr.NotFound("Recipe not found with id: %v", id)
	}
	return nil
}

func (s *recipeStore) List(ctx context.Context, q store.RecipeQuery, p store.PageRequest) (store.Page[models.Recipe], error) {
	filtered := func() *gorm.DB {
		return applyRecipeFilters(s.db.WithContext(ctx).Model(&models.Recipe{}), q)
	}
	ordered := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Preload("Author").Preload("Categories").Preload("DietaryTags").Preload("Ingredients")
		return s.applyRecipeOrder(tx, q)
	}

	page, err := paginate[models.Recipe](filtered, ordered, p)
	if err != nil {
		return page, apperr.Internal(err, "failed to list recipes")
	}
	return page, nil
}

func applyRecipeFilters(tx *gorm.DB, q store.RecipeQuery) *gorm.DB {
	if q.Status != "" {
		tx = tx.Where("recipes.status = ?", q.Status)
	}
	if q.AuthorID != nil {
		tx = tx.Where("recipes.author_id = ?", *q.AuthorID)
	}
	if len(q.Categories) > 0 {
		tx = tx.Where("recipes.id IN (?)",
			tx.Session(&gorm.Session{NewDB: true}).Model(&models.RecipeCategory{}).
				Select("recipe_id").Where("category IN ?", q.Categories))
	}
	if len(q.DietaryTags) > 0 {
		tx = tx.Where("recipes.id IN (?)",
			tx.Session(&gorm.Session{NewDB: true}).Model(&models.RecipeDietaryTag{}).
				Select("recipe_id").Where("tag IN ?", q.DietaryTags))
	}
	if q.MinCalories != nil {
		tx = tx.Where("recipes.nutrition_calories >= ?", *q.MinCalories)
	}
	if q.MaxCalories != nil {
		tx = tx.Where("recipes.nutrition_calories <= ?", *q.MaxCalories)
	}
	if q.MaxTotalTime != nil {
		tx = tx.Where("(recipes.preparation_time + recipes.cooking_time) <= ?", *q.MaxTotalTime)
	}
	if q.Difficulty != "" {
		tx = tx.Where("recipes.difficulty = ?", q.Difficulty)
	}
	if kw := strings.TrimSpace(q.Keyword); kw != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(kw)) + "%"
		tx = tx.Where("LOWER(recipes.title) LIKE ? ESCAPE '!' OR LOWER(recipes.description) LIKE ? ESCAPE '!'", like, like)
	}
	return tx
}

func (s *recipeStore) applyRecipeOrder(tx *gorm.DB, q store.RecipeQuery) *gorm.DB {
	latest := "recipes.created_at DESC, recipes.id DESC"

	switch q.OrderBy {
	case store.OrderTopRated:
		return tx.Select("recipes.*").
			Joins("LEFT JOIN (SELECT recipe_id, AVG(rating) AS avg_rating FROM ratings GROUP BY recipe_id) rs ON rs.recipe_id = recipes.id").
			Order("COALESCE(rs.avg_rating, 0) DESC").
			Order(latest)
	case store.OrderMostFavorited:
		return tx.Select("recipes.*").
			Joins("LEFT JOIN (SELECT recipe_id, COUNT(*) AS favorite_count FROM recipe_favorites GROUP BY recipe_id) fs ON fs.recipe_id = recipes.id").
			Order("COALESCE(fs.favorite_count, 0) DESC").
			Order(latest)
	case store.OrderRelevance:
		if s.embeddings && strings.TrimSpace(q.Keyword) != "" {
			return tx.Select("recipes.*").
				Joins("LEFT JOIN recipe_embeddings re ON re.recipe_id = recipes.id").
				Order(clause.OrderBy{Expression: clause.Expr{
					SQL:  "re.embedding <-> ? NULLS LAST",
					Vars: []interface{}{search.Embed(q.Keyword)},
				}}).
				Order(latest)
		}
		return tx.Order(latest)
	default:
		return tx.Order(latest)
	}
}
