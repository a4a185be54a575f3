package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/pageza/healthyrecipe/backend/internal/apperr"
	"github.com/pageza/healthyrecipe/backend/internal/logging"
	"github.com/pageza/healthyrecipe/backend/internal/metrics"
	"github.com/pageza/healthyrecipe/backend/internal/models"
	"github.com/pageza/healthyrecipe/backend/internal/policy"
	"github.com/pageza/healthyrecipe/backend/internal/store"
	"github.com/pageza/healthyrecipe/backend/internal/types"
)

// RecipeService owns the recipe lifecycle: submission, edits, moderation,
// deletion and every public listing.
type RecipeService struct {
	stores store.Stores
	tx     store.Transactor
}

var _ IRecipeService = (*RecipeService)(nil)

func NewRecipeService(stores store.Stores, tx store.Transactor) *RecipeService {
	return &RecipeService{stores: stores, tx: tx}
}

// CreateRecipe stores a new recipe authored by actor. Administrators publish
// directly; everyone else lands in the moderation queue.
func (s *RecipeService) CreateRecipe(ctx context.Context, actor *models.User, req *types.RecipeRequest) (*models.Recipe, error) {
	if actor == nil {
		return nil, apperr.Unauthenticated("authentication required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		AuthorID: actor.ID,
		Status:   policy.InitialStatus(actor),
	}
	if err := req.ApplyTo(recipe); err != nil {
		return nil, err
	}
	if err := s.stores.Recipes.Create(ctx, recipe); err != nil {
		return nil, err
	}

	metrics.RecordSubmission(string(recipe.Status))
	logging.FromContext(ctx).Info().
		Str("recipe_id", recipe.ID.String()).
		Str("author_id", actor.ID.String()).
		Str("status", string(recipe.Status)).
		Msg("recipe submitted")

	return s.load(ctx, recipe.ID)
}

// UpdateRecipe replaces the editable fields of a recipe. The moderation
// status is never touched by an edit.
func (s *RecipeService) UpdateRecipe(ctx context.Context, actor *models.User, id uuid.UUID, req *types.RecipeRequest) (*models.Recipe, error) {
	recipe, err := s.stores.Recipes.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, recipe.AuthorID, "update this recipe"); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := req.ApplyTo(recipe); err != nil {
		return nil, err
	}
	if err := s.stores.Recipes.Update(ctx, recipe); err != nil {
		return nil, err
	}
	return s.load(ctx, recipe.ID)
}

// DeleteRecipe removes a recipe together with its ratings and favorites.
func (s *RecipeService) DeleteRecipe(ctx context.Context, actor *models.User, id uuid.UUID) error {
	recipe, err := s.stores.Recipes.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.Authorize(actor, recipe.AuthorID, "delete this recipe"); err != nil {
		return err
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context, tx store.Stores) error {
		if err := tx.Ratings.DeleteByRecipe(ctx, id); err != nil {
			return err
		}
		if err := tx.Favorites.DeleteByRecipe(ctx, id); err != nil {
			return err
		}
		return tx.Recipes.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Info().
		Str("recipe_id", id.String()).
		Str("actor_id", actor.ID.String()).
		Msg("recipe deleted")
	return nil
}

// GetRecipe returns a recipe if viewer may see it. Unpublished recipes of
// other users are reported as missing.
func (s *RecipeService) GetRecipe(ctx context.Context, viewer *models.User, id uuid.UUID) (*models.Recipe, error) {
	recipe, err := visibleRecipe(ctx, s.stores.Recipes, viewer, id)
	if err != nil {
		return nil, err
	}
	if err := decorate(ctx, s.stores, []*models.Recipe{recipe}); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *RecipeService) ApproveRecipe(ctx context.Context, actor *models.User, id uuid.UUID) (*models.Recipe, error) {
	return s.moderate(ctx, actor, id, models.StatusApproved)
}

func (s *RecipeService) RejectRecipe(ctx context.Context, actor *models.User, id uuid.UUID) (*models.Recipe, error) {
	return s.moderate(ctx, actor, id, models.StatusRejected)
}

// moderate sets the status unconditionally; any state may move to any other.
func (s *RecipeService) moderate(ctx context.Context, actor *models.User, id uuid.UUID, status models.RecipeStatus) (*models.Recipe, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if err := s.stores.Recipes.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	metrics.RecordModeration(strings.ToLower(string(status)))
	logging.FromContext(ctx).Info().
		Str("recipe_id", id.String()).
		Str("admin_id", actor.ID.String()).
		Str("status", string(status)).
		Msg("recipe moderated")

	return s.load(ctx, id)
}

func (s *RecipeService) ListRecipes(ctx context.Context, p store.PageRequest) (store.Page[models.Recipe], error) {
	return listRecipes(ctx, s.stores, store.ApprovedLatest(), p)
}

// SearchRecipes matches the keyword against title and description.
func (s *RecipeService) SearchRecipes(ctx context.Context, keyword string, p store.PageRequest) (store.Page[models.Recipe], error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return store.Page[models.Recipe]{}, apperr.InvalidInput("search keyword is required")
	}
	return listRecipes(ctx, s.stores, store.ApprovedSearch(keyword), p)
}

// ListByCategories returns recipes in at least one of the categories.
func (s *RecipeService) ListByCategories(ctx context.Context, categories []string, p store.PageRequest) (store.Page[models.Recipe], error) {
	parsed, err := models.ParseCategories(nonBlank(categories))
	if err != nil {
		return store.Page[models.Recipe]{}, err
	}
	if len(parsed) == 0 {
		return store.Page[models.Recipe]{}, apperr.InvalidInput("at least one category is required")
	}
	return listRecipes(ctx, s.stores, store.ApprovedByCategories(parsed), p)
}

// ListByDietaryTags returns recipes carrying at least one of the tags.
func (s *RecipeService) ListByDietaryTags(ctx context.Context, tags []string, p store.PageRequest) (store.Page[models.Recipe], error) {
	tags = nonBlank(tags)
	if len(tags) == 0 {
		return store.Page[models.Recipe]{}, apperr.InvalidInput("at least one dietary tag is required")
	}
	return listRecipes(ctx, s.stores, store.ApprovedByDietaryTags(tags), p)
}

// ListByCalorieRange returns recipes whose calories fall in [min, max].
func (s *RecipeService) ListByCalorieRange(ctx context.Context, minCalories, maxCalories int, p store.PageRequest) (store.Page[models.Recipe], error) {
	if minCalories < 0 {
		return store.Page[models.Recipe]{}, apperr.InvalidInput("minimum calories must not be negative")
	}
	if minCalories > maxCalories {
		return store.Page[models.Recipe]{}, apperr.InvalidInput("minimum calories must not exceed maximum calories")
	}
	return listRecipes(ctx, s.stores, store.ApprovedByCalorieRange(minCalories, maxCalories), p)
}

// ListQuick returns recipes ready within maxTotalTime minutes.
func (s *RecipeService) ListQuick(ctx context.Context, maxTotalTime int, p store.PageRequest) (store.Page[models.Recipe], error) {
	if maxTotalTime <= 0 {
		return store.Page[models.Recipe]{}, apperr.InvalidInput("maximum time must be positive")
	}
	return listRecipes(ctx, s.stores, store.ApprovedByMaxTotalTime(maxTotalTime), p)
}

func (s *RecipeService) ListByDifficulty(ctx context.Context, difficulty string, p store.PageRequest) (store.Page[models.Recipe], error) {
	d, err := models.ParseDifficulty(difficulty)
	if err != nil {
		return store.Page[models.Recipe]{}, err
	}
	if d == "" {
		return store.Page[models.Recipe]{}, apperr.InvalidInput("difficulty is required")
	}
	return listRecipes(ctx, s.stores, store.ApprovedByDifficulty(d), p)
}

func (s *RecipeService) ListTopRated(ctx context.Context, p store.PageRequest) (store.Page[models.Recipe], error) {
	return listRecipes(ctx, s.stores, store.ApprovedTopRated(), p)
}

func (s *RecipeService) ListLatest(ctx context.Context, p store.PageRequest) (store.Page[models.Recipe], error) {
	return listRecipes(ctx, s.stores, store.ApprovedLatest(), p)
}

func (s *RecipeService) ListMostFavorited(ctx context.Context, p store.PageRequest) (store.Page[models.Recipe], error) {
	return listRecipes(ctx, s.stores, store.ApprovedMostFavorited(), p)
}

// ListMine returns every recipe of actor, whatever its status.
func (s *RecipeService) ListMine(ctx context.Context, actor *models.User, p store.PageRequest) (store.Page[models.Recipe], error) {
	if actor == nil {
		return store.Page[models.Recipe]{}, apperr.Unauthenticated("authentication required")
	}
	return listRecipes(ctx, s.stores, store.ByAuthor(actor.ID), p)
}

// ListByUser returns the published recipes of another user.
func (s *RecipeService) ListByUser(ctx context.Context, userID uuid.UUID, p store.PageRequest) (store.Page[models.Recipe], error) {
	if _, err := s.stores.Users.Get(ctx, userID); err != nil {
		return store.Page[models.Recipe]{}, err
	}
	return listRecipes(ctx, s.stores, store.ApprovedByAuthor(userID), p)
}

// ListPending is the moderation queue.
func (s *RecipeService) ListPending(ctx context.Context, actor *models.User, p store.PageRequest) (store.Page[models.Recipe], error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return store.Page[models.Recipe]{}, err
	}
	return listRecipes(ctx, s.stores, store.PendingQueue(), p)
}

func (s *RecipeService) load(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.stores.Recipes.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := decorate(ctx, s.stores, []*models.Recipe{recipe}); err != nil {
		return nil, err
	}
	return recipe, nil
}

// visibleRecipe loads a recipe and hides it as NotFound when viewer may not
// read it.
func visibleRecipe(ctx context.Context, recipes store.RecipeStore, viewer *models.User, id uuid.UUID) (*models.Recipe, error) {
	recipe, err := recipes.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanView(viewer, recipe) {
		return nil, apperr.NotFound("Recipe not found with id: %s", id)
	}
	return recipe, nil
}

// listRecipes validates the page request, runs the query and fills in the
// derived rating and favorite figures with one aggregate query each.
func listRecipes(ctx context.Context, stores store.Stores, q store.RecipeQuery, p store.PageRequest) (store.Page[models.Recipe], error) {
	if err := p.Validate(); err != nil {
		return store.Page[models.Recipe]{}, err
	}
	page, err := stores.Recipes.List(ctx, q, p)
	if err != nil {
		return page, err
	}
	if err := decoratePage(ctx, stores, &page); err != nil {
		return page, err
	}
	return page, nil
}

func decoratePage(ctx context.Context, stores store.Stores, page *store.Page[models.Recipe]) error {
	ptrs := make([]*models.Recipe, len(page.Items))
	for i := range page.Items {
		ptrs[i] = &page.Items[i]
	}
	return decorate(ctx, stores, ptrs)
}

func decorate(ctx context.Context, stores store.Stores, recipes []*models.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(recipes))
	for i, r := range recipes {
		ids[i] = r.ID
	}

	stats, err := stores.Ratings.Stats(ctx, ids...)
	if err != nil {
		return err
	}
	counts, err := stores.Favorites.Counts(ctx, ids...)
	if err != nil {
		return err
	}
	for _, r := range recipes {
		r.AverageRating = stats[r.ID].AverageRating
		r.TotalRatings = stats[r.ID].TotalRatings
		r.FavoriteCount = counts[r.ID]
	}
	return nil
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
