package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/pageza/healthyrecipe/backend/internal/apperr"
	"github.com/pageza/healthyrecipe/backend/internal/models"
	"github.com/pageza/healthyrecipe/backend/internal/store"
)

const (
	// calorieWindow is the half width of the band around a calorie target.
	calorieWindow = 200
	// quickRecipeMinutes is the total time limit of a quick recipe.
	quickRecipeMinutes = 30
)

// Strategy names the criterion that selected a personalized result.
type Strategy string

const (
	StrategyDietaryPreferences Strategy = "dietary_preferences"
	StrategyCalorieTarget      Strategy = "calorie_target"
	StrategyTopRated           Strategy = "top_rated"
)

var preferenceTags = map[models.DietaryPreference]string{
	models.DietVegetarian:    "vegetarian",
	models.DietVegan:         "vegan",
	models.DietGlutenFree:    "gluten-free",
	models.DietKeto:          "keto",
	models.DietPaleo:         "paleo",
	models.DietLowCarb:       "low-carb",
	models.DietLowFat:        "low-fat",
	models.DietDairyFree:     "dairy-free",
	models.DietMediterranean: "mediterranean",
}

var fitnessGoalTags = map[models.FitnessGoal][]string{
	models.GoalWeightLoss:     {"low-calorie", "low-fat", "high-fiber"},
	models.GoalWeightGain:     {"high-calorie", "high-protein"},
	models.GoalMuscleGain:     {"high-protein", "post-workout"},
	models.GoalMaintainWeight: {"balanced", "moderate-calorie"},
	models.GoalGeneralHealth:  {"healthy", "nutritious", "whole-foods"},
}

var healthyTags = []string{"healthy", "nutritious", "low-sodium", "whole-foods", "clean-eating"}

var allergyTags = map[string]string{
	"gluten": "gluten-free",
	"dairy":  "dairy-free",
	"nuts":   "nut-free",
}

// PreferenceTags maps declared dietary preferences onto recipe tags.
func PreferenceTags(prefs []string) []string {
	tags := make([]string, 0, len(prefs))
	for _, p := range prefs {
		if tag, ok := preferenceTags[models.DietaryPreference(p)]; ok {
			tags = append(tags, tag)
		}
	}
	return tags
}

// AllergyTags maps allergy names onto the tags of recipes free of them.
// Unknown allergies are ignored.
func AllergyTags(allergies []string) []string {
	tags := make([]string, 0, len(allergies))
	for _, a := range allergies {
		if tag, ok := allergyTags[strings.ToLower(strings.TrimSpace(a))]; ok {
			tags = append(tags, tag)
		}
	}
	return tags
}

// ResolvePersonalized picks the query for a user's personalized feed. The
// first criterion the user has set wins and criteria are never combined:
// dietary preferences, then daily calorie target, then top rated.
func ResolvePersonalized(user *models.User) (store.RecipeQuery, Strategy) {
	if user != nil {
		if tags := PreferenceTags(user.DietaryPreferences); len(tags) > 0 {
			return store.ApprovedByDietaryTags(tags), StrategyDietaryPreferences
		}
		if target := user.DailyCalorieTarget; target != nil {
			return store.ApprovedByCalorieRange(*target-calorieWindow, *target+calorieWindow), StrategyCalorieTarget
		}
	}
	return store.ApprovedTopRated(), StrategyTopRated
}

// RecommendationService turns user profiles and fixed tag tables into recipe
// queries. Every result is restricted to approved recipes.
type RecommendationService struct {
	stores store.Stores
}

var _ IRecommendationService = (*RecommendationService)(nil)

func NewRecommendationService(stores store.Stores) *RecommendationService {
	return &RecommendationService{stores: stores}
}

func (s *RecommendationService) Personalized(ctx context.Context, actor *models.User, p store.PageRequest) (store.Page[models.Recipe], Strategy, error) {
	if actor == nil {
		return store.Page[models.Recipe]{}, "", apperr.Unauthenticated("authentication required")
	}
	q, strategy := ResolvePersonalized(actor)
	page, err := listRecipes(ctx, s.stores, q, p)
	return page, strategy, err
}

// ByFitnessGoal recommends recipes tagged for the goal, falling back to top
// rated when none are. A blank goal uses the one stored on actor.
func (s *RecommendationService) ByFitnessGoal(ctx context.Context, actor *models.User, goal string, p store.PageRequest) (store.Page[models.Recipe], error) {
	parsed, err := models.ParseFitnessGoal(goal)
	if err != nil {
		return store.Page[models.Recipe]{}, err
	}
	if parsed == "" && actor != nil {
		parsed = actor.FitnessGoal
	}
	if parsed == "" {
		return store.Page[models.Recipe]{}, apperr.InvalidInput("fitness goal is required")
	}
	return s.tagsOrTopRated(ctx, fitnessGoalTags[parsed], p)
}

func (s *RecommendationService) Quick(ctx context.Context, p store.PageRequest) (store.Page[models.Recipe], error) {
	return listRecipes(ctx, s.stores, store.ApprovedByMaxTotalTime(quickRecipeMinutes), p)
}

func (s *RecommendationService) Healthy(ctx context.Context, p store.PageRequest) (store.Page[models.Recipe], error) {
	return listRecipes(ctx, s.stores, store.ApprovedByDietaryTags(healthyTags), p)
}

func (s *RecommendationService) Beginner(ctx context.Context, p store.PageRequest) (store.Page[models.Recipe], error) {
	return listRecipes(ctx, s.stores, store.ApprovedByDifficulty(models.DifficultyEasy), p)
}

// AllergyFree recommends recipes tagged free of the given allergies. Without
// explicit allergies the ones stored on actor are used; when nothing maps to
// a known tag the result is top rated.
func (s *RecommendationService) AllergyFree(ctx context.Context, actor *models.User, allergies []string, p store.PageRequest) (store.Page[models.Recipe], error) {
	allergies = nonBlank(allergies)
	if len(allergies) == 0 && actor != nil {
		allergies = actor.Allergies
	}
	tags := AllergyTags(allergies)
	if len(tags) == 0 {
		return listRecipes(ctx, s.stores, store.ApprovedTopRated(), p)
	}
	return listRecipes(ctx, s.stores, store.ApprovedByDietaryTags(tags), p)
}

// Similar recommends recipes sharing a category with the target, else its
// difficulty, else the latest ones. The target itself is not excluded.
func (s *RecommendationService) Similar(ctx context.Context, viewer *models.User, recipeID uuid.UUID, p store.PageRequest) (store.Page[models.Recipe], error) {
	target, err := visibleRecipe(ctx, s.stores.Recipes, viewer, recipeID)
	if err != nil {
		return store.Page[models.Recipe]{}, err
	}

	var q store.RecipeQuery
	switch categories := target.CategoryList(); {
	case len(categories) > 0:
		q = store.ApprovedByCategories(categories)
	case target.Difficulty != "":
		q = store.ApprovedByDifficulty(target.Difficulty)
	default:
		q = store.ApprovedLatest()
	}
	return listRecipes(ctx, s.stores, q, p)
}

func (s *RecommendationService) tagsOrTopRated(ctx context.Context, tags []string, p store.PageRequest) (store.Page[models.Recipe], error) {
	page, err := listRecipes(ctx, s.stores, store.ApprovedByDietaryTags(tags), p)
	if err != nil || page.Total > 0 {
		return page, err
	}
	return listRecipes(ctx, s.stores, store.ApprovedTopRated(), p)
}
