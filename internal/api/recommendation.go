package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/healthyrecipe/backend/internal/middleware"
	"github.com/pageza/healthyrecipe/backend/internal/models"
	"github.com/pageza/healthyrecipe/backend/internal/service"
	"github.com/pageza/healthyrecipe/backend/internal/store"
	"github.com/pageza/healthyrecipe/backend/internal/types"
)

type RecommendationHandler struct {
	recommendations service.IRecommendationService
	auth            middleware.Authenticator
}

func NewRecommendationHandler(recommendations service.IRecommendationService, auth middleware.Authenticator) *RecommendationHandler {
	return &RecommendationHandler{recommendations: recommendations, auth: auth}
}

func (h *RecommendationHandler) RegisterRoutes(router *gin.RouterGroup) {
	recs := router.Group("/recommendations")
	{
		recs.GET("/personalized", middleware.AuthMiddleware(h.auth), h.Personalized)
		recs.GET("/fitness-goal", middleware.OptionalAuth(h.auth), h.ByFitnessGoal)
		recs.GET("/quick", h.Quick)
		recs.GET("/healthy", h.Healthy)
		recs.GET("/beginner", h.Beginner)
		recs.GET("/allergy-free", middleware.OptionalAuth(h.auth), h.AllergyFree)
		recs.GET("/similar/:recipe_id", middleware.OptionalAuth(h.auth), h.Similar)
	}
}

type personalizedResponse struct {
	types.PageResponse[types.RecipeResponse]
	Strategy service.Strategy `json:"strategy"`
}

// Personalized uses the caller's dietary preferences, then their calorie
// target, then falls back to top rated recipes.
func (h *RecommendationHandler) Personalized(c *gin.Context) {
	p, err := pageRequest(c)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	page, strategy, err := h.recommendations.Personalized(c.Request.Context(), middleware.Actor(c), p)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, personalizedResponse{
		PageResponse: types.NewPageResponse(page, types.NewRecipeResponse),
		Strategy:     strategy,
	})
}

func (h *RecommendationHandler) ByFitnessGoal(c *gin.Context) {
	actor := middleware.Actor(c)
	listRecipePage(c, func(ctx context.Context, p store.PageRequest) (store.Page[models.Recipe], error) {
		return h.recommendations.ByFitnessGoal(ctx, actor, c.Query("goal"), p)
	})
}

func (h *RecommendationHandler) Quick(c *gin.Context) {
	listRecipePage(c, h.recommendations.Quick)
}

func (h *RecommendationHandler) Healthy(c *gin.Context) {
	listRecipePage(c, h.recommendations.Healthy)
}

func (h *RecommendationHandler) Beginner(c *gin.Context) {
	listRecipePage(c, h.recommendations.Beginner)
}

func (h *RecommendationHandler) AllergyFree(c *gin.Context) {
	actor := middleware.Actor(c)
	allergies := listQuery(c, "allergies")
	listRecipePage(c, func(ctx context.Context, p store.PageRequest) (store.Page[models.Recipe], error) {
		return h.recommendations.AllergyFree(ctx, actor, allergies, p)
	})
}

func (h *RecommendationHandler) Similar(c *gin.Context) {
	recipeID, err := uuidParam(c, "recipe_id")
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	actor := middleware.Actor(c)
	listRecipePage(c, func(ctx context.Context, p store.PageRequest) (store.Page[models.Recipe], error) {
		return h.recommendations.Similar(ctx, actor, recipeID, p)
	})
}
