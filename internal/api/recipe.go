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

type RecipeHandler struct {
	recipeService service.IRecipeService
	auth          middleware.Authenticator
	submissions   *middleware.RateLimiter
}

func NewRecipeHandler(recipeService service.IRecipeService, auth middleware.Authenticator, submissions *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		auth:          auth,
		submissions:   submissions,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/search", h.SearchRecipes)
		recipes.GET("/category", h.ListByCategories)
		recipes.GET("/dietary-tags", h.ListByDietaryTags)
		recipes.GET("/calories", h.ListByCalorieRange)
		recipes.GET("/quick", h.ListQuick)
		recipes.GET("/difficulty", h.ListByDifficulty)
		recipes.GET("/top-rated", h.ListTopRated)
		recipes.GET("/latest", h.ListLatest)
		recipes.GET("/most-favorited", h.ListMostFavorited)
		recipes.GET("/:id", middleware.OptionalAuth(h.auth), h.GetRecipe)
		recipes.POST("", middleware.AuthMiddleware(h.auth), h.submissions.RateLimitMiddleware(), h.CreateRecipe)
		recipes.PUT("/:id", middleware.AuthMiddleware(h.auth), h.UpdateRecipe)
		recipes.DELETE("/:id", middleware.AuthMiddleware(h.auth), h.DeleteRecipe)
	}
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewRecipeResponse(*recipe))
}

// CreateRecipe submits a recipe. It starts out pending unless the author is
// an administrator.
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.RecipeRequest
	if err := bindJSON(c, &req); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), middleware.Actor(c), &req)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recipe": types.NewRecipeResponse(*recipe)})
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	var req types.RecipeRequest
	if err := bindJSON(c, &req); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), middleware.Actor(c), id, &req)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": types.NewRecipeResponse(*recipe)})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), middleware.Actor(c), id); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	listRecipePage(c, h.recipeService.ListRecipes)
}

func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	listRecipePage(c, func(ctx context.Context, p store.PageRequest) (store.Page[models.Recipe], error) {
		return h.recipeService.SearchRecipes(ctx, c.Query("q"), p)
	})
}

func (h *RecipeHandler) ListByCategories(c *gin.Context) {
	categories := listQuery(c, "categories")
	listRecipePage(c, func(ctx context.Context, p store.PageRequest) (store.Page[models.Recipe], error) {
		return h.recipeService.ListByCategories(ctx, categories, p)
	})
}

func (h *RecipeHandler) ListByDietaryTags(c *gin.Context) {
	tags := listQuery(c, "tags")
	listRecipePage(c, func(ctx context.Context, p store.PageRequest) (store.Page[models.Recipe], error) {
		return h.recipeService.ListByDietaryTags(ctx, tags, p)
	})
}

func (h *RecipeHandler) ListByCalorieRange(c *gin.Context) {
	minCalories, err := requiredIntQuery(c, "min")
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	maxCalories, err := requiredIntQuery(c, "max")
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	listRecipePage(c, func(ctx context.Context, p store.PageRequest) (store.Page[models.Recipe], error) {
		return h.recipeService.ListByCalorieRange(ctx, minCalories, maxCalories, p)
	})
}

func (h *RecipeHandler) ListQuick(c *gin.Context) {
	maxTime, err := intQuery(c, "max_time", 30)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	listRecipePage(c, func(ctx context.Context, p store.PageRequest) (store.Page[models.Recipe], error) {
		return h.recipeService.ListQuick(ctx, maxTime, p)
	})
}

func (h *RecipeHandler) ListByDifficulty(c *gin.Context) {
	listRecipePage(c, func(ctx context.Context, p store.PageRequest) (store.Page[models.Recipe], error) {
		return h.recipeService.ListByDifficulty(ctx, c.Query("level"), p)
	})
}

func (h *RecipeHandler) ListTopRated(c *gin.Context) {
	listRecipePage(c, h.recipeService.ListTopRated)
}

func (h *RecipeHandler) ListLatest(c *gin.Context) {
	listRecipePage(c, h.recipeService.ListLatest)
}

func (h *RecipeHandler) ListMostFavorited(c *gin.Context) {
	listRecipePage(c, h.recipeService.ListMostFavorited)
}
