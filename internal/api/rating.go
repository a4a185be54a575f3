package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/healthyrecipe/backend/internal/middleware"
	"github.com/pageza/healthyrecipe/backend/internal/service"
	"github.com/pageza/healthyrecipe/backend/internal/types"
)

type RatingHandler struct {
	ratingService service.IRatingService
	auth          middleware.Authenticator
	limiter       *middleware.RateLimiter
}

func NewRatingHandler(ratingService service.IRatingService, auth middleware.Authenticator, limiter *middleware.RateLimiter) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
		auth:          auth,
		limiter:       limiter,
	}
}

func (h *RatingHandler) RegisterRoutes(router *gin.RouterGroup) {
	ratings := router.Group("/ratings")
	{
		ratings.GET("/recipe/:recipe_id", middleware.OptionalAuth(h.auth), h.ListForRecipe)
		ratings.GET("/recipe/:recipe_id/average", h.Average)

		authed := ratings.Group("")
		authed.Use(middleware.AuthMiddleware(h.auth))
		authed.POST("/recipe/:recipe_id", h.limiter.RateLimitMiddleware(), h.Rate)
		authed.GET("/recipe/:recipe_id/mine", h.GetMine)
		authed.GET("/mine", h.ListMine)
		authed.DELETE("/:id", h.DeleteRating)
	}
}

// Rate records the caller's rating, replacing an earlier one for the same
// recipe.
func (h *RatingHandler) Rate(c *gin.Context) {
	recipeID, err := uuidParam(c, "recipe_id")
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	var req types.RateRequest
	if err := bindJSON(c, &req); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	rating, err := h.ratingService.Rate(c.Request.Context(), middleware.Actor(c), recipeID, req.Rating, req.Comment)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewRatingResponse(*rating))
}

func (h *RatingHandler) ListForRecipe(c *gin.Context) {
	recipeID, err := uuidParam(c, "recipe_id")
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	p, err := pageRequest(c)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	page, err := h.ratingService.ListForRecipe(c.Request.Context(), middleware.Actor(c), recipeID, p)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewPageResponse(page, types.NewRatingResponse))
}

func (h *RatingHandler) Average(c *gin.Context) {
	recipeID, err := uuidParam(c, "recipe_id")
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	stats, err := h.ratingService.Stats(c.Request.Context(), recipeID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipe_id":      recipeID,
		"average_rating": stats.AverageRating,
		"total_ratings":  stats.TotalRatings,
	})
}

func (h *RatingHandler) GetMine(c *gin.Context) {
	recipeID, err := uuidParam(c, "recipe_id")
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	rating, err := h.ratingService.GetMine(c.Request.Context(), middleware.Actor(c), recipeID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewRatingResponse(*rating))
}

func (h *RatingHandler) ListMine(c *gin.Context) {
	p, err := pageRequest(c)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	page, err := h.ratingService.ListMine(c.Request.Context(), middleware.Actor(c), p)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewPageResponse(page, types.NewRatingResponse))
}

func (h *RatingHandler) DeleteRating(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	if err := h.ratingService.DeleteRating(c.Request.Context(), middleware.Actor(c), id); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
