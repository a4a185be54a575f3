package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/healthyrecipe/backend/internal/apperr"
	"github.com/pageza/healthyrecipe/backend/internal/middleware"
	"github.com/pageza/healthyrecipe/backend/internal/models"
	"github.com/pageza/healthyrecipe/backend/internal/service"
	"github.com/pageza/healthyrecipe/backend/internal/store"
	"github.com/pageza/healthyrecipe/backend/internal/types"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "HealthyRecipe API is running",
		"version": "v1.0.0",
	})
}

// Services bundles the domain services the handlers call.
type Services struct {
	Auth            service.IAuthService
	Profiles        service.IProfileService
	Recipes         service.IRecipeService
	Ratings         service.IRatingService
	Favorites       service.IFavoriteService
	Recommendations service.IRecommendationService
	Admin           service.IAdminService
}

// Limiters holds the per-user rate limiters. Nil limiters disable limiting.
type Limiters struct {
	Submission *middleware.RateLimiter
	Rating     *middleware.RateLimiter
}

// RegisterRoutes registers all API routes on the /api/v1 group
func RegisterRoutes(v1 *gin.RouterGroup, svc Services, limiters Limiters) {
	if limiters.Submission == nil {
		limiters.Submission = middleware.NewSubmissionRateLimiter(nil, 0)
	}
	if limiters.Rating == nil {
		limiters.Rating = middleware.NewRatingRateLimiter(nil, 0)
	}

	NewAuthHandler(svc.Auth).RegisterRoutes(v1)
	NewRecipeHandler(svc.Recipes, svc.Auth, limiters.Submission).RegisterRoutes(v1)
	NewRatingHandler(svc.Ratings, svc.Auth, limiters.Rating).RegisterRoutes(v1)
	NewFavoriteHandler(svc.Favorites, svc.Auth).RegisterRoutes(v1)
	NewRecommendationHandler(svc.Recommendations, svc.Auth).RegisterRoutes(v1)
	NewProfileHandler(svc.Profiles, svc.Recipes, svc.Auth).RegisterRoutes(v1)
	NewAdminHandler(svc.Admin, svc.Recipes, svc.Auth).RegisterRoutes(v1)
	RegisterRateLimitRoutes(v1, svc.Auth, limiters)
}

// RegisterRateLimitRoutes registers endpoints for checking rate limit status
func RegisterRateLimitRoutes(router *gin.RouterGroup, auth middleware.Authenticator, limiters Limiters) {
	rateLimits := router.Group("/rate-limits")
	rateLimits.Use(middleware.AuthMiddleware(auth))
	{
		rateLimits.GET("/submissions", rateLimitStatus(limiters.Submission))
		rateLimits.GET("/ratings", rateLimitStatus(limiters.Rating))
	}
}

func rateLimitStatus(limiter *middleware.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Enabled() {
			c.JSON(http.StatusOK, gin.H{"enabled": false})
			return
		}

		actor := middleware.Actor(c)
		remaining, resetTime, err := limiter.GetRemainingRequests(c.Request.Context(), actor.ID.String())
		if err != nil {
			middleware.AbortWithError(c, apperr.Internal(err, "failed to check rate limit"))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"enabled":    true,
			"limit":      limiter.Limit(),
			"remaining":  remaining,
			"reset_time": resetTime.Unix(),
			"window":     limiter.Window().String(),
		})
	}
}

// pageRequest reads the zero based page and size query parameters.
func pageRequest(c *gin.Context) (store.PageRequest, error) {
	page, err := intQuery(c, "page", 0)
	if err != nil {
		return store.PageRequest{}, err
	}
	size, err := intQuery(c, "size", store.DefaultPageSize)
	if err != nil {
		return store.PageRequest{}, err
	}
	p := store.NewPageRequest(page, size)
	if err := p.Validate(); err != nil {
		return store.PageRequest{}, err
	}
	return p, nil
}

func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.InvalidInput("%s must be an integer", name)
	}
	return v, nil
}

// requiredIntQuery is intQuery without a default.
func requiredIntQuery(c *gin.Context, name string) (int, error) {
	if strings.TrimSpace(c.Query(name)) == "" {
		return 0, apperr.InvalidInput("%s is required", name)
	}
	return intQuery(c, name, 0)
}

// listQuery accepts both repeated parameters and comma separated values.
func listQuery(c *gin.Context, name string) []string {
	var out []string
	for _, raw := range c.QueryArray(name) {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperr.InvalidInput("invalid %s", name)
	}
	return id, nil
}

// bindJSON binds the request body and reports binding failures as invalid
// input.
func bindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return apperr.InvalidInput("invalid request body: %s", err.Error())
	}
	return nil
}

type recipeLister func(ctx context.Context, p store.PageRequest) (store.Page[models.Recipe], error)

// listRecipePage answers a paginated recipe listing.
func listRecipePage(c *gin.Context, list recipeLister) {
	p, err := pageRequest(c)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	page, err := list(c.Request.Context(), p)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewPageResponse(page, types.NewRecipeResponse))
}
