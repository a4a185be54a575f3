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

type ProfileHandler struct {
	profileService service.IProfileService
	recipeService  service.IRecipeService
	auth           middleware.Authenticator
}

func NewProfileHandler(profileService service.IProfileService, recipeService service.IRecipeService, auth middleware.Authenticator) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		recipeService:  recipeService,
		auth:           auth,
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	{
		profile.GET("/users/:id", h.GetPublicProfile)
		profile.GET("/users/:id/recipes", h.ListUserRecipes)

		authed := profile.Group("")
		authed.Use(middleware.AuthMiddleware(h.auth))
		authed.GET("", h.GetProfile)
		authed.PUT("", h.UpdateProfile)
		authed.PUT("/password", h.ChangePassword)
		authed.GET("/recipes", h.ListMyRecipes)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	user, err := h.profileService.GetProfile(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewUserResponse(*user))
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req types.UpdateProfileRequest
	if err := bindJSON(c, &req); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	user, err := h.profileService.UpdateProfile(c.Request.Context(), middleware.Actor(c), &req)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewUserResponse(*user))
}

func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	var req types.ChangePasswordRequest
	if err := bindJSON(c, &req); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	if err := h.profileService.ChangePassword(c.Request.Context(), middleware.Actor(c), req.CurrentPassword, req.NewPassword); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// ListMyRecipes lists the caller's own recipes in every moderation state.
func (h *ProfileHandler) ListMyRecipes(c *gin.Context) {
	actor := middleware.Actor(c)
	listRecipePage(c, func(ctx context.Context, p store.PageRequest) (store.Page[models.Recipe], error) {
		return h.recipeService.ListMine(ctx, actor, p)
	})
}

func (h *ProfileHandler) GetPublicProfile(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	user, err := h.profileService.GetPublicProfile(c.Request.Context(), id)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewPublicProfile(*user))
}

func (h *ProfileHandler) ListUserRecipes(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	listRecipePage(c, func(ctx context.Context, p store.PageRequest) (store.Page[models.Recipe], error) {
		return h.recipeService.ListByUser(ctx, id, p)
	})
}
