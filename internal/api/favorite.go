package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/healthyrecipe/backend/internal/middleware"
	"github.com/pageza/healthyrecipe/backend/internal/models"
	"github.com/pageza/healthyrecipe/backend/internal/service"
	"github.com/pageza/healthyrecipe/backend/internal/store"
)

type FavoriteHandler struct {
	favoriteService service.IFavoriteService
	auth            middleware.Authenticator
}

func NewFavoriteHandler(favoriteService service.IFavoriteService, auth middleware.Authenticator) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService, auth: auth}
}

func (h *FavoriteHandler) RegisterRoutes(router *gin.RouterGroup) {
	favorites := router.Group("/favorites")
	{
		favorites.GET("/recipe/:recipe_id/count", h.Count)

		authed := favorites.Group("")
		authed.Use(middleware.AuthMiddleware(h.auth))
		authed.POST("/recipe/:recipe_id", h.AddFavorite)
		authed.DELETE("/recipe/:recipe_id", h.RemoveFavorite)
		authed.GET("/recipe/:recipe_id/status", h.Status)
		authed.GET("/mine", h.ListMine)
	}
}

func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	recipeID, err := uuidParam(c, "recipe_id")
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	if err := h.favoriteService.AddFavorite(c.Request.Context(), middleware.Actor(c), recipeID); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recipe_id": recipeID, "favorited": true})
}

func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	recipeID, err := uuidParam(c, "recipe_id")
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	if err := h.favoriteService.RemoveFavorite(c.Request.Context(), middleware.Actor(c), recipeID); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *FavoriteHandler) Status(c *gin.Context) {
	recipeID, err := uuidParam(c, "recipe_id")
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	favorited, err := h.favoriteService.IsFavorited(c.Request.Context(), middleware.Actor(c), recipeID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe_id": recipeID, "favorited": favorited})
}

func (h *FavoriteHandler) Count(c *gin.Context) {
	recipeID, err := uuidParam(c, "recipe_id")
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	count, err := h.favoriteService.CountForRecipe(c.Request.Context(), recipeID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe_id": recipeID, "count": count})
}

func (h *FavoriteHandler) ListMine(c *gin.Context) {
	actor := middleware.Actor(c)
	listRecipePage(c, func(ctx context.Context, p store.PageRequest) (store.Page[models.Recipe], error) {
		return h.favoriteService.ListFavorites(ctx, actor, p)
	})
}
