package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/healthyrecipe/backend/internal/middleware"
	"github.com/pageza/healthyrecipe/backend/internal/models"
	"github.com/pageza/healthyrecipe/backend/internal/service"
	"github.com/pageza/healthyrecipe/backend/internal/store"
	"github.com/pageza/healthyrecipe/backend/internal/types"
)

// AdminHandler serves moderation and account administration. Every route
// requires an authenticated administrator; the services enforce the role.
type AdminHandler struct {
	adminService  service.IAdminService
	recipeService service.IRecipeService
	auth          middleware.Authenticator
}

func NewAdminHandler(adminService service.IAdminService, recipeService service.IRecipeService, auth middleware.Authenticator) *AdminHandler {
	return &AdminHandler{
		adminService:  adminService,
		recipeService: recipeService,
		auth:          auth,
	}
}

func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(h.auth))
	{
		admin.GET("/recipes/pending", h.ListPending)
		admin.PUT("/recipes/:id/approve", h.Approve)
		admin.PUT("/recipes/:id/reject", h.Reject)
		admin.GET("/users", h.ListUsers)
		admin.PUT("/users/:id/status", h.SetUserStatus)
		admin.PUT("/users/:id/role", h.SetUserRole)
	}
}

func (h *AdminHandler) ListPending(c *gin.Context) {
	actor := middleware.Actor(c)
	listRecipePage(c, func(ctx context.Context, p store.PageRequest) (store.Page[models.Recipe], error) {
		return h.recipeService.ListPending(ctx, actor, p)
	})
}

func (h *AdminHandler) Approve(c *gin.Context) {
	h.moderate(c, h.recipeService.ApproveRecipe)
}

func (h *AdminHandler) Reject(c *gin.Context) {
	h.moderate(c, h.recipeService.RejectRecipe)
}

func (h *AdminHandler) moderate(c *gin.Context, transition func(context.Context, *models.User, uuid.UUID) (*models.Recipe, error)) {
	id, err := uuidParam(c, "id")
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	recipe, err := transition(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": types.NewRecipeResponse(*recipe)})
}

// ListUsers filters by the optional role, status and name query parameters.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	p, err := pageRequest(c)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	q := store.UserQuery{Name: strings.TrimSpace(c.Query("name"))}
	if raw := c.Query("role"); raw != "" {
		if q.Role, err = models.ParseRole(raw); err != nil {
			middleware.AbortWithError(c, err)
			return
		}
	}
	if raw := c.Query("status"); raw != "" {
		if q.Status, err = models.ParseAccountStatus(raw); err != nil {
			middleware.AbortWithError(c, err)
			return
		}
	}

	page, err := h.adminService.ListUsers(c.Request.Context(), middleware.Actor(c), q, p)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewPageResponse(page, types.NewUserResponse))
}

func (h *AdminHandler) SetUserStatus(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	var req types.UpdateUserStatusRequest
	if err := bindJSON(c, &req); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	user, err := h.adminService.SetUserStatus(c.Request.Context(), middleware.Actor(c), id, req.Status)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewUserResponse(*user))
}

func (h *AdminHandler) SetUserRole(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	var req types.UpdateUserRoleRequest
	if err := bindJSON(c, &req); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	user, err := h.adminService.SetUserRole(c.Request.Context(), middleware.Actor(c), id, req.Role)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewUserResponse(*user))
}
