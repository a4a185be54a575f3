package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/healthyrecipe/backend/internal/middleware"
	"github.com/pageza/healthyrecipe/backend/internal/service"
	"github.com/pageza/healthyrecipe/backend/internal/types"
)

type AuthHandler struct {
	authService service.IAuthService
}

func NewAuthHandler(authService service.IAuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}
}

// Register creates an account and returns a token for it
func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, types.AuthResponse{Token: token, User: types.NewUserResponse(*user)})
}

// Login authenticates by username or email
func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.AuthResponse{Token: token, User: types.NewUserResponse(*user)})
}
