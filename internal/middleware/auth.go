package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/healthyrecipe/backend/internal/apperr"
	"github.com/pageza/healthyrecipe/backend/internal/logging"
	"github.com/pageza/healthyrecipe/backend/internal/models"
	"github.com/pageza/healthyrecipe/backend/internal/types"
)

const (
	userIDKey   = "user_id"
	usernameKey = "username"
	actorKey    = "actor"
)

// TokenValidator is an interface for validating JWT tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// Authenticator validates tokens and loads the user they were issued to
type Authenticator interface {
	TokenValidator
	Actor(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// resolved actor in the context
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			AbortWithError(c, apperr.Unauthenticated("missing authorization header"))
			return
		}
		if err := authenticate(c, auth, header); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

// OptionalAuth resolves the actor when a token is present and lets anonymous
// requests through. A present but invalid token is still rejected.
func OptionalAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header != "" {
			if err := authenticate(c, auth, header); err != nil {
				AbortWithError(c, err)
				return
			}
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, auth Authenticator, header string) error {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return apperr.Unauthenticated("invalid authorization header format")
	}

	claims, err := auth.ValidateToken(parts[1])
	if err != nil {
		return err
	}
	actor, err := auth.Actor(c.Request.Context(), claims.UserID)
	if err != nil {
		return err
	}

	c.Set(userIDKey, actor.ID)
	c.Set(usernameKey, actor.Username)
	c.Set(actorKey, actor)

	logger := logging.FromContext(c.Request.Context()).With().Str("user_id", actor.ID.String()).Logger()
	c.Request = c.Request.WithContext(logging.WithLogger(c.Request.Context(), logger))
	return nil
}

// Actor returns the authenticated user, or nil for anonymous requests
func Actor(c *gin.Context) *models.User {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(*models.User); ok {
			return actor
		}
	}
	return nil
}
