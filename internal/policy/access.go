// Package policy decides who may read and mutate what.
package policy

import (
	"github.com/google/uuid"

	"github.com/pageza/healthyrecipe/backend/internal/apperr"
	"github.com/pageza/healthyrecipe/backend/internal/models"
)

// CanMutate reports whether actor may change a resource owned by ownerID.
// Owners may mutate their own resources and administrators may mutate any.
func CanMutate(actor *models.User, ownerID uuid.UUID) bool {
	if actor == nil {
		return false
	}
	return actor.IsAdmin() || actor.ID == ownerID
}

// CanView reports whether viewer may read recipe. Approved recipes are public,
// anything else only to those who may mutate it.
func CanView(viewer *models.User, recipe *models.Recipe) bool {
	return recipe.Status == models.StatusApproved || CanMutate(viewer, recipe.AuthorID)
}

// Authorize is CanMutate as an error.
func Authorize(actor *models.User, ownerID uuid.UUID, action string) error {
	if actor == nil {
		return apperr.Unauthenticated("authentication required")
	}
	if !CanMutate(actor, ownerID) {
		return apperr.PermissionDenied("You don't have permission to %s", action)
	}
	return nil
}

// RequireAdmin fails unless actor is an administrator.
func RequireAdmin(actor *models.User) error {
	if actor == nil {
		return apperr.Unauthenticated("authentication required")
	}
	if !actor.IsAdmin() {
		return apperr.PermissionDenied("administrator role required")
	}
	return nil
}

// InitialStatus is the status a new recipe receives. Submissions by
// administrators skip the moderation queue.
func InitialStatus(actor *models.User) models.RecipeStatus {
	if actor.IsAdmin() {
		return models.StatusApproved
	}
	return models.StatusPending
}
