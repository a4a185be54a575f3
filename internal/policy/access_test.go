package policy

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/pageza/healthyrecipe/backend/internal/apperr"
	"github.com/pageza/healthyrecipe/backend/internal/models"
)

func TestCanMutate(t *testing.T) {
	owner := &models.User{ID: uuid.New(), Role: models.RoleChef}
	other := &models.User{ID: uuid.New(), Role: models.RoleUser}
	admin := &models.User{ID: uuid.New(), Role: models.RoleAdmin}

	tests := []struct {
		name  string
		actor *models.User
		want  bool
	}{
		{"owner", owner, true},
		{"admin on someone else's resource", admin, true},
		{"non-owner", other, false},
		{"chef role grants nothing extra", &models.User{ID: uuid.New(), Role: models.RoleChef}, false},
		{"anonymous", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanMutate(tt.actor, owner.ID))
		})
	}
}

func TestCanView(t *testing.T) {
	author := &models.User{ID: uuid.New(), Role: models.RoleChef}
	stranger := &models.User{ID: uuid.New(), Role: models.RoleUser}
	admin := &models.User{ID: uuid.New(), Role: models.RoleAdmin}

	for _, status := range []models.RecipeStatus{models.StatusPending, models.StatusRejected} {
		hidden := &models.Recipe{AuthorID: author.ID, Status: status}
		assert.True(t, CanView(author, hidden), status)
		assert.True(t, CanView(admin, hidden), status)
		assert.False(t, CanView(stranger, hidden), status)
		assert.False(t, CanView(nil, hidden), status)
	}

	approved := &models.Recipe{AuthorID: author.ID, Status: models.StatusApproved}
	assert.True(t, CanView(nil, approved))
	assert.True(t, CanView(stranger, approved))
}

func TestAuthorize(t *testing.T) {
	owner := &models.User{ID: uuid.New(), Role: models.RoleUser}
	other := &models.User{ID: uuid.New(), Role: models.RoleUser}

	assert.NoError(t, Authorize(owner, owner.ID, "update this recipe"))

	err := Authorize(other, owner.ID, "update this recipe")
	assert.True(t, errors.Is(err, apperr.ErrPermissionDenied))
	assert.Equal(t, "You don't have permission to update this recipe", err.Error())

	assert.True(t, errors.Is(Authorize(nil, owner.ID, "x"), apperr.ErrUnauthenticated))
}

func TestRequireAdmin(t *testing.T) {
	assert.NoError(t, RequireAdmin(&models.User{Role: models.RoleAdmin}))
	assert.True(t, errors.Is(RequireAdmin(&models.User{Role: models.RoleChef}), apperr.ErrPermissionDenied))
	assert.True(t, errors.Is(RequireAdmin(nil), apperr.ErrUnauthenticated))
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, models.StatusApproved, InitialStatus(&models.User{Role: models.RoleAdmin}))
	assert.Equal(t, models.StatusPending, InitialStatus(&models.User{Role: models.RoleChef}))
	assert.Equal(t, models.StatusPending, InitialStatus(&models.User{Role: models.RoleUser}))
}
