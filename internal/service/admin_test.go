package service_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/healthyrecipe/backend/internal/apperr"
	"github.com/pageza/healthyrecipe/backend/internal/models"
	"github.com/pageza/healthyrecipe/backend/internal/store"
	th "github.com/pageza/healthyrecipe/backend/internal/testhelpers"
)

func TestAdminListUsers(t *testing.T) {
	env := setupServices(t)
	admin := th.CreateUser(t, env.db, "admin", models.RoleAdmin)
	th.CreateUser(t, env.db, "chef_julia", models.RoleChef)
	th.CreateUser(t, env.db, "plain_joe", models.RoleUser)

	all, err := env.admin.ListUsers(ctx, admin, store.UserQuery{}, firstPage)
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Total)

	chefs, err := env.admin.ListUsers(ctx, admin, store.UserQuery{Role: models.RoleChef}, firstPage)
	require.NoError(t, err)
	require.Len(t, chefs.Items, 1)
	assert.Equal(t, "chef_julia", chefs.Items[0].Username)

	byName, err := env.admin.ListUsers(ctx, admin, store.UserQuery{Name: "JOE"}, firstPage)
	require.NoError(t, err)
	assert.Equal(t, int64(1), byName.Total)

	_, err = env.admin.ListUsers(ctx, &chefs.Items[0], store.UserQuery{}, firstPage)
	assert.True(t, errors.Is(err, apperr.ErrPermissionDenied))
}

func TestAdminSetStatusAndRole(t *testing.T) {
	env := setupServices(t)
	admin := th.CreateUser(t, env.db, "admin", models.RoleAdmin)
	user := th.CreateUser(t, env.db, "kim", models.RoleUser)

	updated, err := env.admin.SetUserStatus(ctx, admin, user.ID, "suspended")
	require.NoError(t, err)
	assert.Equal(t, models.AccountSuspended, updated.Status)

	_, err = env.auth.Actor(ctx, user.ID)
	assert.True(t, errors.Is(err, apperr.ErrPermissionDenied), "suspension applies on the next request")

	updated, err = env.admin.SetUserRole(ctx, admin, user.ID, "CHEF")
	require.NoError(t, err)
	assert.Equal(t, models.RoleChef, updated.Role)
	assert.Equal(t, models.AccountSuspended, updated.Status)

	_, err = env.admin.SetUserRole(ctx, admin, user.ID, "OVERLORD")
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))

	_, err = env.admin.SetUserStatus(ctx, admin, uuid.New(), "ACTIVE")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = env.admin.SetUserRole(ctx, user, user.ID, "ADMIN")
	assert.True(t, errors.Is(err, apperr.ErrPermissionDenied))
}
