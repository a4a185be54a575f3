package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/healthyrecipe/backend/internal/logging"
	"github.com/pageza/healthyrecipe/backend/internal/models"
	"github.com/pageza/healthyrecipe/backend/internal/policy"
	"github.com/pageza/healthyrecipe/backend/internal/store"
)

// AdminService manages accounts. Recipe moderation lives on RecipeService.
type AdminService struct {
	users store.UserStore
}

var _ IAdminService = (*AdminService)(nil)

func NewAdminService(users store.UserStore) *AdminService {
	return &AdminService{users: users}
}

func (s *AdminService) ListUsers(ctx context.Context, actor *models.User, q store.UserQuery, p store.PageRequest) (store.Page[models.User], error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return store.Page[models.User]{}, err
	}
	if err := p.Validate(); err != nil {
		return store.Page[models.User]{}, err
	}
	return s.users.List(ctx, q, p)
}

func (s *AdminService) SetUserStatus(ctx context.Context, actor *models.User, userID uuid.UUID, status string) (*models.User, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return nil, err
	}
	parsed, err := models.ParseAccountStatus(status)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, actor, userID, func(u *models.User) { u.Status = parsed })
}

func (s *AdminService) SetUserRole(ctx context.Context, actor *models.User, userID uuid.UUID, role string) (*models.User, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return nil, err
	}
	parsed, err := models.ParseRole(role)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, actor, userID, func(u *models.User) { u.Role = parsed })
}

func (s *AdminService) update(ctx context.Context, actor *models.User, userID uuid.UUID, apply func(*models.User)) (*models.User, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	apply(user)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info().
		Str("user_id", user.ID.String()).
		Str("admin_id", actor.ID.String()).
		Str("role", string(user.Role)).
		Str("status", string(user.Status)).
		Msg("account updated by administrator")
	return user, nil
}
