package gormstore

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/healthyrecipe/backend/internal/apperr"
	"github.com/pageza/healthyrecipe/backend/internal/models"
	"github.com/pageza/healthyrecipe/backend/internal/store"
)

type userStore struct {
	db *gorm.DB
}

func (s *userStore) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "User", id)
	}
	return &user, nil
}

func (s *userStore) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("username = ? OR LOWER(email) = ?", login, strings.ToLower(login)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found: %s", login)
		}
		return nil, apperr.Internal(err, "failed to load user")
	}
	return &user, nil
}

func (s *userStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return s.exists(ctx, "username = ?", username)
}

func (s *userStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, "LOWER(email) = ?", strings.ToLower(email))
}

func (s *userStore) exists(ctx context.Context, query string, arg interface{}) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, apperr.Internal(err, "failed to check user")
	}
	return count > 0, nil
}

func (s *userStore) Create(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("Username or email is already taken")
		}
		return apperr.Internal(err, "failed to create user")
	}
	return nil
}

func (s *userStore) Update(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("Email is already taken")
		}
		return apperr.Internal(err, "failed to update user")
	}
	return nil
}

func (s *userStore) List(ctx context.Context, q store.UserQuery, p store.PageRequest) (store.Page[models.User], error) {
	filtered := func() *gorm.DB {
		tx := s.db.WithContext(ctx).Model(&models.User{})
		if q.Role != "" {
			tx = tx.Where("role = ?", q.Role)
		}
		if q.Status != "" {
			tx = tx.Where("status = ?", q.Status)
		}
		if name := strings.TrimSpace(q.Name); name != "" {
			like := "%" + strings.ToLower(name) + "%"
			tx = tx.Where("LOWER(username) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", like, like, like)
		}
		return tx
	}
	ordered := func(tx *gorm.DB) *gorm.DB {
		return tx.Order("created_at DESC")
	}

	page, err := paginate[models.User](filtered, ordered, p)
	if err != nil {
		return page, apperr.Internal(err, "failed to list users")
	}
	return page, nil
}
