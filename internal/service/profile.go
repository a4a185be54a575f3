package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/pageza/healthyrecipe/backend/internal/apperr"
	"github.com/pageza/healthyrecipe/backend/internal/models"
	"github.com/pageza/healthyrecipe/backend/internal/store"
	"github.com/pageza/healthyrecipe/backend/internal/types"
)

// ProfileService handles user profile operations
type ProfileService struct {
	users  store.UserStore
	hasher Hasher
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance
func NewProfileService(users store.UserStore, hasher Hasher) *ProfileService {
	return &ProfileService{
		users:  users,
		hasher: hasher,
	}
}

// GetProfile returns the stored account of actor
func (s *ProfileService) GetProfile(ctx context.Context, actor *models.User) (*models.User, error) {
	if actor == nil {
		return nil, apperr.Unauthenticated("authentication required")
	}
	return s.users.Get(ctx, actor.ID)
}

// UpdateProfile applies the fields present in req
func (s *ProfileService) UpdateProfile(ctx context.Context, actor *models.User, req *types.UpdateProfileRequest) (*models.User, error) {
	if actor == nil {
		return nil, apperr.Unauthenticated("authentication required")
	}
	user, err := s.users.Get(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email == "" || !strings.Contains(email, "@") {
			return nil, apperr.InvalidInput("a valid email is required")
		}
		if !strings.EqualFold(email, user.Email) {
			exists, err := s.users.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, apperr.Conflict("Email is already in use")
			}
		}
		user.Email = email
	}
	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = strings.TrimSpace(*req.PhoneNumber)
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.ProfileImageURL != nil {
		user.ProfileImageURL = *req.ProfileImageURL
	}
	if req.DietaryPreferences != nil {
		prefs, err := models.ParseDietaryPreferences(req.DietaryPreferences)
		if err != nil {
			return nil, err
		}
		user.DietaryPreferences = prefs
	}
	if req.Allergies != nil {
		user.Allergies = models.NormalizeTags(req.Allergies)
	}
	if req.FitnessGoal != nil {
		goal, err := models.ParseFitnessGoal(*req.FitnessGoal)
		if err != nil {
			return nil, err
		}
		user.FitnessGoal = goal
	}
	if req.DailyCalorieTarget != nil {
		if *req.DailyCalorieTarget <= 0 {
			return nil, apperr.InvalidInput("daily calorie target must be positive")
		}
		target := *req.DailyCalorieTarget
		user.DailyCalorieTarget = &target
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword replaces the password after verifying the current one
func (s *ProfileService) ChangePassword(ctx context.Context, actor *models.User, current, next string) error {
	if actor == nil {
		return apperr.Unauthenticated("authentication required")
	}
	user, err := s.users.Get(ctx, actor.ID)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(user.PasswordHash, current) {
		return apperr.InvalidInput("Current password is incorrect")
	}
	if err := validatePassword(next); err != nil {
		return err
	}

	hashed, err := s.hasher.Hash(next)
	if err != nil {
		return err
	}
	user.PasswordHash = hashed
	return s.users.Update(ctx, user)
}

// GetPublicProfile returns a user for the public profile view
func (s *ProfileService) GetPublicProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.users.Get(ctx, userID)
}
