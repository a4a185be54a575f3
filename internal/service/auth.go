package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/healthyrecipe/backend/internal/apperr"
	"github.com/pageza/healthyrecipe/backend/internal/logging"
	"github.com/pageza/healthyrecipe/backend/internal/models"
	"github.com/pageza/healthyrecipe/backend/internal/store"
	"github.com/pageza/healthyrecipe/backend/internal/types"
)

var errInvalidCredentials = apperr.Unauthenticated("invalid credentials")

// Hasher hashes and verifies passwords.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// BcryptHasher is the production Hasher.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", apperr.Internal(err, "failed to hash password")
	}
	return string(hashed), nil
}

func (h BcryptHasher) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

type AuthService struct {
	users     store.UserStore
	hasher    Hasher
	jwtSecret string
	tokenTTL  time.Duration
}

var _ IAuthService = (*AuthService)(nil)

func NewAuthService(users store.UserStore, hasher Hasher, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		hasher:    hasher,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// Register creates an account and returns it with a fresh token. Accounts
// may sign up as USER or CHEF; administrators are appointed, never
// self-registered.
func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (*models.User, string, error) {
	if err := validateRegistration(req); err != nil {
		return nil, "", err
	}

	role := models.RoleUser
	if strings.TrimSpace(req.Role) != "" {
		parsed, err := models.ParseRole(req.Role)
		if err != nil {
			return nil, "", err
		}
		role = parsed
	}
	if role == models.RoleAdmin {
		return nil, "", apperr.PermissionDenied("administrator accounts cannot be self-registered")
	}

	prefs, err := models.ParseDietaryPreferences(req.DietaryPreferences)
	if err != nil {
		return nil, "", err
	}
	goal, err := models.ParseFitnessGoal(req.FitnessGoal)
	if err != nil {
		return nil, "", err
	}

	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if exists, err := s.users.ExistsByUsername(ctx, username); err != nil {
		return nil, "", err
	} else if exists {
		return nil, "", apperr.Conflict("Username is already taken")
	}
	if exists, err := s.users.ExistsByEmail(ctx, email); err != nil {
		return nil, "", err
	} else if exists {
		return nil, "", apperr.Conflict("Email is already in use")
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Username:           username,
		Email:              email,
		PasswordHash:       hashed,
		FirstName:          strings.TrimSpace(req.FirstName),
		LastName:           strings.TrimSpace(req.LastName),
		PhoneNumber:        strings.TrimSpace(req.PhoneNumber),
		Role:               role,
		Status:             models.AccountActive,
		DietaryPreferences: prefs,
		Allergies:          models.NormalizeTags(req.Allergies),
		FitnessGoal:        goal,
		DailyCalorieTarget: req.DailyCalorieTarget,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}

	logging.FromContext(ctx).Info().
		Str("user_id", user.ID.String()).
		Str("role", string(user.Role)).
		Msg("user registered")
	return user, token, nil
}

// Login authenticates by username or email.
func (s *AuthService) Login(ctx context.Context, login, password string) (*models.User, string, error) {
	user, err := s.users.GetByLogin(ctx, strings.TrimSpace(login))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, "", errInvalidCredentials
		}
		return nil, "", err
	}
	if !s.hasher.Verify(user.PasswordHash, password) {
		return nil, "", errInvalidCredentials
	}
	if !user.IsActive() {
		return nil, "", apperr.PermissionDenied("account is %s", strings.ToLower(string(user.Status)))
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", apperr.Internal(err, "failed to sign token")
	}
	return signed, nil
}

func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.Unauthenticated("token has expired")
		}
		return nil, apperr.Unauthenticated("invalid token")
	}
	if !token.Valid || claims.UserID == uuid.Nil {
		return nil, apperr.Unauthenticated("invalid token claims")
	}
	return claims, nil
}

// Actor resolves the user a validated token was issued to. The row is
// re-read on every request so role and status changes apply immediately.
func (s *AuthService) Actor(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Unauthenticated("user no longer exists")
		}
		return nil, err
	}
	if !user.IsActive() {
		return nil, apperr.PermissionDenied("account is %s", strings.ToLower(string(user.Status)))
	}
	return user, nil
}

func validateRegistration(req *types.RegisterRequest) error {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	switch {
	case len(username) < 3 || len(username) > 20:
		return apperr.InvalidInput("username must be between 3 and 20 characters")
	case email == "" || !strings.Contains(email, "@"):
		return apperr.InvalidInput("a valid email is required")
	case len(email) > 50:
		return apperr.InvalidInput("email must be at most 50 characters")
	}
	if err := validatePassword(req.Password); err != nil {
		return err
	}
	switch {
	case strings.TrimSpace(req.FirstName) == "":
		return apperr.InvalidInput("first name is required")
	case strings.TrimSpace(req.LastName) == "":
		return apperr.InvalidInput("last name is required")
	case len(req.FirstName) > 50 || len(req.LastName) > 50:
		return apperr.InvalidInput("names must be at most 50 characters")
	case len(strings.TrimSpace(req.PhoneNumber)) > 15:
		return apperr.InvalidInput("phone number must be at most 15 characters")
	case req.DailyCalorieTarget != nil && *req.DailyCalorieTarget <= 0:
		return apperr.InvalidInput("daily calorie target must be positive")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 || len(password) > 40 {
		return apperr.InvalidInput("password must be between 6 and 40 characters")
	}
	return nil
}
