package testhelpers

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/healthyrecipe/backend/internal/models"
	"github.com/pageza/healthyrecipe/backend/internal/types"
)

// MockAuthenticator is a mock implementation of middleware.Authenticator
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

func (m *MockAuthenticator) Actor(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// ExpectToken makes token resolve to user.
func (m *MockAuthenticator) ExpectToken(token string, user *models.User) {
	m.On("ValidateToken", token).Return(&types.TokenClaims{UserID: user.ID, Username: user.Username, Role: string(user.Role)}, nil)
	m.On("Actor", mock.Anything, user.ID).Return(user, nil)
}
