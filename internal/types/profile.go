package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/pageza/healthyrecipe/backend/internal/models"
)

// UserResponse is the full account view returned to its owner and to
// administrators.
type UserResponse struct {
	ID                 uuid.UUID            `json:"id"`
	Username           string               `json:"username"`
	Email              string               `json:"email"`
	FirstName          string               `json:"first_name"`
	LastName           string               `json:"last_name"`
	PhoneNumber        string               `json:"phone_number,omitempty"`
	Bio                string               `json:"bio,omitempty"`
	ProfileImageURL    string               `json:"profile_image_url,omitempty"`
	Role               models.Role          `json:"role"`
	Status             models.AccountStatus `json:"status"`
	DietaryPreferences []string             `json:"dietary_preferences"`
	Allergies          []string             `json:"allergies"`
	FitnessGoal        models.FitnessGoal   `json:"fitness_goal,omitempty"`
	DailyCalorieTarget *int                 `json:"daily_calorie_target,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
}

func NewUserResponse(u models.User) UserResponse {
	return UserResponse{
		ID:                 u.ID,
		Username:           u.Username,
		Email:              u.Email,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		PhoneNumber:        u.PhoneNumber,
		Bio:                u.Bio,
		ProfileImageURL:    u.ProfileImageURL,
		Role:               u.Role,
		Status:             u.Status,
		DietaryPreferences: nonNil(u.DietaryPreferences),
		Allergies:          nonNil(u.Allergies),
		FitnessGoal:        u.FitnessGoal,
		DailyCalorieTarget: u.DailyCalorieTarget,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

// PublicProfile is what any visitor may see about a user.
type PublicProfile struct {
	ID              uuid.UUID   `json:"id"`
	Username        string      `json:"username"`
	FirstName       string      `json:"first_name"`
	LastName        string      `json:"last_name"`
	Bio             string      `json:"bio,omitempty"`
	ProfileImageURL string      `json:"profile_image_url,omitempty"`
	Role            models.Role `json:"role"`
	CreatedAt       time.Time   `json:"created_at"`
}

func NewPublicProfile(u models.User) PublicProfile {
	return PublicProfile{
		ID:              u.ID,
		Username:        u.Username,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Bio:             u.Bio,
		ProfileImageURL: u.ProfileImageURL,
		Role:            u.Role,
		CreatedAt:       u.CreatedAt,
	}
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
