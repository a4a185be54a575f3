package types

// RegisterRequest represents the request body for creating an account
type RegisterRequest struct {
	Username           string   `json:"username" binding:"required,min=3,max=20"`
	Email              string   `json:"email" binding:"required,email,max=50"`
	Password           string   `json:"password" binding:"required,min=6,max=40"`
	FirstName          string   `json:"first_name" binding:"required,max=50"`
	LastName           string   `json:"last_name" binding:"required,max=50"`
	PhoneNumber        string   `json:"phone_number" binding:"max=15"`
	Role               string   `json:"role"`
	DietaryPreferences []string `json:"dietary_preferences"`
	Allergies          []string `json:"allergies"`
	FitnessGoal        string   `json:"fitness_goal"`
	DailyCalorieTarget *int     `json:"daily_calorie_target" binding:"omitempty,min=1"`
}

// LoginRequest accepts either a username or an email address as Login.
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RateRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment" binding:"max=1000"`
}

// UpdateProfileRequest carries a partial profile update. Only non-nil fields
// are applied; list fields replace the stored set when present.
type UpdateProfileRequest struct {
	Email              *string  `json:"email" binding:"omitempty,email,max=50"`
	FirstName          *string  `json:"first_name" binding:"omitempty,max=50"`
	LastName           *string  `json:"last_name" binding:"omitempty,max=50"`
	PhoneNumber        *string  `json:"phone_number" binding:"omitempty,max=15"`
	Bio                *string  `json:"bio" binding:"omitempty,max=500"`
	ProfileImageURL    *string  `json:"profile_image_url"`
	DietaryPreferences []string `json:"dietary_preferences"`
	Allergies          []string `json:"allergies"`
	FitnessGoal        *string  `json:"fitness_goal"`
	DailyCalorieTarget *int     `json:"daily_calorie_target" binding:"omitempty,min=1"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6,max=40"`
}

type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required"`
}
