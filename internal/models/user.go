package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleUser  Role = "USER"
	RoleChef  Role = "CHEF"
	RoleAdmin Role = "ADMIN"
)

// Roles lists every valid role.
var Roles = []Role{RoleUser, RoleChef, RoleAdmin}

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	AccountActive    AccountStatus = "ACTIVE"
	AccountInactive  AccountStatus = "INACTIVE"
	AccountSuspended AccountStatus = "SUSPENDED"
)

// AccountStatuses lists every valid account status.
var AccountStatuses = []AccountStatus{AccountActive, AccountInactive, AccountSuspended}

// ParseRole parses a role name case-insensitively.
func ParseRole(raw string) (Role, error) {
	return parseEnum("role", raw, Roles)
}

// ParseAccountStatus parses an account status case-insensitively.
func ParseAccountStatus(raw string) (AccountStatus, error) {
	return parseEnum("account status", raw, AccountStatuses)
}

type User struct {
	ID                 uuid.UUID     `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
	Username           string        `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email              string        `gorm:"size:100;not null;uniqueIndex" json:"email"`
	PasswordHash       string        `gorm:"not null" json:"-"`
	FirstName          string        `gorm:"size:50" json:"first_name"`
	LastName           string        `gorm:"size:50" json:"last_name"`
	PhoneNumber        string        `gorm:"size:15" json:"phone_number,omitempty"`
	Bio                string        `gorm:"type:text" json:"bio,omitempty"`
	ProfileImageURL    string        `gorm:"size:255" json:"profile_image_url,omitempty"`
	Role               Role          `gorm:"size:20;not null;default:'USER'" json:"role"`
	Status             AccountStatus `gorm:"size:20;not null;default:'ACTIVE'" json:"status"`
	DietaryPreferences StringSet     `json:"dietary_preferences"`
	Allergies          StringSet     `json:"allergies"`
	FitnessGoal        FitnessGoal   `gorm:"size:20" json:"fitness_goal,omitempty"`
	DailyCalorieTarget *int          `json:"daily_calorie_target,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsAdmin reports whether the user holds the ADMIN role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// IsActive reports whether the account may authenticate.
func (u *User) IsActive() bool {
	return u != nil && u.Status == AccountActive
}
