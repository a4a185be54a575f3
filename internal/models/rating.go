package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Rating is one user's score for one recipe. The (user_id, recipe_id) pair is
// unique, so a second insert for the same pair fails as a conflict.
type Rating struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_ratings_user_recipe" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_ratings_user_recipe;index" json:"recipe_id"`
	Score     int       `gorm:"column:rating;not null;check:chk_ratings_rating,rating >= 1 AND rating <= 5" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment,omitempty"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (r *Rating) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RatingStats summarizes the ratings of a single recipe.
type RatingStats struct {
	RecipeID      uuid.UUID `json:"recipe_id"`
	AverageRating float64   `json:"average_rating"`
	TotalRatings  int64     `json:"total_ratings"`
}
