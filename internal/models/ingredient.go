package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Ingredient struct {
	ID       uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	RecipeID uuid.UUID `gorm:"type:varchar(36);not null;index" json:"recipe_id"`
	Name     string    `gorm:"size:100;not null" json:"name"`
	Quantity float64   `gorm:"not null" json:"quantity"`
	Unit     string    `gorm:"size:30" json:"unit"`
	Notes    string    `gorm:"size:255" json:"notes,omitempty"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
