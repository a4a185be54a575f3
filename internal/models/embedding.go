package models

import (
	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
)

// EmbeddingDimensions is the width of the vectors stored in recipe_embeddings.
const EmbeddingDimensions = 3

// RecipeEmbedding holds the search vector of a recipe. The table only exists on
// PostgreSQL with the vector extension installed.
type RecipeEmbedding struct {
	RecipeID  uuid.UUID       `gorm:"type:varchar(36);primarykey" json:"recipe_id"`
	Embedding pgvector.Vector `gorm:"type:vector(3)" json:"-"`
}

func (RecipeEmbedding) TableName() string {
	return "recipe_embeddings"
}
