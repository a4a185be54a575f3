package search

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/pageza/healthyrecipe/backend/internal/models"
)

func TestEmbed(t *testing.T) {
	vec := Embed("Soup!")
	assert.Equal(t, []float32{5, 2, 2}, vec.Slice())
	assert.Len(t, vec.Slice(), models.EmbeddingDimensions)
}

func TestEmbedRecipe(t *testing.T) {
	r := &models.Recipe{ID: uuid.New(), Title: "Oat Bowl", Description: "quick"}
	r.SetDietaryTags([]string{"Vegan"})

	row := EmbedRecipe(r)
	assert.Equal(t, r.ID, row.RecipeID)
	assert.Equal(t, Embed("Oat Bowl quick vegan").Slice(), row.Embedding.Slice())
}
