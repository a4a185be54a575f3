// Package search turns recipe text into the vectors stored in recipe_embeddings.
package search

import (
	"strings"

	pgvector "github.com/pgvector/pgvector-go"

	"github.com/pageza/healthyrecipe/backend/internal/models"
)

// Embed returns a simple deterministic embedding for the given text.
// The three dimensions are total length, vowels and consonants.
func Embed(text string) pgvector.Vector {
	text = strings.ToLower(text)
	var vowels, consonants float32
	for _, r := range text {
		if strings.ContainsRune("aeiou", r) {
			vowels++
		} else if r >= 'a' && r <= 'z' {
			consonants++
		}
	}
	length := float32(len(text))
	return pgvector.NewVector([]float32{length, vowels, consonants})
}

// RecipeText is the text a recipe is indexed under.
func RecipeText(r *models.Recipe) string {
	parts := []string{r.Title, r.Description}
	parts = append(parts, r.TagList()...)
	return strings.Join(parts, " ")
}

// EmbedRecipe builds the embedding row for r.
func EmbedRecipe(r *models.Recipe) models.RecipeEmbedding {
	return models.RecipeEmbedding{RecipeID: r.ID, Embedding: Embed(RecipeText(r))}
}
