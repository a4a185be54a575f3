package store

import (
	"github.com/google/uuid"

	"github.com/pageza/healthyrecipe/backend/internal/models"
)

// RecipeOrder names a result ordering.
type RecipeOrder string

const (
	// OrderLatest sorts by creation time, newest first.
	OrderLatest RecipeOrder = "latest"
	// OrderTopRated sorts by mean rating; unrated recipes count as 0.
	OrderTopRated RecipeOrder = "top_rated"
	// OrderMostFavorited sorts by favorite count.
	OrderMostFavorited RecipeOrder = "most_favorited"
	// OrderRelevance sorts keyword matches by embedding distance where the
	// backend supports it and falls back to OrderLatest otherwise.
	OrderRelevance RecipeOrder = "relevance"
)

// RecipeQuery is a conjunction of optional filters plus an ordering. Zero
// values mean "no filter".
type RecipeQuery struct {
	Status       models.RecipeStatus
	AuthorID     *uuid.UUID
	Categories   []models.Category
	DietaryTags  []string
	MinCalories  *int
	MaxCalories  *int
	MaxTotalTime *int
	Difficulty   models.Difficulty
	Keyword      string
	OrderBy      RecipeOrder
}

// The constructors below are the named queries the services rely on. All
// public ones are restricted to approved recipes.

func ApprovedLatest() RecipeQuery {
	return RecipeQuery{Status: models.StatusApproved, OrderBy: OrderLatest}
}

func ApprovedTopRated() RecipeQuery {
	return RecipeQuery{Status: models.StatusApproved, OrderBy: OrderTopRated}
}

func ApprovedMostFavorited() RecipeQuery {
	return RecipeQuery{Status: models.StatusApproved, OrderBy: OrderMostFavorited}
}

func ApprovedByCategories(categories []models.Category) RecipeQuery {
	q := ApprovedLatest()
	q.Categories = categories
	return q
}

func ApprovedByDietaryTags(tags []string) RecipeQuery {
	q := ApprovedLatest()
	q.DietaryTags = models.NormalizeTags(tags)
	return q
}

func ApprovedByCalorieRange(minCalories, maxCalories int) RecipeQuery {
	q := ApprovedLatest()
	q.MinCalories = &minCalories
	q.MaxCalories = &maxCalories
	return q
}

func ApprovedByMaxTotalTime(minutes int) RecipeQuery {
	q := ApprovedLatest()
	q.MaxTotalTime = &minutes
	return q
}

func ApprovedByDifficulty(d models.Difficulty) RecipeQuery {
	q := ApprovedLatest()
	q.Difficulty = d
	return q
}

func ApprovedSearch(keyword string) RecipeQuery {
	q := ApprovedLatest()
	q.Keyword = keyword
	q.OrderBy = OrderRelevance
	return q
}

// ByAuthor returns every recipe of the author regardless of status.
func ByAuthor(authorID uuid.UUID) RecipeQuery {
	return RecipeQuery{AuthorID: &authorID, OrderBy: OrderLatest}
}

// ApprovedByAuthor returns the author's publicly visible recipes.
func ApprovedByAuthor(authorID uuid.UUID) RecipeQuery {
	q := ByAuthor(authorID)
	q.Status = models.StatusApproved
	return q
}

// PendingQueue is the moderation queue, newest submissions first.
func PendingQueue() RecipeQuery {
	return RecipeQuery{Status: models.StatusPending, OrderBy: OrderLatest}
}

// UserQuery filters the admin user listing.
type UserQuery struct {
	Role   models.Role
	Status models.AccountStatus
	// Name matches username, first name or last name, case-insensitively.
	Name string
}
