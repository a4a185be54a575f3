// Package store declares the persistence contracts used by the domain services.
// Implementations live in subpackages; gormstore is the production one.
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/healthyrecipe/backend/internal/apperr"
	"github.com/pageza/healthyrecipe/backend/internal/models"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest selects one page of a result set. Page is zero based.
type PageRequest struct {
	Page int
	Size int
}

// NewPageRequest returns a request with the default size when size is zero.
func NewPageRequest(page, size int) PageRequest {
	if size == 0 {
		size = DefaultPageSize
	}
	return PageRequest{Page: page, Size: size}
}

// Validate checks page >= 0 and 1 <= size <= MaxPageSize.
func (p PageRequest) Validate() error {
	if p.Page < 0 {
		return apperr.InvalidInput("page must be greater than or equal to 0")
	}
	if p.Size < 1 || p.Size > MaxPageSize {
		return apperr.InvalidInput("size must be between 1 and %d", MaxPageSize)
	}
	return nil
}

func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Page is one page of items plus the total number of matching rows.
type Page[T any] struct {
	Items []T
	Total int64
	Page  int
	Size  int
}

// TotalPages returns the number of pages needed to hold Total items.
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.Total + int64(p.Size) - 1) / int64(p.Size))
}

// MapPage converts the items of a page while keeping its paging metadata.
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := Page[U]{Items: make([]U, 0, len(p.Items)), Total: p.Total, Page: p.Page, Size: p.Size}
	for _, item := range p.Items {
		out.Items = append(out.Items, fn(item))
	}
	return out
}

type UserStore interface {
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByLogin(ctx context.Context, usernameOrEmail string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, q UserQuery, p PageRequest) (Page[models.User], error)
}

// RecipeStore persists recipes together with the rows they own exclusively:
// ingredients, category links, dietary tag links and the search embedding.
type RecipeStore interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	Create(ctx context.Context, recipe *models.Recipe) error
	Update(ctx context.Context, recipe *models.Recipe) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.RecipeStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, q RecipeQuery, p PageRequest) (Page[models.Recipe], error)
}

type RatingStore interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Rating, error)
	GetByUserAndRecipe(ctx context.Context, userID, recipeID uuid.UUID) (*models.Rating, error)
	Create(ctx context.Context, rating *models.Rating) error
	Update(ctx context.Context, rating *models.Rating) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByRecipe(ctx context.Context, recipeID uuid.UUID) error
	ListByRecipe(ctx context.Context, recipeID uuid.UUID, p PageRequest) (Page[models.Rating], error)
	ListByUser(ctx context.Context, userID uuid.UUID, p PageRequest) (Page[models.Rating], error)
	Stats(ctx context.Context, recipeIDs ...uuid.UUID) (map[uuid.UUID]models.RatingStats, error)
}

type FavoriteStore interface {
	Create(ctx context.Context, favorite *models.RecipeFavorite) error
	// Delete removes the pair and reports whether a row existed.
	Delete(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
	DeleteByRecipe(ctx context.Context, recipeID uuid.UUID) error
	Exists(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
	Counts(ctx context.Context, recipeIDs ...uuid.UUID) (map[uuid.UUID]int64, error)
	// ListRecipes returns the user's favorited recipes, most recently added first.
	ListRecipes(ctx context.Context, userID uuid.UUID, p PageRequest) (Page[models.Recipe], error)
}

// Stores bundles every store bound to the same connection or transaction.
type Stores struct {
	Users     UserStore
	Recipes   RecipeStore
	Ratings   RatingStore
	Favorites FavoriteStore
}

// Transactor runs fn against stores bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, s Stores) error) error
}
