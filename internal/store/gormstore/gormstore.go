// Package gormstore implements the store contracts on top of gorm. It runs on
// PostgreSQL in production and on SQLite locally and in tests.
package gormstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/pageza/healthyrecipe/backend/internal/store"
)

// Store is the gorm backed implementation of store.Stores and store.Transactor.
type Store struct {
	db         *gorm.DB
	embeddings bool
}

type Option func(*Store)

// WithEmbeddings keeps recipe_embeddings in sync and orders keyword searches
// by vector distance. It requires PostgreSQL with the vector extension.
func WithEmbeddings() Option {
	return func(s *Store) {
		s.embeddings = true
	}
}

func New(db *gorm.DB, opts ...Option) *Store {
	s := &Store{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stores returns stores bound to the root connection.
func (s *Store) Stores() store.Stores {
	return s.bind(s.db)
}

func (s *Store) bind(db *gorm.DB) store.Stores {
	return store.Stores{
		Users:     &userStore{db: db},
		Recipes:   &recipeStore{db: db, embeddings: s.embeddings},
		Ratings:   &ratingStore{db: db},
		Favorites: &favoriteStore{db: db},
	}
}

func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context, stores store.Stores) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, s.bind(tx))
	})
}

var _ store.Transactor = (*Store)(nil)

// paginate counts the rows matched by filtered, then loads the requested page
// with ordered applied. filtered must return a fresh chain on every call.
func paginate[T any](filtered func() *gorm.DB, ordered func(*gorm.DB) *gorm.DB, p store.PageRequest) (store.Page[T], error) {
	page := store.Page[T]{Page: p.Page, Size: p.Size, Items: []T{}}
	if err := filtered().Count(&page.Total).Error; err != nil {
		return page, err
	}
	if page.Total == 0 || p.Offset() >= int(page.Total) {
		return page, nil
	}
	if err := ordered(filtered()).Limit(p.Size).Offset(p.Offset()).Find(&page.Items).Error; err != nil {
		return page, err
	}
	return page, nil
}
