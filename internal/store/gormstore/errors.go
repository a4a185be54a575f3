package gormstore

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/pageza/healthyrecipe/backend/internal/apperr"
)

const pqUniqueViolation = "23505"

// isUniqueViolation recognizes duplicate key failures from every driver we run
// on: gorm's translated error, lib/pq on PostgreSQL and go-sqlite3.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// notFoundOr maps gorm.ErrRecordNotFound to a typed NotFound and wraps
// anything else.
func notFoundOr(err error, what string, id interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("%s not found with id: %v", what, id)
	}
	return apperr.Internal(err, "failed to load %s", strings.ToLower(what))
}
