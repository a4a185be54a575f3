package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/healthyrecipe/backend/config"
	"github.com/pageza/healthyrecipe/backend/internal/models"
)

func TestNewSQLiteAndMigrate(t *testing.T) {
	cfg := &config.Config{
		DBDriver:   config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "app.db"),
	}

	db, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { Close(db) })

	// SQL files are PostgreSQL only; a missing directory must not matter here.
	require.NoError(t, RunMigrations(db, filepath.Join(t.TempDir(), "missing")))

	for _, model := range Models() {
		assert.True(t, db.Migrator().HasTable(model), "missing table for %T", model)
	}
	assert.False(t, db.Migrator().HasTable(&models.RecipeEmbedding{}))
	assert.False(t, SupportsVectors(db))
	assert.NoError(t, HealthCheck(context.Background(), db))
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestRunMigrationsReadsDirectoryOnPostgresOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0001_broken.sql"), []byte("THIS IS NOT SQL"), 0o600))

	db, err := New(&config.Config{DBDriver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "app.db")})
	require.NoError(t, err)
	t.Cleanup(func() { Close(db) })

	assert.NoError(t, RunMigrations(db, dir))
}
