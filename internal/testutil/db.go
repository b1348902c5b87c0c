// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/celebigilfatih/omt/internal/config"
	"github.com/celebigilfatih/omt/internal/infrastructure/database"
)

// NewDB opens a private in-memory sqlite database with the schema migrated.
func NewDB(t *testing.T, clock clockwork.Clock) *gorm.DB {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}

	log := zap.NewNop()
	db, err := database.NewConnection(cfg, log, clock)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, log))

	t.Cleanup(func() {
		_ = database.Close(db, log)
	})
	return db
}
