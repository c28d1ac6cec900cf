// Package dbtest provides an in-memory SQLite database for repository tests.
package dbtest

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"catalog_backend/internal/platform/db"
)

// Open prepares an in-memory SQLite database with models migrated.
// The pool is pinned to a single connection because every :memory: connection is a separate database.
func Open(t *testing.T, models ...any) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), db.GormConfig())
	require.NoError(t, err, "failed to initialize test database")

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(models...), "failed to migrate tables")
	return gdb
}
