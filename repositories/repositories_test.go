package repositories

import (
	"testing"

	"book-review/infra"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := infra.OpenSQLite(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, infra.Migrate(db))
	t.Cleanup(func() { _ = infra.CloseDB(db) })
	return db
}
