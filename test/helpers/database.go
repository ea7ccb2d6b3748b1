package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/danielp299/ogamecloneapp-sub000/internal/infrastructure/database"
)

// NewTestDB creates a migrated in-memory SQLite database that is closed
// when the test finishes
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewTestConnection()
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}
