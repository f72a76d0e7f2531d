package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nileshnishad/laboursampark-backend/internal/domain/entities"
)

// newTestDB opens an isolated in-memory database with the users schema
// migrated. TranslateError matches the production gorm config so duplicate
// key violations surface as gorm.ErrDuplicatedKey.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	require.NoError(t, db.AutoMigrate(&entities.User{}), "migrate users")
	return db
}
