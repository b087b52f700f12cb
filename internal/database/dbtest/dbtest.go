// Package dbtest opens throwaway in-memory databases for package tests.
package dbtest

import (
	"fmt"
	"regexp"
	"testing"

	"enquirycrm/internal/config"
	"enquirycrm/internal/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9]+`)

// Open returns a migrated in-memory SQLite database private to t.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	name := unsafeChars.ReplaceAllString(t.Name(), "_")
	cfg := config.DatabaseConfig{
		URL: fmt.Sprintf("sqlite:///file:%s?mode=memory&cache=shared", name),
	}
	db, err := database.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
