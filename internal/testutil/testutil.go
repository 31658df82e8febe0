// Package testutil opens throwaway SQLite databases for package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"assetdb/internal/db"

	"gorm.io/gorm"
)

// OpenDB создаёт мигрированную SQLite-базу во временном каталоге теста.
func OpenDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "assetdb.db") + "?_foreign_keys=on&_busy_timeout=5000"
	d, err := db.Open("sqlite", dsn, db.Options{LogLevel: "error"})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(d) })
	if err := db.Migrate(d); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return d
}

func Ptr[T any](v T) *T { return &v }
