package db

import (
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
)

// OpenTest points Instance at a private in-memory SQLite database for the duration of the test
func OpenTest(t testing.TB) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	if err := Open(sqlite.Open("file:" + name + "?mode=memory&cache=shared&_foreign_keys=1")); err != nil {
		t.Fatalf("cannot open test database: %v", err)
	}
	sqlDB, err := Instance.DB()
	if err != nil {
		t.Fatalf("cannot get *sql.DB: %v", err)
	}
	// A single connection keeps the in-memory database alive and avoids SQLite table locks
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(Close)
}
