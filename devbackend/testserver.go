package devbackend

import (
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestServer serves a fresh backend on a temporary SQLite file. Writes are
// serialized over a single connection.
func NewTestServer(tb testing.TB) (*httptest.Server, *gorm.DB) {
	tb.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(tb.TempDir(), "backend.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	sqldb, err := db.DB()
	if err != nil {
		tb.Fatalf("sql db: %v", err)
	}
	sqldb.SetMaxOpenConns(1)

	e, err := New(db)
	if err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	srv := httptest.NewServer(e)
	tb.Cleanup(func() {
		srv.Close()
		sqldb.Close()
	})
	return srv, db
}
