package libsql_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/tursodatabase/go-libsql"

	"github.com/ivnamo/isoVisor/internal/adapters/libsql"
)

func testStore(t *testing.T) *libsql.Store {
	t.Helper()

	db, err := sql.Open("libsql", libsql.DefaultDSN)
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	db.SetMaxOpenConns(1)

	s, err := libsql.NewStoreFromDB(context.Background(), db)
	if err != nil {
		_ = db.Close()
		t.Fatalf("Failed to prepare store: %v", err)
	}

	t.Cleanup(func() { _ = s.Close() })
	return s
}
