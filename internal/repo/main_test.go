package repo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/pkordes/catalog-filter/migrations"
	"github.com/pkordes/catalog-filter/testutil"
)

// TestMain applies all pending migrations to the test database once, before
// any test in the package runs. Without TEST_DATABASE_URL only the memory
// source tests run; the Postgres ones skip themselves.
func TestMain(m *testing.M) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		os.Exit(m.Run())
	}

	db := testutil.MustOpenSQLDB(os.Getenv("TEST_DATABASE_URL"))

	if _, err := migrations.Up(context.Background(), db); err != nil {
		db.Close()
		log.Fatalf("TestMain: run migrations: %v", err)
	}
	db.Close()

	os.Exit(m.Run())
}
