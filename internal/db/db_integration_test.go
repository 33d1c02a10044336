//go:build integration

package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// setupTestDB connects to the local DB for integration testing
// Skipped if TEST_DATABASE_URL is not set or connection fails
func setupTestDB(t *testing.T) *DB {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Migrate(ctx, dbURL); err != nil {
		t.Skipf("Skipping integration test: failed to migrate DB: %v", err)
	}
	db, err := Connect(ctx, dbURL)
	if err != nil {
		t.Skipf("Skipping integration test: failed to connect to DB: %v", err)
	}
	return db
}

func TestPostgres_LeadRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	require.NoError(t, db.Ping(context.Background()))
	exerciseStore(t, db)
}
