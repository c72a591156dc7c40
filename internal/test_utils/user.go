package test_utils

import (
	"database/sql"
	"testing"
	"time"
)

// InsertTestUser seeds a user row so that event rows can reference it.
func InsertTestUser(t *testing.T, db *sql.DB, uid string, email string) {
	t.Helper()

	_, err := db.Exec(`INSERT INTO users (uid, email, display_name, created_at) VALUES ($1, $2, $3, $4)`,
		uid, email, "Test User", time.Now().UnixMilli())
	if err != nil {
		t.Fatalf("Failed to insert test user: %v", err)
	}
}
