package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/nhle/meeting-tracker/internal/collection"
	"github.com/nhle/meeting-tracker/internal/model"
)

// NewTestClient creates a collection client over an in-memory SQLite
// database with all migrations applied. It automatically closes the
// client when the test completes.
func NewTestClient(t *testing.T) *collection.Client {
	t.Helper()

	db, err := collection.OpenSQL(context.Background(), model.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("creating test database: %v", err)
	}

	c := collection.NewSQLClient(db, model.DriverSQLite)
	t.Cleanup(func() {
		if err := c.Close(); err != nil {
			t.Errorf("closing test client: %v", err)
		}
	})

	return c
}

// StrPtr returns a pointer to s.
func StrPtr(s string) *string { return &s }

// TimePtr returns a pointer to t.
func TimePtr(t time.Time) *time.Time { return &t }
