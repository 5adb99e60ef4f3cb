package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

// newTestDB opens a migrated database in a temporary directory.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return db
}

// seedCaseFile creates a case with one file and returns both.
func seedCaseFile(t *testing.T, db *sql.DB) (*Case, *CaseFile) {
	t.Helper()
	ctx := context.Background()
	c, err := NewCaseRepo(db).Create(ctx, "Doe v. Roe", "contract dispute")
	if err != nil {
		t.Fatalf("Create case error = %v", err)
	}
	f, err := NewFileRepo(db).Create(ctx, c.ID, "complaint.pdf", "application/pdf")
	if err != nil {
		t.Fatalf("Create file error = %v", err)
	}
	return c, f
}

func strPtr(s string) *string { return &s }
