// ABOUTME: Tests for SQLite store initialization and schema migrations.
// ABOUTME: Verifies database setup, table creation and reset.

package store

import (
	"context"
	"path/filepath"
	"testing"
)

func TestNewStore_CreatesDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_realty.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close()

	tables := []string{"schema_migrations", "request_logs", "records"}
	for _, table := range tables {
		var name string
		err := s.db.Get(&name, "SELECT name FROM sqlite_master WHERE type='table' AND name=?", table)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}

	version, err := s.currentMigrationVersion()
	if err != nil {
		t.Fatalf("currentMigrationVersion() error = %v", err)
	}
	if version != CurrentSchemaVersion {
		t.Errorf("schema version = %d, want %d", version, CurrentSchemaVersion)
	}
}

func TestNewStore_ReopenIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_realty.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := s.CreateRecord(context.Background(), "properties", map[string]any{"name": "Loft"}); err != nil {
		t.Fatalf("CreateRecord() error = %v", err)
	}
	s.Close()

	s, err = New(dbPath)
	if err != nil {
		t.Fatalf("second New() error = %v", err)
	}
	defer s.Close()

	var migrations int
	if err := s.db.Get(&migrations, "SELECT COUNT(*) FROM schema_migrations"); err != nil {
		t.Fatal(err)
	}
	if migrations != CurrentSchemaVersion {
		t.Errorf("schema_migrations rows = %d, want %d", migrations, CurrentSchemaVersion)
	}

	records, err := s.ListRecords(context.Background(), "properties")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Errorf("records after reopen = %d, want 1", len(records))
	}
}

func TestStore_Reset(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	if _, err := s.CreateRecord(ctx, "partners", map[string]any{"name": "Acme"}); err != nil {
		t.Fatal(err)
	}
	if err := s.LogRequest(&RequestLog{Method: "GET", Path: "/api/partners", StatusCode: 200}); err != nil {
		t.Fatal(err)
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	counts, err := s.CountRecords(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(counts) != 0 {
		t.Errorf("CountRecords() after reset = %v", counts)
	}
	stats, err := s.GetRequestLogStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalRequests != 0 {
		t.Errorf("TotalRequests after reset = %d", stats.TotalRequests)
	}
}

// Helper to setup a test database
func setupTestDB(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}
