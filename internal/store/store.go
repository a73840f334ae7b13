// ABOUTME: Core SQLite store for the realty server.
// ABOUTME: Handles database initialization, migrations, and connection management.

package store

import (
	"fmt"

	"github.com/2389/realty/internal/logger"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Migration version constants
const (
	MigrationV1 = 1 // request_logs table
	MigrationV2 = 2 // composite indexes for aggregation and filtering queries
	MigrationV3 = 3 // generic resource records
)

// CurrentSchemaVersion is the target version for the database schema
const CurrentSchemaVersion = MigrationV3

type Store struct {
	db *sqlx.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// In-memory databases are per connection, so tests need a single one.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
	}
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying connection.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// migrate runs all pending migrations
func (s *Store) migrate() error {
	if err := s.createMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	currentVersion, err := s.currentMigrationVersion()
	if err != nil {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	logger.Log.Debugf("Database schema version: %d, target version: %d", currentVersion, CurrentSchemaVersion)

	steps := []struct {
		version int
		run     func() error
	}{
		{MigrationV1, s.migrateV1},
		{MigrationV2, s.migrateV2},
		{MigrationV3, s.migrateV3},
	}
	for _, step := range steps {
		if currentVersion >= step.version {
			continue
		}
		if err := step.run(); err != nil {
			return fmt.Errorf("migration v%d failed: %w", step.version, err)
		}
	}

	return nil
}

func (s *Store) createMigrationsTable() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			description TEXT
		)
	`)
	return err
}

func (s *Store) currentMigrationVersion() (int, error) {
	var version int
	err := s.db.Get(&version, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`)
	return version, err
}

func (s *Store) recordMigration(version int, description string) error {
	_, err := s.db.Exec(`
		INSERT INTO schema_migrations (version, description)
		VALUES (?, ?)
	`, version, description)
	if err == nil {
		logger.Log.Infof("Applied migration v%d: %s", version, description)
	}
	return err
}

// migrateV1 creates the request_logs table and its basic indexes
func (s *Store) migrateV1() error {
	schema := `
	CREATE TABLE IF NOT EXISTS request_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		resource TEXT DEFAULT '',
		method TEXT NOT NULL,
		path TEXT NOT NULL,
		status_code INTEGER,
		duration_ms INTEGER,
		user_id TEXT,
		ip_address TEXT,
		user_agent TEXT,
		request_body TEXT,
		response_body TEXT,
		error TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_request_logs_timestamp ON request_logs(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_request_logs_path ON request_logs(path);
	CREATE INDEX IF NOT EXISTS idx_request_logs_status ON request_logs(status_code);
	CREATE INDEX IF NOT EXISTS idx_request_logs_resource ON request_logs(resource);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return s.recordMigration(MigrationV1, "Create request_logs table and indexes")
}

// migrateV2 adds composite indexes for the dashboard and log filters
func (s *Store) migrateV2() error {
	indexes := []string{
		// GetTopEndpoints groups by path
		"CREATE INDEX IF NOT EXISTS idx_request_logs_path_count ON request_logs(path, status_code)",
		// per-resource counts and error rates over a time window
		"CREATE INDEX IF NOT EXISTS idx_request_logs_resource_timestamp ON request_logs(resource, timestamp DESC)",
		"CREATE INDEX IF NOT EXISTS idx_request_logs_resource_method_status ON request_logs(resource, method, status_code)",
		"CREATE INDEX IF NOT EXISTS idx_request_logs_user_id ON request_logs(user_id) WHERE user_id != ''",
		"CREATE INDEX IF NOT EXISTS idx_request_logs_timestamp_status ON request_logs(timestamp DESC, status_code)",
	}

	for _, indexSQL := range indexes {
		if _, err := s.db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return s.recordMigration(MigrationV2, "Add composite indexes for aggregation and filtering queries")
}

// migrateV3 creates the records table holding every console resource as JSON
func (s *Store) migrateV3() error {
	schema := `
	CREATE TABLE IF NOT EXISTS records (
		resource TEXT NOT NULL,
		id TEXT NOT NULL,
		data TEXT NOT NULL DEFAULT '{}',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (resource, id)
	);

	CREATE INDEX IF NOT EXISTS idx_records_resource_created ON records(resource, created_at DESC);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return s.recordMigration(MigrationV3, "Create records table")
}

// Reset deletes every record and request log.
func (s *Store) Reset() error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"records", "request_logs"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return tx.Commit()
}
