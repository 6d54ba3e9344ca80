package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a fatal
// error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS pricing_models (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					description TEXT,
					icon TEXT,
					rate_tables TEXT,
					created_at DATETIME NOT NULL,
					updated_at DATETIME NOT NULL
				)`,

				`CREATE TABLE IF NOT EXISTS workflows (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					description TEXT,
					stages TEXT NOT NULL DEFAULT '[]'
				)`,

				`CREATE TABLE IF NOT EXISTS clients (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					spouse_name TEXT,
					email TEXT,
					phone TEXT,
					address TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS jobs (
					id TEXT PRIMARY KEY,
					client_id TEXT,
					client_name TEXT NOT NULL,
					spouse_name TEXT,
					address TEXT,
					phone TEXT,
					email TEXT,
					trade TEXT,
					status TEXT NOT NULL,
					job_size TEXT NOT NULL,
					priority TEXT,
					notes TEXT,
					total REAL NOT NULL DEFAULT 0,
					paid REAL NOT NULL DEFAULT 0,
					balance REAL NOT NULL DEFAULT 0,
					checklist TEXT NOT NULL DEFAULT '[]',
					questionnaire TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (client_id) REFERENCES clients(id)
				)`,
				`CREATE INDEX idx_jobs_status ON jobs(status)`,
				`CREATE INDEX idx_jobs_client ON jobs(client_name)`,
			}

			for _, q := range queries {
				if _, err := tx.Exec(q); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Add users table for mock authentication",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS users (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					email TEXT UNIQUE NOT NULL,
					role TEXT NOT NULL,
					password TEXT NOT NULL
				)`,
				`CREATE INDEX idx_users_email ON users(email)`,
			}

			for _, q := range queries {
				if _, err := tx.Exec(q); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Add notification triggers and per-job communication logs",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS notification_triggers (
					id TEXT PRIMARY KEY,
					title TEXT NOT NULL,
					stage TEXT NOT NULL,
					template TEXT NOT NULL,
					enabled INTEGER NOT NULL DEFAULT 1
				)`,
				`ALTER TABLE jobs ADD COLUMN communications TEXT NOT NULL DEFAULT '[]'`,
			}

			for _, q := range queries {
				if _, err := tx.Exec(q); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	// Get current version
	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	// Apply migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		// Update version
		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	// Verify we're at the expected schema version
	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
