package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. Failing to reach it is fatal.
const ExpectedSchemaVersion = 2

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
				`CREATE TABLE IF NOT EXISTS clients (
					id TEXT PRIMARY KEY,
					user_id TEXT NOT NULL,
					name TEXT NOT NULL,
					contract_period TEXT NOT NULL DEFAULT '',
					status TEXT NOT NULL DEFAULT 'Hold',
					practice_area TEXT NOT NULL DEFAULT '',
					relationship_strength INTEGER NOT NULL DEFAULT 5,
					conflict_risk TEXT NOT NULL DEFAULT 'Medium',
					time_commitment REAL NOT NULL DEFAULT 10,
					renewal_probability REAL NOT NULL DEFAULT 0.7,
					strategic_fit INTEGER NOT NULL DEFAULT 5,
					notes TEXT NOT NULL DEFAULT '',
					primary_lobbyist TEXT NOT NULL DEFAULT '',
					client_originator TEXT NOT NULL DEFAULT '',
					lobbyist_team TEXT NOT NULL DEFAULT '',
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE UNIQUE INDEX idx_clients_user_name ON clients(user_id, name COLLATE NOCASE)`,
				`CREATE INDEX idx_clients_status ON clients(status)`,

				`CREATE TABLE IF NOT EXISTS revenues (
					client_id TEXT NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
					year INTEGER NOT NULL,
					amount REAL NOT NULL DEFAULT 0,
					PRIMARY KEY (client_id, year)
				)`,
				`CREATE INDEX idx_revenues_year ON revenues(year)`,
			}
			for _, q := range queries {
				if _, err := tx.Exec(q); err != nil {
					return fmt.Errorf("failed to execute %q: %w", q[:40], err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Interaction tracking fields",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`ALTER TABLE clients ADD COLUMN interaction_frequency TEXT NOT NULL DEFAULT ''`,
				`ALTER TABLE clients ADD COLUMN relationship_intensity TEXT NOT NULL DEFAULT ''`,
			}
			for _, q := range queries {
				if _, err := tx.Exec(q); err != nil {
					return fmt.Errorf("failed to execute %q: %w", q[:40], err)
				}
			}
			return nil
		},
	},
}

// Migrate brings the database schema up to the expected version.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_versions (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			description TEXT
		)`); err != nil {
		return fmt.Errorf("failed to create schema_versions table: %w", err)
	}

	var current int
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_versions`).Scan(&current)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		slog.Info("Applying migration", "version", m.Version, "description", m.Description)

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
		}

		if err := m.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", m.Version, err)
		}

		if _, err := tx.Exec(`INSERT INTO schema_versions (version, description) VALUES (?, ?)`,
			m.Version, m.Description); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}
	}

	var final int
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_versions`).Scan(&final); err != nil {
		return fmt.Errorf("failed to verify schema version: %w", err)
	}
	if final < ExpectedSchemaVersion {
		return fmt.Errorf("schema at version %d, expected %d", final, ExpectedSchemaVersion)
	}
	return nil
}
