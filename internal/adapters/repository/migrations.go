package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// migration represents a single schema migration.
type migration struct {
	Version int
	Name    string
	Apply   func(ctx context.Context, tx *sql.Tx) error
}

// MigrationRunner applies pending migrations to a SQLite database.
type MigrationRunner struct {
	db         *sql.DB
	migrations []migration
}

// NewMigrationRunner creates a MigrationRunner with all registered migrations.
func NewMigrationRunner(db *sql.DB) *MigrationRunner {
	return &MigrationRunner{
		db: db,
		migrations: []migration{
			{Version: 1, Name: "play_by_play", Apply: migrateV001},
			{Version: 2, Name: "play_by_play_indexes", Apply: migrateV002},
		},
	}
}

// Run enables WAL mode, creates the schema_migrations tracking table, then
// applies each migration that hasn't been recorded yet.
func (r *MigrationRunner) Run(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
		return fmt.Errorf("set WAL mode: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	for _, m := range r.migrations {
		applied, err := r.isApplied(ctx, m.Version)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if applied {
			continue
		}

		if err := r.apply(ctx, m); err != nil {
			return fmt.Errorf("apply migration %d (%s): %w", m.Version, m.Name, err)
		}
	}

	return nil
}

// Version returns the highest applied migration, 0 for a fresh database.
func (r *MigrationRunner) Version(ctx context.Context) (int, error) {
	var v sql.NullInt64
	if err := r.db.QueryRowContext(ctx, "SELECT MAX(version) FROM schema_migrations").Scan(&v); err != nil {
		return 0, err
	}
	return int(v.Int64), nil
}

func (r *MigrationRunner) isApplied(ctx context.Context, version int) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM schema_migrations WHERE version = ?", version,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// apply executes a migration inside a transaction and records it.
func (r *MigrationRunner) apply(ctx context.Context, m migration) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := m.Apply(ctx, tx); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
		m.Version, m.Name,
	); err != nil {
		return fmt.Errorf("record migration: %w", err)
	}

	return tx.Commit()
}

// game_date is TEXT on purpose: a DATE column would be decoded into
// time.Time by the driver.
func migrateV001(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE play_by_play (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			game_date        TEXT    NOT NULL,
			season_year      INTEGER NOT NULL,
			team_name        TEXT    NOT NULL,
			opp_team_name    TEXT    NOT NULL,
			venue            TEXT    NOT NULL DEFAULT '',
			period           INTEGER NOT NULL,
			clock_seconds    INTEGER NOT NULL,
			situation_type   TEXT    NOT NULL DEFAULT '',
			goals_for        INTEGER NOT NULL DEFAULT 0,
			goals_against    INTEGER NOT NULL DEFAULT 0,
			player_name      TEXT,
			event            TEXT    NOT NULL,
			event_successful INTEGER NOT NULL CHECK (event_successful IN (0, 1)),
			x_coord          REAL,
			y_coord          REAL,
			event_type       TEXT,
			player_name_2    TEXT,
			x_coord_2        REAL,
			y_coord_2        REAL,
			event_detail_1   TEXT,
			event_detail_2   TEXT,
			event_detail_3   TEXT
		)
	`)
	if err != nil {
		return fmt.Errorf("create play_by_play: %w", err)
	}
	return nil
}

func migrateV002(ctx context.Context, tx *sql.Tx) error {
	for _, stmt := range []string{
		"CREATE INDEX idx_pbp_game ON play_by_play (game_date, team_name, opp_team_name)",
		"CREATE INDEX idx_pbp_team ON play_by_play (team_name)",
		"CREATE INDEX idx_pbp_player ON play_by_play (player_name)",
		"CREATE INDEX idx_pbp_event ON play_by_play (event)",
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}
