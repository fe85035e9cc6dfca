package database

import (
	"context"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// Store is the SQL-backed persistence layer for guild settings, moderation roles,
// auto-responses and moderation cases.
type Store struct {
	db     *sqlx.DB
	driver string
}

// Open connects to the database and ensures all necessary tables are created.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if driver == DriverSQLite {
		// sqlite allows a single writer; an in-memory database also lives on one connection.
		db.SetMaxOpenConns(1)
	}

	s := &Store{db: db, driver: driver}
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// DB exposes the underlying handle.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

func (s *Store) Driver() string {
	return s.driver
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Migrate creates missing tables and indexes. It is safe to run repeatedly.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema(s.driver) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func schema(driver string) []string {
	serial := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if driver == DriverPostgres {
		serial = "BIGSERIAL PRIMARY KEY"
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS guilds (
			guild_id TEXT NOT NULL PRIMARY KEY,
			prefix TEXT NOT NULL,
			mod_log_channel_id TEXT,
			created_at BIGINT NOT NULL,
			updated_at BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS moderation_roles (
			guild_id TEXT NOT NULL PRIMARY KEY,
			admin_role_id TEXT,
			mod_role_id TEXT,
			moderation_role_id TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS autoresponses (
			id TEXT NOT NULL PRIMARY KEY,
			guild_id TEXT NOT NULL,
			trigger_text TEXT NOT NULL,
			response TEXT NOT NULL,
			enabled BOOLEAN NOT NULL DEFAULT TRUE,
			allowed_channel_id TEXT,
			extra_text BOOLEAN NOT NULL DEFAULT FALSE,
			mentions BOOLEAN NOT NULL DEFAULT FALSE,
			created_by TEXT NOT NULL,
			created_at BIGINT NOT NULL,
			updated_at BIGINT NOT NULL,
			UNIQUE (guild_id, trigger_text)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_autoresponses_guild_enabled ON autoresponses (guild_id, enabled)`,
		`CREATE TABLE IF NOT EXISTS mod_logs (
			id ` + serial + `,
			case_id BIGINT NOT NULL,
			guild_id TEXT NOT NULL,
			moderator TEXT NOT NULL,
			target TEXT NOT NULL,
			reason TEXT NOT NULL,
			type TEXT NOT NULL,
			message TEXT NOT NULL DEFAULT '',
			channel TEXT NOT NULL DEFAULT '',
			timestamp BIGINT NOT NULL,
			UNIQUE (guild_id, case_id)
		)`,
	}
	// sqlite orders autoresponses by rowid instead
	if driver == DriverPostgres {
		stmts = append(stmts, `ALTER TABLE autoresponses ADD COLUMN IF NOT EXISTS seq BIGSERIAL`)
	}
	return stmts
}

func firstLine(stmt string) string {
	if i := strings.IndexByte(stmt, '\n'); i >= 0 {
		return stmt[:i]
	}
	return stmt
}
