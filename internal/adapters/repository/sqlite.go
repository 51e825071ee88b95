package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/okian/pxpstats/pkg/logger"
	"github.com/okian/pxpstats/pkg/metrics"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// SQLiteStore is the Store backed by a SQLite database file.
type SQLiteStore struct {
	db           *sql.DB
	path         string
	maxOpenConns int
	busyTimeout  time.Duration
	logger       logger.Logger
}

var _ Store = (*SQLiteStore)(nil)

// Open opens the database at path, verifies it and applies migrations.
func Open(ctx context.Context, path string, opts ...Option) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrNoPath
	}

	s := &SQLiteStore{
		path:         filepath.Clean(path),
		maxOpenConns: 8,
		busyTimeout:  5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Nop()
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=synchronous(NORMAL)",
		s.path, s.busyTimeout.Milliseconds())
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(s.maxOpenConns)
	db.SetMaxIdleConns(s.maxOpenConns)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	migrations := NewMigrationRunner(db)
	if err := migrations.Run(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	version, err := migrations.Version(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("read schema version: %w", err)
	}
	s.db = db

	s.logger.Info(ctx, "event store opened",
		logger.String("path", s.path),
		logger.Int("schemaVersion", version),
		logger.Int("maxOpenConns", s.maxOpenConns))
	return s, nil
}

// Acquire checks out one pooled connection for the caller.
func (s *SQLiteStore) Acquire(ctx context.Context) (Session, error) {
	if s == nil || s.db == nil {
		return nil, ErrNotConfigured
	}
	conn, err := s.db.Conn(ctx)
	if err != nil {
		metrics.RecordStoreError("acquire")
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	metrics.IncStoreSessions()
	return &session{conn: conn}, nil
}

// Close closes the pool. Sessions still held fail on their next query.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
