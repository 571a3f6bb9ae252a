// Package sqlite is an embedded single-file store implementing the board ports.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// timeLayout keeps stored instants lexicographically ordered.
const timeLayout = "2006-01-02T15:04:05.000Z"

// reportBucketSeconds sizes the bucket behind the per-device uniqueness index.
const reportBucketSeconds = int64(15 * 60)

type Store struct {
	conn    *sql.DB
	log     *zap.Logger
	writeMu sync.Mutex
}

// Open opens path with WAL journaling and foreign keys enabled.
func Open(ctx context.Context, path string, log *zap.Logger) (*Store, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// One connection plus writeMu serializes writers.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(time.Hour)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &Store{conn: conn, log: log}, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) lockWrite() {
	s.writeMu.Lock()
}

func (s *Store) unlockWrite() {
	s.writeMu.Unlock()
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	s.lockWrite()
	defer s.unlockWrite()

	if _, err := s.conn.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure sqlite schema: %w", err)
	}

	s.log.Debug("sqlite schema ensured")
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored time %q: %w", raw, err)
	}
	return t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
