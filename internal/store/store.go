// Package store persists items, the event log and snapshots in SQLite.
// Tables come from the ent schemas; queries use ent's SQL builders.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	_ "modernc.org/sqlite"
)

// pragmas run on every new connection.
var pragmas = []string{
	"journal_mode(WAL)",
	"busy_timeout(5000)",
	"foreign_keys(1)",
	"synchronous(NORMAL)",
}

// Store owns the database connection and hands out the repositories that
// share it.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
	seq *sequenceCounter
	ids *idSource
}

// Open connects to dsn, a file path or a "file:" URI, and brings the
// schema up to date.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", withPragmas(dsn))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}
	db.SetMaxOpenConns(1)
	drv := entsql.OpenDB(dialect.SQLite, db)

	s := &Store{db: db, drv: drv, ids: newIDSource()}
	if err := s.prepare(); err != nil {
		drv.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) prepare() error {
	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	if err := migrate(context.Background(), s.drv); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	seq, err := newSequenceCounter(s.db)
	if err != nil {
		return err
	}
	s.seq = seq
	return nil
}

func withPragmas(dsn string) string {
	q := make(url.Values)
	q["_pragma"] = pragmas
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + q.Encode()
}

// DB returns the underlying connection, for maintenance and tests.
func (s *Store) DB() *sql.DB { return s.db }

// Close closes the database.
func (s *Store) Close() error { return s.drv.Close() }

// ItemRepo returns the repository of learning items.
func (s *Store) ItemRepo() ItemRepo { return &itemRepo{db: s.db} }

// SnapshotRepo returns the repository of progress snapshots.
func (s *Store) SnapshotRepo() SnapshotRepo { return &snapshotRepo{db: s.db} }

// EventRepo returns the event log. All event repos of a Store share one
// sequence counter.
func (s *Store) EventRepo() EventRepo { return &eventRepo{db: s.db, seq: s.seq, ids: s.ids} }

func builder() *entsql.DialectBuilder { return entsql.Dialect(dialect.SQLite) }

// DataDir returns where the database lives by default, following the XDG
// base directory layout.
func DataDir() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("home dir: %w", err)
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "alefba"), nil
}

// EnsureDir creates the parent directory of path.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
