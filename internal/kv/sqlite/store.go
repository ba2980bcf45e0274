// Package sqlite implements kv.KV over an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/icalorie/icalorie-server/internal/kv"
)

const schema = `CREATE TABLE IF NOT EXISTS KVEntries (
	Key   TEXT PRIMARY KEY,
	Value TEXT NOT NULL
)`

// Store is a single-table KV adapter.
type Store struct {
	db *sql.DB
}

var _ kv.KV = (*Store)(nil)

// New opens (or creates) the database file and ensures the schema.
func New(path string) (*Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return NewWithDB(db)
}

// NewWithDB allows wiring with an existing connection (used by the factory
// and tests).
func NewWithDB(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// DB exposes the underlying *sql.DB connection (health probes).
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	row := s.db.QueryRowContext(ctx, `SELECT Value FROM KVEntries WHERE Key = ?`, key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO KVEntries (Key, Value) VALUES (?,?)
		 ON CONFLICT(Key) DO UPDATE SET Value = excluded.Value`,
		key, string(value))
	return err
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM KVEntries WHERE Key = ?`, key)
	return err
}

// HealthPing verifies database connectivity.
func (s *Store) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
