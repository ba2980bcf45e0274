// Package postgres implements kv.KV over PostgreSQL via the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/icalorie/icalorie-server/internal/kv"
)

const schema = `CREATE TABLE IF NOT EXISTS kv_entries (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// Store is a single-table KV adapter.
type Store struct {
	db *sql.DB
}

var _ kv.KV = (*Store)(nil)

// Open opens a PostgreSQL connection using the pgx stdlib driver and
// verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// New connects and ensures the schema.
func New(dsn string) (*Store, error) {
	db, err := Open(dsn)
	if err != nil {
		return nil, err
	}
	return NewWithDB(db)
}

// NewWithDB allows wiring with an existing connection.
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
	row := s.db.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = $1`, key)
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
		`INSERT INTO kv_entries (key, value) VALUES ($1,$2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, string(value))
	return err
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = $1`, key)
	return err
}

// HealthPing verifies database connectivity.
func (s *Store) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
