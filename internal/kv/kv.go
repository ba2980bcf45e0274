// Package kv defines the key-value capability the stores are built on.
// Implementations live under internal/kv/<driver>/ (sqlite, postgres)
// plus an in-memory driver for tests.
package kv

import "context"

// Partition keys. The three collection keys and the session slot form the
// persisted namespace contract; every driver must store them verbatim so
// that data written by one driver (or exported by the backup engine) keeps
// its shape under another.
const (
	KeyCredentials = "icalorie_auth_creds"
	KeyProfiles    = "icalorie_db_users"
	KeyDayLogs     = "icalorie_db_logs"
	KeySession     = "icalorie_session_uid"
)

// KV is a minimal get/set/delete capability over string keys and opaque
// UTF-8 values. Get reports absence as (nil, false, nil), never an error.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
