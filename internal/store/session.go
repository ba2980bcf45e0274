package store

import (
	"context"

	"github.com/icalorie/icalorie-server/internal/kv"
)

// SessionHolder persists the single active-user slot. The slot holds a
// bare identifier, not a token; there is at most one session per backend.
type SessionHolder struct {
	s *Store
}

// Set records uid as the active user, replacing any previous value.
func (sh *SessionHolder) Set(ctx context.Context, uid string) error {
	sh.s.mu.Lock()
	defer sh.s.mu.Unlock()
	return sh.s.kv.Set(ctx, kv.KeySession, []byte(uid))
}

// Get returns the active user identifier, if any.
func (sh *SessionHolder) Get(ctx context.Context) (string, bool, error) {
	sh.s.mu.Lock()
	defer sh.s.mu.Unlock()
	raw, ok, err := sh.s.kv.Get(ctx, kv.KeySession)
	if err != nil || !ok {
		return "", false, err
	}
	return string(raw), true, nil
}

// Clear removes the slot. Clearing an absent slot is not an error.
func (sh *SessionHolder) Clear(ctx context.Context) error {
	sh.s.mu.Lock()
	defer sh.s.mu.Unlock()
	return sh.s.kv.Delete(ctx, kv.KeySession)
}
