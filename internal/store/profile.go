package store

import (
	"context"

	"github.com/icalorie/icalorie-server/internal/model"
)

// ProfileStore maps a user identifier to its profile record.
type ProfileStore struct {
	s *Store
}

// Put upserts a profile by identifier, replacing any existing record
// wholesale. The store performs no field validation.
func (ps *ProfileStore) Put(ctx context.Context, profile model.UserProfile) error {
	ps.s.mu.Lock()
	defer ps.s.mu.Unlock()

	users, err := ps.s.readProfiles(ctx)
	if err != nil {
		return err
	}
	users[profile.ID] = profile
	return ps.s.writeProfiles(ctx, users)
}

// Get looks up a profile. Absence is a valid, non-error outcome; callers
// holding a session that points to a missing profile must treat it as
// corrupt and clear the session themselves.
func (ps *ProfileStore) Get(ctx context.Context, uid string) (*model.UserProfile, bool, error) {
	ps.s.mu.Lock()
	defer ps.s.mu.Unlock()

	users, err := ps.s.readProfiles(ctx)
	if err != nil {
		return nil, false, err
	}
	p, ok := users[uid]
	if !ok {
		return nil, false, nil
	}
	return &p, true, nil
}
