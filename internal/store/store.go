// Package store implements the persisted collections of the application:
// credentials, user profiles, per-user day logs and the session slot.
//
// Every mutator reads the whole collection from its partition key,
// deserializes, mutates and writes it back. A single mutex serializes all
// writers in this process; concurrent writers outside the process (a second
// service instance, or the backup engine run out-of-band) are not
// coordinated and last-writer-wins.
package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/icalorie/icalorie-server/internal/kv"
	"github.com/icalorie/icalorie-server/internal/model"
)

// Store bundles the collection stores sharing one KV namespace and one
// write lock.
type Store struct {
	mu sync.Mutex
	kv kv.KV
}

// New wires a Store over the given KV backend.
func New(backend kv.KV) *Store {
	return &Store{kv: backend}
}

func (s *Store) Identity() *IdentityStore { return &IdentityStore{s} }
func (s *Store) Profiles() *ProfileStore  { return &ProfileStore{s} }
func (s *Store) DayLogs() *DayLogStore    { return &DayLogStore{s} }
func (s *Store) Session() *SessionHolder  { return &SessionHolder{s} }

// KV exposes the underlying backend for health probes.
func (s *Store) KV() kv.KV { return s.kv }

// readCredentials returns the email-keyed credential map, empty when the
// partition does not exist. The bool reports partition presence, which
// Authenticate distinguishes from an unknown email.
func (s *Store) readCredentials(ctx context.Context) (map[string]model.Credential, bool, error) {
	raw, ok, err := s.kv.Get(ctx, kv.KeyCredentials)
	if err != nil {
		return nil, false, err
	}
	creds := make(map[string]model.Credential)
	if !ok {
		return creds, false, nil
	}
	if err := json.Unmarshal(raw, &creds); err != nil {
		return nil, false, err
	}
	return creds, true, nil
}

func (s *Store) writeCredentials(ctx context.Context, creds map[string]model.Credential) error {
	raw, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, kv.KeyCredentials, raw)
}

func (s *Store) readProfiles(ctx context.Context) (map[string]model.UserProfile, error) {
	raw, ok, err := s.kv.Get(ctx, kv.KeyProfiles)
	if err != nil {
		return nil, err
	}
	users := make(map[string]model.UserProfile)
	if !ok {
		return users, nil
	}
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) writeProfiles(ctx context.Context, users map[string]model.UserProfile) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, kv.KeyProfiles, raw)
}

// readDayLogs returns the flat cross-user log sequence. The bool reports
// whether the partition exists at all; an existing empty sequence is valid.
func (s *Store) readDayLogs(ctx context.Context) ([]model.DayLog, bool, error) {
	raw, ok, err := s.kv.Get(ctx, kv.KeyDayLogs)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	var logs []model.DayLog
	if err := json.Unmarshal(raw, &logs); err != nil {
		return nil, false, err
	}
	return logs, true, nil
}

func (s *Store) writeDayLogs(ctx context.Context, logs []model.DayLog) error {
	if logs == nil {
		logs = []model.DayLog{}
	}
	raw, err := json.Marshal(logs)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, kv.KeyDayLogs, raw)
}
