package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/icalorie/icalorie-server/internal/model"
)

// IdentityStore maps credentials to user identifiers. It exposes no update
// or delete operations; password change is out of scope.
type IdentityStore struct {
	s *Store
}

// Register stores a credential for a new email and returns the freshly
// minted identifier. It does not create a profile; that is the caller's
// job. Fails with model.ErrDuplicateEmail without mutating anything when
// the email is already present.
func (is *IdentityStore) Register(ctx context.Context, email, password string) (string, error) {
	is.s.mu.Lock()
	defer is.s.mu.Unlock()

	creds, _, err := is.s.readCredentials(ctx)
	if err != nil {
		return "", err
	}
	if _, exists := creds[email]; exists {
		return "", model.ErrDuplicateEmail
	}

	uid := uuid.New().String()
	creds[email] = model.Credential{Password: password, UID: uid}
	if err := is.s.writeCredentials(ctx, creds); err != nil {
		return "", err
	}
	return uid, nil
}

// Authenticate resolves an email/password pair to its identifier.
// An absent credential partition or unknown email is model.ErrUserNotFound;
// a wrong password is model.ErrInvalidCredentials.
func (is *IdentityStore) Authenticate(ctx context.Context, email, password string) (string, error) {
	is.s.mu.Lock()
	defer is.s.mu.Unlock()

	creds, ok, err := is.s.readCredentials(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", model.ErrUserNotFound
	}
	cred, found := creds[email]
	if !found {
		return "", model.ErrUserNotFound
	}
	if cred.Password != password {
		return "", model.ErrInvalidCredentials
	}
	return cred.UID, nil
}
