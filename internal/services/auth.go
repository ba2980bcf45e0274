// Package services implements the application operations on top of the
// collection stores.
package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/icalorie/icalorie-server/internal/model"
	"github.com/icalorie/icalorie-server/internal/store"
)

// AuthService handles registration, login and session resumption.
type AuthService struct {
	store *store.Store
	log   zerolog.Logger
}

func NewAuthService(s *store.Store, log zerolog.Logger) *AuthService {
	return &AuthService{store: s, log: log}
}

// Register creates a credential and a minimal profile, then activates the
// session. The new user is not onboarded; targets are filled in when the
// profile is completed.
func (a *AuthService) Register(ctx context.Context, email, password, name string) (*model.UserProfile, error) {
	uid, err := a.store.Identity().Register(ctx, email, password)
	if err != nil {
		return nil, err
	}

	profile := model.UserProfile{
		ID:          uid,
		Email:       email,
		Name:        name,
		IsOnboarded: false,
	}
	if err := a.store.Profiles().Put(ctx, profile); err != nil {
		return nil, err
	}
	if err := a.store.Session().Set(ctx, uid); err != nil {
		return nil, err
	}

	a.log.Info().Str("user_id", uid).Msg("user registered")
	return &profile, nil
}

// Login verifies the credential, loads the profile and activates the
// session. A credential whose profile record is missing is treated as
// corrupt rather than invalid.
func (a *AuthService) Login(ctx context.Context, email, password string) (*model.UserProfile, error) {
	uid, err := a.store.Identity().Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	profile, ok, err := a.store.Profiles().Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.ErrCorruptProfile
	}
	if err := a.store.Session().Set(ctx, uid); err != nil {
		return nil, err
	}
	return profile, nil
}

// Resume returns the profile behind the active session, if any. A session
// pointing at a missing profile is corrupt: the slot is cleared and no
// session is reported.
func (a *AuthService) Resume(ctx context.Context) (*model.UserProfile, bool, error) {
	uid, ok, err := a.store.Session().Get(ctx)
	if err != nil || !ok {
		return nil, false, err
	}

	profile, found, err := a.store.Profiles().Get(ctx, uid)
	if err != nil {
		return nil, false, err
	}
	if !found {
		a.log.Warn().Str("user_id", uid).Msg("session points at missing profile, clearing")
		if err := a.store.Session().Clear(ctx); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}
	return profile, true, nil
}

// Logout clears the session slot.
func (a *AuthService) Logout(ctx context.Context) error {
	return a.store.Session().Clear(ctx)
}
