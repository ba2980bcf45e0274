package services

import (
	"context"

	"github.com/icalorie/icalorie-server/internal/model"
	"github.com/icalorie/icalorie-server/internal/nutrition"
	"github.com/icalorie/icalorie-server/internal/store"
)

// ProfileService reads and updates user profiles, keeping computed macro
// targets in sync with body metrics.
type ProfileService struct {
	store *store.Store
}

func NewProfileService(s *store.Store) *ProfileService {
	return &ProfileService{store: s}
}

// Get returns the profile for uid or model.ErrUserNotFound.
func (p *ProfileService) Get(ctx context.Context, uid string) (*model.UserProfile, error) {
	profile, ok, err := p.store.Profiles().Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return profile, nil
}

// Save upserts the profile for uid. When the body metrics are complete the
// macro targets are recomputed server-side, overriding whatever the client
// sent, and the profile is marked onboarded.
func (p *ProfileService) Save(ctx context.Context, uid string, profile model.UserProfile) (*model.UserProfile, error) {
	profile.ID = uid

	if profile.Height > 0 && profile.Weight > 0 && profile.Age > 0 && profile.Gender != "" && profile.ActivityLevel != "" {
		targets := nutrition.Targets(profile.Weight, profile.Height, profile.Age, profile.Gender, profile.ActivityLevel)
		profile.TargetCalories = targets.Calories
		profile.TargetProtein = targets.Protein
		profile.TargetFat = targets.Fat
		profile.TargetCarbs = targets.Carbs
		profile.IsOnboarded = true
	}

	if err := p.store.Profiles().Put(ctx, profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
