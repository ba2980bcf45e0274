package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icalorie/icalorie-server/internal/kv"
	"github.com/icalorie/icalorie-server/internal/model"
	"github.com/icalorie/icalorie-server/internal/store"
)

func newFixtures() (*store.Store, *AuthService, *ProfileService, *DayLogService, *AnalyticsService) {
	s := store.New(kv.NewMemory())
	return s,
		NewAuthService(s, zerolog.Nop()),
		NewProfileService(s),
		NewDayLogService(s),
		NewAnalyticsService(s)
}

func TestRegisterCreatesProfileAndSession(t *testing.T) {
	ctx := context.Background()
	s, auth, _, _, _ := newFixtures()

	profile, err := auth.Register(ctx, "a@example.com", "pw", "Ada")
	require.NoError(t, err)
	assert.NotEmpty(t, profile.ID)
	assert.Equal(t, "a@example.com", profile.Email)
	assert.Equal(t, "Ada", profile.Name)
	assert.False(t, profile.IsOnboarded)

	uid, ok, err := s.Session().Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, profile.ID, uid)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	_, auth, _, _, _ := newFixtures()

	_, err := auth.Register(ctx, "a@example.com", "pw", "Ada")
	require.NoError(t, err)
	_, err = auth.Register(ctx, "a@example.com", "pw2", "Eve")
	assert.ErrorIs(t, err, model.ErrDuplicateEmail)
}

func TestLoginRoundTrip(t *testing.T) {
	ctx := context.Background()
	_, auth, _, _, _ := newFixtures()

	created, err := auth.Register(ctx, "a@example.com", "pw", "Ada")
	require.NoError(t, err)
	require.NoError(t, auth.Logout(ctx))

	got, err := auth.Login(ctx, "a@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = auth.Login(ctx, "a@example.com", "wrong")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	_, err = auth.Login(ctx, "b@example.com", "pw")
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestResumeClearsCorruptSession(t *testing.T) {
	ctx := context.Background()
	s, auth, _, _, _ := newFixtures()

	// Session pointing at an identifier with no profile behind it.
	require.NoError(t, s.Session().Set(ctx, "ghost"))

	_, ok, err := auth.Resume(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.Session().Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "corrupt session must be cleared")
}

func TestResumeActiveSession(t *testing.T) {
	ctx := context.Background()
	_, auth, _, _, _ := newFixtures()

	created, err := auth.Register(ctx, "a@example.com", "pw", "Ada")
	require.NoError(t, err)

	got, ok, err := auth.Resume(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, created.ID, got.ID)
}

func TestProfileSaveRecomputesTargets(t *testing.T) {
	ctx := context.Background()
	_, auth, profiles, _, _ := newFixtures()

	created, err := auth.Register(ctx, "a@example.com", "pw", "Ada")
	require.NoError(t, err)

	updated, err := profiles.Save(ctx, created.ID, model.UserProfile{
		Email:         "a@example.com",
		Name:          "Ada",
		Height:        175,
		Weight:        70,
		Age:           30,
		Gender:        model.GenderMale,
		ActivityLevel: model.ActivitySedentary,
		// Client-sent targets are ignored.
		TargetCalories: 1,
	})
	require.NoError(t, err)
	assert.True(t, updated.IsOnboarded)
	assert.Equal(t, 1979, updated.TargetCalories)
	assert.Equal(t, 148, updated.TargetProtein)
	assert.Equal(t, 77, updated.TargetFat)
	assert.Equal(t, 173, updated.TargetCarbs)

	got, err := profiles.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1979, got.TargetCalories)
}

func TestProfileSaveWithoutMetricsLeavesTargetsAlone(t *testing.T) {
	ctx := context.Background()
	_, auth, profiles, _, _ := newFixtures()

	created, err := auth.Register(ctx, "a@example.com", "pw", "Ada")
	require.NoError(t, err)

	updated, err := profiles.Save(ctx, created.ID, model.UserProfile{
		Email: "a@example.com",
		Name:  "Ada Lovelace",
	})
	require.NoError(t, err)
	assert.False(t, updated.IsOnboarded)
	assert.Zero(t, updated.TargetCalories)
}

func TestProfileGetUnknown(t *testing.T) {
	_, _, profiles, _, _ := newFixtures()
	_, err := profiles.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestDayLogAppendComputesTotal(t *testing.T) {
	ctx := context.Background()
	_, _, _, daylogs, _ := newFixtures()

	logs, err := daylogs.Append(ctx, "u1", model.MealLunch, []model.FoodItem{
		{Name: "rice", Calories: 205, Protein: 4.3, Carbs: 44.5, Fat: 0.4},
		{Name: "chicken", Calories: 231, Protein: 43.4, Carbs: 0, Fat: 5},
	}, "")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Len(t, logs[0].Entries, 1)
	assert.Equal(t, 436, logs[0].Entries[0].TotalCalories)
	assert.Equal(t, model.MealLunch, logs[0].Entries[0].MealType)
}

func TestAnalyticsDailyZeroFillsMissingDays(t *testing.T) {
	ctx := context.Background()
	_, _, _, daylogs, analytics := newFixtures()

	_, err := daylogs.Append(ctx, "u1", model.MealBreakfast, []model.FoodItem{
		{Name: "oats", Calories: 300, Protein: 10, Carbs: 50, Fat: 6},
	}, "")
	require.NoError(t, err)

	rows, err := analytics.Daily(ctx, "u1", 7)
	require.NoError(t, err)
	require.Len(t, rows, 7)

	today := time.Now().Format("2006-01-02")
	last := rows[len(rows)-1]
	assert.Equal(t, today, last.Date)
	assert.Equal(t, 300, last.Calories)
	assert.InDelta(t, 10, last.Protein, 0.0001)

	for _, r := range rows[:len(rows)-1] {
		assert.Zero(t, r.Calories)
	}
}

func TestAnalyticsToday(t *testing.T) {
	ctx := context.Background()
	_, auth, profiles, daylogs, analytics := newFixtures()

	created, err := auth.Register(ctx, "a@example.com", "pw", "Ada")
	require.NoError(t, err)
	_, err = profiles.Save(ctx, created.ID, model.UserProfile{
		Height: 175, Weight: 70, Age: 30,
		Gender: model.GenderMale, ActivityLevel: model.ActivitySedentary,
	})
	require.NoError(t, err)

	_, err = daylogs.Append(ctx, created.ID, model.MealDinner, []model.FoodItem{
		{Name: "pasta", Calories: 600, Protein: 20, Carbs: 90, Fat: 15},
	}, "")
	require.NoError(t, err)

	sum, err := analytics.Today(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 600, sum.Totals.Calories)
	assert.Equal(t, 1979, sum.Targets.Calories)
	require.Len(t, sum.Entries, 1)
	assert.Equal(t, model.MealDinner, sum.Entries[0].MealType)
}

func TestAnalyticsTodayUnknownUser(t *testing.T) {
	_, _, _, _, analytics := newFixtures()
	_, err := analytics.Today(context.Background(), "ghost")
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}
