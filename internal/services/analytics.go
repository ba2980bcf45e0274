package services

import (
	"context"
	"time"

	"github.com/icalorie/icalorie-server/internal/model"
	"github.com/icalorie/icalorie-server/internal/store"
)

// AnalyticsService aggregates consumption totals over the day-log history.
type AnalyticsService struct {
	store *store.Store
}

func NewAnalyticsService(s *store.Store) *AnalyticsService {
	return &AnalyticsService{store: s}
}

// TodaySummary pairs what the user consumed today with their targets.
type TodaySummary struct {
	Totals  model.DayTotals    `json:"totals"`
	Targets model.MacroTargets `json:"targets"`
	Entries []model.MealEntry  `json:"entries"`
}

// Daily returns one totals row per calendar day for the last `days` days,
// newest last. Days without a log appear with zero totals so the series
// has no gaps.
func (a *AnalyticsService) Daily(ctx context.Context, uid string, days int) ([]model.DayTotals, error) {
	if days <= 0 {
		days = 7
	}

	logs, err := a.store.DayLogs().ListForUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]model.DayLog, len(logs))
	for _, l := range logs {
		byDate[l.Date] = l
	}

	now := time.Now()
	out := make([]model.DayTotals, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")
		totals := model.DayTotals{Date: date}
		if l, ok := byDate[date]; ok {
			totals = sumDay(l)
		}
		out = append(out, totals)
	}
	return out, nil
}

// Today returns the current day's totals, targets and raw entries.
func (a *AnalyticsService) Today(ctx context.Context, uid string) (*TodaySummary, error) {
	profile, ok, err := a.store.Profiles().Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.ErrUserNotFound
	}

	logs, err := a.store.DayLogs().ListForUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	date := time.Now().Format("2006-01-02")
	summary := &TodaySummary{
		Totals: model.DayTotals{Date: date},
		Targets: model.MacroTargets{
			Calories: profile.TargetCalories,
			Protein:  profile.TargetProtein,
			Fat:      profile.TargetFat,
			Carbs:    profile.TargetCarbs,
		},
		Entries: []model.MealEntry{},
	}
	for _, l := range logs {
		if l.Date == date {
			summary.Totals = sumDay(l)
			summary.Entries = l.Entries
			break
		}
	}
	return summary, nil
}

// sumDay folds a day's entries into totals. Calories come from the frozen
// per-entry snapshot; macro grams are summed across items.
func sumDay(l model.DayLog) model.DayTotals {
	t := model.DayTotals{Date: l.Date}
	for _, e := range l.Entries {
		t.Calories += e.TotalCalories
		for _, it := range e.Items {
			t.Protein += it.Protein
			t.Carbs += it.Carbs
			t.Fat += it.Fat
		}
	}
	return t
}
