package services

import (
	"context"

	"github.com/icalorie/icalorie-server/internal/model"
	"github.com/icalorie/icalorie-server/internal/store"
)

// DayLogService wraps the day-log store, computing the per-entry calorie
// snapshot at append time.
type DayLogService struct {
	store *store.Store
}

func NewDayLogService(s *store.Store) *DayLogService {
	return &DayLogService{store: s}
}

// List returns all of the user's day logs.
func (d *DayLogService) List(ctx context.Context, uid string) ([]model.DayLog, error) {
	return d.store.DayLogs().ListForUser(ctx, uid)
}

// Append records a meal for the current day. TotalCalories is summed from
// the items here and frozen; later item edits do not revise it.
func (d *DayLogService) Append(ctx context.Context, uid string, mealType model.MealType, items []model.FoodItem, image string) ([]model.DayLog, error) {
	total := 0
	for _, it := range items {
		total += it.Calories
	}
	entry := model.MealEntry{
		MealType:      mealType,
		Items:         items,
		TotalCalories: total,
		Image:         image,
	}
	return d.store.DayLogs().AppendEntry(ctx, uid, entry)
}

// Delete removes an entry from today's log.
func (d *DayLogService) Delete(ctx context.Context, uid, entryID string) ([]model.DayLog, error) {
	return d.store.DayLogs().DeleteEntry(ctx, uid, entryID)
}
