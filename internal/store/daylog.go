package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/icalorie/icalorie-server/internal/model"
)

// DayLogStore manages the flat cross-user sequence of per-day logs.
// Only the log for the current local day is ever mutated; past days are
// immutable history.
type DayLogStore struct {
	s *Store
}

// today returns the current local calendar date in YYYY-MM-DD form.
func today() string {
	return time.Now().Format("2006-01-02")
}

// ListForUser returns the user's logs in stored order. An unknown user or
// an absent partition yields an empty slice, never an error.
func (ds *DayLogStore) ListForUser(ctx context.Context, uid string) ([]model.DayLog, error) {
	ds.s.mu.Lock()
	defer ds.s.mu.Unlock()

	logs, _, err := ds.s.readDayLogs(ctx)
	if err != nil {
		return nil, err
	}
	return filterByUser(logs, uid), nil
}

// AppendEntry adds an entry to the user's log for the current local day,
// creating the day log if it does not exist yet. The entry's identifier
// and timestamp are minted here. Returns the user's logs after the write.
func (ds *DayLogStore) AppendEntry(ctx context.Context, uid string, entry model.MealEntry) ([]model.DayLog, error) {
	ds.s.mu.Lock()
	defer ds.s.mu.Unlock()

	logs, _, err := ds.s.readDayLogs(ctx)
	if err != nil {
		return nil, err
	}

	entry.ID = uuid.New().String()
	entry.Timestamp = time.Now().UnixMilli()

	date := today()
	idx := -1
	for i, l := range logs {
		if l.Date == date && l.UserID == uid {
			idx = i
			break
		}
	}
	if idx >= 0 {
		logs[idx].Entries = append(logs[idx].Entries, entry)
	} else {
		logs = append(logs, model.DayLog{
			Date:    date,
			UserID:  uid,
			Entries: []model.MealEntry{entry},
		})
	}

	if err := ds.s.writeDayLogs(ctx, logs); err != nil {
		return nil, err
	}
	return filterByUser(logs, uid), nil
}

// DeleteEntry removes an entry from the user's log for the current local
// day. A missing collection yields an empty slice; a collection without a
// log for today is left untouched and the user's logs are returned as-is.
// An unknown entry id within today's log is likewise a no-op. Entries in
// past days are never removed.
func (ds *DayLogStore) DeleteEntry(ctx context.Context, uid, entryID string) ([]model.DayLog, error) {
	ds.s.mu.Lock()
	defer ds.s.mu.Unlock()

	logs, ok, err := ds.s.readDayLogs(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []model.DayLog{}, nil
	}

	date := today()
	for i, l := range logs {
		if l.Date != date || l.UserID != uid {
			continue
		}
		kept := make([]model.MealEntry, 0, len(l.Entries))
		for _, e := range l.Entries {
			if e.ID != entryID {
				kept = append(kept, e)
			}
		}
		if len(kept) == len(l.Entries) {
			break
		}
		logs[i].Entries = kept
		if err := ds.s.writeDayLogs(ctx, logs); err != nil {
			return nil, err
		}
		break
	}
	return filterByUser(logs, uid), nil
}

func filterByUser(logs []model.DayLog, uid string) []model.DayLog {
	out := make([]model.DayLog, 0, len(logs))
	for _, l := range logs {
		if l.UserID == uid {
			out = append(out, l)
		}
	}
	return out
}
