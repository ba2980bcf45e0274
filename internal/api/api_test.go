package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icalorie/icalorie-server/internal/analysis"
	"github.com/icalorie/icalorie-server/internal/backup"
	"github.com/icalorie/icalorie-server/internal/kv"
	"github.com/icalorie/icalorie-server/internal/model"
	"github.com/icalorie/icalorie-server/internal/services"
	"github.com/icalorie/icalorie-server/internal/store"
)

// newTestServer wires the full router over in-memory storage. The analysis
// client points at the optional upstream; pass "" when a test never calls
// the analysis routes.
func newTestServer(t *testing.T, analysisURL string) *httptest.Server {
	t.Helper()
	backend := kv.NewMemory()
	s := store.New(backend)
	log := zerolog.Nop()

	srv := httptest.NewServer(NewRouter(Deps{
		Auth:      services.NewAuthService(s, log),
		Profiles:  services.NewProfileService(s),
		DayLogs:   services.NewDayLogService(s),
		Analytics: services.NewAnalyticsService(s),
		Backup:    backup.New(backend, log),
		Analysis:  analysis.New(analysisURL, 5*time.Second),
		Health:    nil,
		Log:       log,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func registerUser(t *testing.T, base, email string) model.UserProfile {
	t.Helper()
	resp := postJSON(t, base+"/api/auth/register", map[string]string{
		"email": email, "password": "pw", "name": "Test",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var p model.UserProfile
	decode(t, resp, &p)
	return p
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, "")
	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterLoginSessionFlow(t *testing.T) {
	srv := newTestServer(t, "")

	created := registerUser(t, srv.URL, "a@example.com")
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.IsOnboarded)

	// Registration activated the session.
	resp, err := http.Get(srv.URL + "/api/auth/session")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var active model.UserProfile
	decode(t, resp, &active)
	assert.Equal(t, created.ID, active.ID)

	// Duplicate email conflicts.
	resp = postJSON(t, srv.URL+"/api/auth/register", map[string]string{
		"email": "a@example.com", "password": "x", "name": "Other",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Logout, then no session.
	resp = postJSON(t, srv.URL+"/api/auth/logout", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/auth/session")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Login with wrong password.
	resp = postJSON(t, srv.URL+"/api/auth/login", map[string]string{
		"email": "a@example.com", "password": "wrong",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Login with the right one.
	resp = postJSON(t, srv.URL+"/api/auth/login", map[string]string{
		"email": "a@example.com", "password": "pw",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var back model.UserProfile
	decode(t, resp, &back)
	assert.Equal(t, created.ID, back.ID)
}

func TestProfileUpdateComputesTargets(t *testing.T) {
	srv := newTestServer(t, "")
	created := registerUser(t, srv.URL, "a@example.com")

	body := map[string]interface{}{
		"email": "a@example.com", "name": "Test",
		"height": 175, "weight": 70, "age": 30,
		"gender": "male", "activityLevel": "sedentary",
	}
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPut,
		fmt.Sprintf("%s/api/users/%s/profile", srv.URL, created.ID), bytes.NewReader(raw))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var p model.UserProfile
	decode(t, resp, &p)
	assert.True(t, p.IsOnboarded)
	assert.Equal(t, 1979, p.TargetCalories)
	assert.Equal(t, 148, p.TargetProtein)
	assert.Equal(t, 77, p.TargetFat)
	assert.Equal(t, 173, p.TargetCarbs)

	resp, err = http.Get(fmt.Sprintf("%s/api/users/%s/profile", srv.URL, created.ID))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &p)
	assert.Equal(t, 1979, p.TargetCalories)
}

func TestProfileGetUnknownUser(t *testing.T) {
	srv := newTestServer(t, "")
	resp, err := http.Get(srv.URL + "/api/users/ghost/profile")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDayLogEntryLifecycle(t *testing.T) {
	srv := newTestServer(t, "")
	created := registerUser(t, srv.URL, "a@example.com")
	logsURL := fmt.Sprintf("%s/api/users/%s/logs", srv.URL, created.ID)

	resp := postJSON(t, logsURL+"/entries", map[string]interface{}{
		"mealType": "lunch",
		"items": []map[string]interface{}{
			{"name": "rice", "calories": 205, "weight": 160, "protein": 4.3, "carbs": 44.5, "fat": 0.4},
			{"name": "chicken", "calories": 231, "weight": 140, "protein": 43.4, "carbs": 0, "fat": 5},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var logs []model.DayLog
	decode(t, resp, &logs)
	require.Len(t, logs, 1)
	require.Len(t, logs[0].Entries, 1)
	entry := logs[0].Entries[0]
	assert.Equal(t, 436, entry.TotalCalories)
	assert.NotEmpty(t, entry.ID)

	// Listing returns the same state.
	resp2, err := http.Get(logsURL)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp2.StatusCode)
	decode(t, resp2, &logs)
	require.Len(t, logs, 1)

	// Delete the entry from today's log.
	req, err := http.NewRequest(http.MethodDelete, logsURL+"/entries/"+entry.ID, nil)
	require.NoError(t, err)
	resp3, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp3.StatusCode)
	decode(t, resp3, &logs)
	require.Len(t, logs, 1)
	assert.Empty(t, logs[0].Entries)
}

func TestDayLogEntryMissingMealType(t *testing.T) {
	srv := newTestServer(t, "")
	created := registerUser(t, srv.URL, "a@example.com")

	resp := postJSON(t, fmt.Sprintf("%s/api/users/%s/logs/entries", srv.URL, created.ID),
		map[string]interface{}{"items": []map[string]interface{}{}})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAnalyticsEndpoints(t *testing.T) {
	srv := newTestServer(t, "")
	created := registerUser(t, srv.URL, "a@example.com")

	resp := postJSON(t, fmt.Sprintf("%s/api/users/%s/logs/entries", srv.URL, created.ID),
		map[string]interface{}{
			"mealType": "breakfast",
			"items":    []map[string]interface{}{{"name": "oats", "calories": 300, "protein": 10, "carbs": 50, "fat": 6}},
		})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp2, err := http.Get(fmt.Sprintf("%s/api/users/%s/analytics/daily?days=7", srv.URL, created.ID))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp2.StatusCode)
	var rows []model.DayTotals
	decode(t, resp2, &rows)
	require.Len(t, rows, 7)
	assert.Equal(t, 300, rows[6].Calories)

	resp3, err := http.Get(fmt.Sprintf("%s/api/users/%s/analytics/daily?days=0", srv.URL, created.ID))
	require.NoError(t, err)
	resp3.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp3.StatusCode)

	resp4, err := http.Get(fmt.Sprintf("%s/api/users/%s/analytics/today", srv.URL, created.ID))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp4.StatusCode)
	var sum services.TodaySummary
	decode(t, resp4, &sum)
	assert.Equal(t, 300, sum.Totals.Calories)
	require.Len(t, sum.Entries, 1)
}

func TestBackupExportImport(t *testing.T) {
	srv := newTestServer(t, "")
	created := registerUser(t, srv.URL, "a@example.com")

	resp := postJSON(t, fmt.Sprintf("%s/api/users/%s/logs/entries", srv.URL, created.ID),
		map[string]interface{}{
			"mealType": "dinner",
			"items":    []map[string]interface{}{{"name": "pasta", "calories": 600}},
		})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp2, err := http.Get(srv.URL + "/api/backup/export")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp2.StatusCode)
	assert.Contains(t, resp2.Header.Get("Content-Disposition"), "icalorie_backup_")
	var snap model.Snapshot
	decode(t, resp2, &snap)
	assert.Len(t, snap.Users, 1)
	assert.Len(t, snap.Logs, 1)

	// Import the export into a fresh server.
	other := newTestServer(t, "")
	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	resp3, err := http.Post(other.URL+"/api/backup/import", "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp3.StatusCode)
	var res backup.ImportResult
	decode(t, resp3, &res)
	assert.Equal(t, 1, res.ProfilesMerged)
	assert.Equal(t, 1, res.LogsAdded)

	// Malformed payload is rejected.
	resp4, err := http.Post(other.URL+"/api/backup/import", "application/json", bytes.NewReader([]byte("{bad")))
	require.NoError(t, err)
	resp4.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp4.StatusCode)
}

func TestAnalysisProxy(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/analyze":
			_, _ = w.Write([]byte(`{"items":[{"name":"apple","calories":95}]}`))
		case "/api/refine":
			_, _ = w.Write([]byte(`{"items":[{"name":"pear","calories":101}],"message":"swapped"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer upstream.Close()

	srv := newTestServer(t, upstream.URL)

	resp := postJSON(t, srv.URL+"/api/analysis/analyze", map[string]string{"image": "b64"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Items []model.FoodItem `json:"items"`
	}
	decode(t, resp, &out)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "apple", out.Items[0].Name)

	resp2 := postJSON(t, srv.URL+"/api/analysis/refine", map[string]interface{}{
		"image": "b64", "items": out.Items, "prompt": "that is a pear",
	})
	require.Equal(t, http.StatusOK, resp2.StatusCode)
	var ref struct {
		Items   []model.FoodItem `json:"items"`
		Message string           `json:"message"`
	}
	decode(t, resp2, &ref)
	assert.Equal(t, "pear", ref.Items[0].Name)
	assert.Equal(t, "swapped", ref.Message)

	// Missing image is rejected before the upstream is called.
	resp3 := postJSON(t, srv.URL+"/api/analysis/analyze", map[string]string{})
	resp3.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp3.StatusCode)
}

func TestAnalysisUpstreamFailureIsBadGateway(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	srv := newTestServer(t, upstream.URL)
	resp := postJSON(t, srv.URL+"/api/analysis/analyze", map[string]string{"image": "b64"})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}
