package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/icalorie/icalorie-server/internal/analysis"
	"github.com/icalorie/icalorie-server/internal/api/recovery"
	"github.com/icalorie/icalorie-server/internal/backup"
	"github.com/icalorie/icalorie-server/internal/health"
	"github.com/icalorie/icalorie-server/internal/services"
)

// Deps carries everything the router needs.
type Deps struct {
	Auth      *services.AuthService
	Profiles  *services.ProfileService
	DayLogs   *services.DayLogService
	Analytics *services.AnalyticsService
	Backup    *backup.Engine
	Analysis  *analysis.Client
	Health    *health.StorageChecker
	Log       zerolog.Logger
}

// NewRouter assembles the HTTP routes behind the recovery middleware.
func NewRouter(d Deps) http.Handler {
	r := mux.NewRouter()

	authH := NewAuthHandler(d.Auth)
	profileH := NewProfileHandler(d.Profiles)
	daylogH := NewDayLogHandler(d.DayLogs, d.Analytics)
	backupH := NewBackupHandler(d.Backup)
	analysisH := NewAnalysisHandler(d.Analysis)
	healthH := NewHealthHandler(d.Health)

	r.HandleFunc("/api/health", healthH.Health).Methods(http.MethodGet)

	r.HandleFunc("/api/auth/register", authH.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", authH.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/logout", authH.Logout).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/session", authH.Session).Methods(http.MethodGet)

	r.HandleFunc("/api/users/{userId}/profile", profileH.Get).Methods(http.MethodGet)
	r.HandleFunc("/api/users/{userId}/profile", profileH.Put).Methods(http.MethodPut)

	r.HandleFunc("/api/users/{userId}/logs", daylogH.List).Methods(http.MethodGet)
	r.HandleFunc("/api/users/{userId}/logs/entries", daylogH.AppendEntry).Methods(http.MethodPost)
	r.HandleFunc("/api/users/{userId}/logs/entries/{entryId}", daylogH.DeleteEntry).Methods(http.MethodDelete)

	r.HandleFunc("/api/users/{userId}/analytics/daily", daylogH.Daily).Methods(http.MethodGet)
	r.HandleFunc("/api/users/{userId}/analytics/today", daylogH.Today).Methods(http.MethodGet)

	r.HandleFunc("/api/backup/export", backupH.Export).Methods(http.MethodGet)
	r.HandleFunc("/api/backup/import", backupH.Import).Methods(http.MethodPost)

	r.HandleFunc("/api/analysis/analyze", analysisH.Analyze).Methods(http.MethodPost)
	r.HandleFunc("/api/analysis/refine", analysisH.Refine).Methods(http.MethodPost)

	return recovery.New(d.Log)(r)
}
