package api

import (
	"net/http"

	"github.com/icalorie/icalorie-server/internal/api/respond"
	"github.com/icalorie/icalorie-server/internal/health"
)

type HealthHandler struct {
	checker *health.StorageChecker
}

func NewHealthHandler(checker *health.StorageChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.checker != nil && !h.checker.IsHealthy() {
		respond.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
