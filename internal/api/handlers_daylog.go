package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/icalorie/icalorie-server/internal/api/respond"
	"github.com/icalorie/icalorie-server/internal/model"
	"github.com/icalorie/icalorie-server/internal/services"
)

type DayLogHandler struct {
	svc       *services.DayLogService
	analytics *services.AnalyticsService
}

func NewDayLogHandler(svc *services.DayLogService, analytics *services.AnalyticsService) *DayLogHandler {
	return &DayLogHandler{svc: svc, analytics: analytics}
}

func (h *DayLogHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	logs, err := h.svc.List(r.Context(), userID)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, logs)
}

func (h *DayLogHandler) AppendEntry(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	var in struct {
		MealType model.MealType   `json:"mealType"`
		Items    []model.FoodItem `json:"items"`
		Image    string           `json:"image,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if in.MealType == "" {
		respond.WriteBadRequest(w, "mealType is required")
		return
	}

	logs, err := h.svc.Append(r.Context(), userID, in.MealType, in.Items, in.Image)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusCreated, logs)
}

func (h *DayLogHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	logs, err := h.svc.Delete(r.Context(), vars["userId"], vars["entryId"])
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, logs)
}

func (h *DayLogHandler) Daily(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	days := 7
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 365 {
			respond.WriteBadRequest(w, "days must be a positive integer up to 365")
			return
		}
		days = n
	}
	rows, err := h.analytics.Daily(r.Context(), userID, days)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, rows)
}

func (h *DayLogHandler) Today(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	sum, err := h.analytics.Today(r.Context(), userID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, sum)
}
