package api

import (
	"encoding/json"
	"net/http"

	"github.com/icalorie/icalorie-server/internal/analysis"
	"github.com/icalorie/icalorie-server/internal/api/respond"
	"github.com/icalorie/icalorie-server/internal/model"
)

type AnalysisHandler struct {
	client *analysis.Client
}

func NewAnalysisHandler(client *analysis.Client) *AnalysisHandler {
	return &AnalysisHandler{client: client}
}

func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Image string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if in.Image == "" {
		respond.WriteBadRequest(w, "image is required")
		return
	}

	items, err := h.client.Analyze(r.Context(), in.Image)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (h *AnalysisHandler) Refine(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Image  string           `json:"image"`
		Items  []model.FoodItem `json:"items"`
		Prompt string           `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if in.Prompt == "" {
		respond.WriteBadRequest(w, "prompt is required")
		return
	}

	items, message, err := h.client.Refine(r.Context(), in.Image, in.Items, in.Prompt)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items":   items,
		"message": message,
	})
}
