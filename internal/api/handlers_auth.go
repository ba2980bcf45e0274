// Package api exposes the application over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/icalorie/icalorie-server/internal/api/respond"
	"github.com/icalorie/icalorie-server/internal/model"
	"github.com/icalorie/icalorie-server/internal/services"
)

type AuthHandler struct {
	svc *services.AuthService
}

func NewAuthHandler(svc *services.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if in.Email == "" || in.Password == "" {
		respond.WriteBadRequest(w, "email and password are required")
		return
	}

	profile, err := h.svc.Register(r.Context(), in.Email, in.Password, in.Name)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, profile)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}

	profile, err := h.svc.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		// Unknown email and wrong password are indistinguishable to the
		// caller, so both map to 401 before the generic mapping runs.
		if errors.Is(err, model.ErrUserNotFound) || errors.Is(err, model.ErrInvalidCredentials) {
			respond.WriteError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, profile)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Logout(r.Context()); err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	profile, ok, err := h.svc.Resume(r.Context())
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respond.WriteJSON(w, http.StatusOK, profile)
}
