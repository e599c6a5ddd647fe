package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prakritistore/cart-service/internal/newsletter"
	"github.com/prakritistore/cart-service/internal/prefs"
)

type SubscribeRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type SetPreferenceRequest struct {
	Value string `json:"value"`
}

type MiscHandler struct {
	newsletter *newsletter.Service
	prefs      *prefs.Manager
}

func NewMiscHandler(nl *newsletter.Service, pm *prefs.Manager) *MiscHandler {
	return &MiscHandler{newsletter: nl, prefs: pm}
}

// Subscribe handles POST /newsletter/subscribe
func (h *MiscHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}

	sub, err := h.newsletter.Subscribe(r.Context(), req.Name, req.Email)
	switch {
	case errors.Is(err, newsletter.ErrInvalidEmail):
		writeError(w, http.StatusUnprocessableEntity, "invalid_email")
	case errors.Is(err, newsletter.ErrAlreadySubscribed):
		writeError(w, http.StatusConflict, "already_subscribed")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "failed_subscribe")
	default:
		writeJSON(w, http.StatusCreated, sub)
	}
}

// GetPreference handles GET /preferences/{key}
func (h *MiscHandler) GetPreference(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	value, err := h.prefs.Get(r.Context(), key)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown_preference")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": key, "value": value})
}

// SetPreference handles PUT /preferences/{key}
func (h *MiscHandler) SetPreference(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	var req SetPreferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}

	err := h.prefs.Set(r.Context(), key, req.Value)
	var unknown prefs.ErrUnknownKey
	switch {
	case errors.As(err, &unknown):
		writeError(w, http.StatusNotFound, "unknown_preference")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "failed_set_preference")
	default:
		writeJSON(w, http.StatusOK, map[string]string{"key": key, "value": req.Value})
	}
}
