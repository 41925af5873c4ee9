package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/Dan9191/finance-service/internal/middleware"
	"github.com/Dan9191/finance-service/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Insights handles GET /insights?includeFuture=1&fast=1
func (h *Handler) Insights(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		JSONError(w, "unauthenticated", http.StatusUnauthorized)
		return
	}
	includeFuture, err := queryFlag(r, "includeFuture")
	if err != nil {
		JSONError(w, "includeFuture must be a boolean", http.StatusBadRequest)
		return
	}
	fast, err := queryFlag(r, "fast")
	if err != nil {
		JSONError(w, "fast must be a boolean", http.StatusBadRequest)
		return
	}

	p, err := h.svc.Insights(r.Context(), userID, service.Options{IncludeFuture: includeFuture, Fast: fast})
	if err != nil {
		h.serviceError(w, r, userID, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Forecast handles GET /forecast?includeFuture=1
func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		JSONError(w, "unauthenticated", http.StatusUnauthorized)
		return
	}
	includeFuture, err := queryFlag(r, "includeFuture")
	if err != nil {
		JSONError(w, "includeFuture must be a boolean", http.StatusBadRequest)
		return
	}

	horizons, err := h.svc.Forecast(r.Context(), userID, includeFuture)
	if err != nil {
		h.serviceError(w, r, userID, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"forecast": horizons})
}

type muteRequest struct {
	Days int `json:"days"`
}

// Mute handles POST /insights/{id}/mute with an optional {"days": N} body
func (h *Handler) Mute(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		JSONError(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req muteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		JSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if _, err := h.svc.Mute(r.Context(), userID, mux.Vars(r)["id"], req.Days); err != nil {
		h.serviceError(w, r, userID, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Unmute handles DELETE /insights/{id}/mute
func (h *Handler) Unmute(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		JSONError(w, "unauthenticated", http.StatusUnauthorized)
		return
	}
	if err := h.svc.Unmute(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		h.serviceError(w, r, userID, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) serviceError(w http.ResponseWriter, r *http.Request, userID int64, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		JSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrComputationFailed):
		h.log.WithFields(logrus.Fields{"user_id": userID, "path": r.URL.Path}).Errorf("Computation failed: %v", err)
		JSONError(w, service.ErrComputationFailed.Error(), http.StatusServiceUnavailable)
	default:
		h.log.WithFields(logrus.Fields{"user_id": userID, "path": r.URL.Path}).Errorf("Request failed: %v", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
	}
}

func queryFlag(r *http.Request, name string) (bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}
