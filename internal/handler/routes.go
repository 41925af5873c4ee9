package handler

import (
	"net/http"

	"github.com/Dan9191/finance-service/internal/middleware"
	"github.com/gorilla/mux"
)

// Routes mounts the API on r. auth resolves the user id; limiter throttles mute changes per user.
func (h *Handler) Routes(r *mux.Router, auth func(http.Handler) http.Handler, limiter *middleware.UserRateLimiter) {
	// Public routes
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(auth)
	authRouter.HandleFunc("/insights", h.Insights).Methods(http.MethodGet)
	authRouter.HandleFunc("/forecast", h.Forecast).Methods(http.MethodGet)
	authRouter.Handle("/insights/{id}/mute", limiter.Middleware(http.HandlerFunc(h.Mute))).Methods(http.MethodPost)
	authRouter.Handle("/insights/{id}/mute", limiter.Middleware(http.HandlerFunc(h.Unmute))).Methods(http.MethodDelete)
}
