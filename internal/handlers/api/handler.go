// Package api exposes the scenario and session services over HTTP.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/mystira/mystira-server/internal/services/gamesession"
	"github.com/mystira/mystira-server/internal/services/scenario"
)

// Handler wires the service layer to HTTP routes
type Handler struct {
	scenarios scenario.Service
	sessions  gamesession.Service
	logger    *zap.Logger
}

// HandlerConfig holds configuration for the handler
type HandlerConfig struct {
	ScenarioService scenario.Service    // Required
	SessionService  gamesession.Service // Required
	Logger          *zap.Logger         // Optional, will use a no-op logger if nil
}

// NewHandler creates a new API handler
func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg.ScenarioService == nil {
		panic("scenario service is required")
	}
	if cfg.SessionService == nil {
		panic("session service is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Handler{
		scenarios: cfg.ScenarioService,
		sessions:  cfg.SessionService,
		logger:    logger,
	}
}

// Register attaches all routes to the router
func (h *Handler) Register(r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/scenarios", h.createScenario).Methods(http.MethodPost)
	api.HandleFunc("/scenarios", h.listScenarios).Methods(http.MethodGet)
	api.HandleFunc("/scenarios/{id}", h.getScenario).Methods(http.MethodGet)
	api.HandleFunc("/scenarios/{id}", h.updateScenario).Methods(http.MethodPut)
	api.HandleFunc("/scenarios/{id}", h.deleteScenario).Methods(http.MethodDelete)

	api.HandleFunc("/sessions", h.startSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions", h.listSessions).Methods(http.MethodGet)
	api.HandleFunc("/sessions/active/count", h.activeSessionsCount).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}", h.getSession).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}", h.deleteSession).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{id}/choices", h.makeChoice).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/pause", h.pauseSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/resume", h.resumeSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/end", h.endSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/scene", h.progressScene).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/character", h.selectCharacter).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/stats", h.sessionStats).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/achievements", h.checkAchievements).Methods(http.MethodGet)
}
