// Package server hosts the HTTP transport: the streamable MCP endpoint
// plus health, catalog, and reload routes.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/revanth0212/commerce-extensibility-mcp/internal/common"
	"github.com/revanth0212/commerce-extensibility-mcp/internal/schema"
)

// Server wires the MCP streamable handler and the operational endpoints
// onto one router.
type Server struct {
	store      *schema.Store
	mcpHandler http.Handler
	logger     *common.Logger
	onReload   func()
}

// New creates a Server. mcpHandler is the streamable MCP endpoint; onReload,
// if non-nil, runs after each successful schema reload (used to re-register
// tools with the MCP server).
func New(store *schema.Store, mcpHandler http.Handler, logger *common.Logger, onReload func()) *Server {
	return &Server{
		store:      store,
		mcpHandler: mcpHandler,
		logger:     logger,
		onReload:   onReload,
	}
}

// Routes builds the HTTP router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.correlationMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/catalog", s.handleCatalog)
	r.Post("/reload", s.handleReload)
	r.Mount("/mcp", s.mcpHandler)

	return r
}

// Start listens on addr and serves until the listener fails.
func (s *Server) Start(addr string) error {
	s.logger.Info().Str("addr", addr).Msg("HTTP server listening")
	return http.ListenAndServe(addr, s.Routes())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": common.GetVersion(),
		"tools":   s.store.Count(),
	})
}

// handleCatalog returns the loaded tool descriptors.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"tools": s.store.GetAll(),
	})
}

// handleReload re-reads the descriptor directory and re-registers tools.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Reload(); err != nil {
		s.logger.Error().Err(err).Msg("schema reload failed")
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error": err.Error(),
		})
		return
	}
	if s.onReload != nil {
		s.onReload()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"tools": s.store.Count(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
