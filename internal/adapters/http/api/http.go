// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/vizpages/internal/app"
	"github.com/okian/vizpages/internal/domain/chart"
	"github.com/okian/vizpages/internal/domain/tooltip"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Chart returns the built chart of a page.
	Chart(name string) (*chart.Chart, error)

	// Pages lists the registered pages with their load status.
	Pages() []PageStatus

	// Hover replays a pointer entering and leaving one mark.
	Hover(ctx context.Context, name string, index int, p tooltip.Pointer) (HoverResult, error)
}

// PageStatus mirrors the page listing entry.
type PageStatus = service.PageStatus

// HoverResult mirrors the hover replay shape.
type HoverResult = service.HoverResult

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	pageHandler   *PageHandler
	marksHandler  *MarksHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
		pageHandler:   NewPageHandler(deps),
		marksHandler:  NewMarksHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/pages/", RequestIDMiddleware(MetricsMiddleware(s.pageHandler.HandlePage, "pages")))
	mux.HandleFunc("/api/pages", RequestIDMiddleware(MetricsMiddleware(s.marksHandler.HandleListPages, "api_pages")))
	mux.HandleFunc("/api/pages/", RequestIDMiddleware(MetricsMiddleware(s.marksHandler.HandlePageAPI, "api_page")))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeLookupError translates page lookup failures: unknown pages are 404,
// pages whose datasets did not load are 503.
func writeLookupError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownPage), errors.Is(err, chart.ErrMarkIndex):
		writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
	case errors.Is(err, service.ErrPageUnavailable), errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "dataset_unavailable", WrapKind(op, ErrUnavailable, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
