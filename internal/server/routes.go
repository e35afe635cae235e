package server

import (
	"net/http"
	"strings"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Metals
	mux.HandleFunc("/api/metals", s.handleMetalList)
	mux.HandleFunc("/api/metals/", s.routeMetals)

	// Portfolio
	mux.HandleFunc("/api/portfolio/returns", s.handlePortfolioReturns)
	mux.HandleFunc("/api/lots", s.handleLots)
	mux.HandleFunc("/api/lots/", s.routeLots)
}

// routeMetals dispatches /api/metals/{metal}/... to the per-metal handlers.
func (s *Server) routeMetals(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/metals/")
	parts := strings.SplitN(rest, "/", 2)

	metal := strings.ToUpper(strings.TrimSpace(parts[0]))
	if metal == "" {
		WriteError(w, http.StatusNotFound, "Metal not specified")
		return
	}

	action := ""
	if len(parts) == 2 {
		action = parts[1]
	}

	switch action {
	case "series":
		s.handleMetalSeries(w, r, metal)
	case "report":
		s.handleMetalReport(w, r, metal)
	case "advice":
		s.handleMetalAdvice(w, r, metal)
	default:
		WriteError(w, http.StatusNotFound, "Unknown metal endpoint")
	}
}

// routeLots dispatches /api/lots/{id} to the lot handlers.
func (s *Server) routeLots(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/lots/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusNotFound, "Lot not specified")
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleLotGet(w, r, id)
	case http.MethodPatch:
		s.handleLotUpdate(w, r, id)
	case http.MethodDelete:
		s.handleLotDelete(w, r, id)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPatch, http.MethodDelete)
	}
}
