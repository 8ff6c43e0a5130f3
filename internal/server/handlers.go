package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/covercheck-dev/covercheck/internal/buildinfo"
	"github.com/covercheck-dev/covercheck/internal/coverage"
	"github.com/covercheck-dev/covercheck/internal/routing"
)

// envelope is the JSON shape every API response uses.
type envelope struct {
	Data     any            `json:"data"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "covercheck",
		"version": buildinfo.Version,
	})
}

// handleCoverage aggregates the holdings snapshot against the catalog.
// ?cap= overrides the configured protection cap in whole KRW.
func (s *Server) handleCoverage(w http.ResponseWriter, r *http.Request) {
	params := s.cfg.Coverage
	override, err := capOverride(r, params.Cap)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "cap must be a positive whole-KRW number")
		return
	}
	params.Cap = override

	rows, totals := coverage.Aggregate(s.cfg.Index, s.cfg.Holdings, params)
	s.respond(w, map[string]any{
		"rows":   rows,
		"totals": totals,
	}, map[string]any{
		"cap":      params.Cap,
		"licenses": len(rows),
	})
}

// handleRouting computes a fresh routing plan. ?cap= overrides the
// configured protection cap in whole KRW.
func (s *Server) handleRouting(w http.ResponseWriter, r *http.Request) {
	params := s.cfg.Routing
	override, err := capOverride(r, params.Cap)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "cap must be a positive whole-KRW number")
		return
	}
	params.Cap = override

	plan := routing.Compute(params, s.cfg.Holdings, s.cfg.Offers)
	s.respond(w, plan, map[string]any{
		"cap":    params.Cap,
		"offers": len(s.cfg.Offers),
	})
}

func (s *Server) handleHoldings(w http.ResponseWriter, r *http.Request) {
	s.respond(w, s.cfg.Holdings, map[string]any{
		"count":  len(s.cfg.Holdings),
		"source": s.cfg.HoldingsSource,
	})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	s.respond(w, s.cfg.Entries, map[string]any{
		"count":  len(s.cfg.Entries),
		"source": s.cfg.CatalogSource,
	})
}

// capOverride parses the optional ?cap= query parameter, returning the
// fallback when absent.
func capOverride(r *http.Request, fallback decimal.Decimal) (decimal.Decimal, error) {
	raw := r.URL.Query().Get("cap")
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing cap %q: %w", raw, err)
	}
	if n <= 0 {
		return decimal.Zero, fmt.Errorf("cap must be positive, got %d", n)
	}
	return decimal.NewFromInt(n), nil
}

// respond wraps data in the standard envelope with a timestamp.
func (s *Server) respond(w http.ResponseWriter, data any, meta map[string]any) {
	if meta == nil {
		meta = map[string]any{}
	}
	meta["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	s.writeJSON(w, http.StatusOK, envelope{Data: data, Metadata: meta})
}

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]any{"error": msg})
}
