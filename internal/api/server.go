package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"titan-market/internal/config"
	"titan-market/internal/db"
	"titan-market/internal/logger"
	"titan-market/internal/market"
)

// Server is the HTTP API that exposes the market engine to the UI.
type Server struct {
	mu     sync.RWMutex
	cfg    *config.Config
	engine *market.Engine
	db     *db.DB
}

// NewServer wires the engine and database into an API server.
func NewServer(cfg *config.Config, engine *market.Engine, database *db.DB) *Server {
	return &Server{
		cfg:    cfg,
		engine: engine,
		db:     database,
	}
}

// Handler returns the API route handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/market/items", s.handleItems)
	mux.HandleFunc("/api/market/prices", s.handlePrices)
	mux.HandleFunc("/api/market/arbitrage", s.handleArbitrage)
	mux.HandleFunc("/api/market/refresh", s.handleRefresh)
	mux.HandleFunc("/api/config", s.handleConfig)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("API", fmt.Sprintf("Encode response: %v", err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Status())
}

func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	language := s.cfg.Language
	s.mu.RUnlock()
	if v := r.URL.Query().Get("language"); v != "" {
		language = v
	}

	listings, err := s.engine.Catalog(r.Context(), language)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, listings)
}

func (s *Server) handlePrices(w http.ResponseWriter, r *http.Request) {
	entries, lastUpdatedAt := s.engine.OrderBook()
	writeJSON(w, http.StatusOK, struct {
		Prices        map[string]*market.OrderBookEntry `json:"prices"`
		LastUpdatedAt time.Time                         `json:"lastUpdatedAt"`
	}{entries, lastUpdatedAt})
}

// marketRow is one listing joined with its quotes and computed signals, the
// shape the market table renders.
type marketRow struct {
	market.Listing
	Offer     *market.PriceQuote  `json:"offer,omitempty"`
	Request   *market.PriceQuote  `json:"request,omitempty"`
	Arbitrage market.ArbitrageSet `json:"arbitrage"`
}

func (s *Server) handleArbitrage(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	language := s.cfg.Language
	s.mu.RUnlock()
	if v := r.URL.Query().Get("language"); v != "" {
		language = v
	}

	listings, err := s.engine.Catalog(r.Context(), language)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	book, lastUpdatedAt := s.engine.OrderBook()

	rows := make([]marketRow, 0, len(listings))
	for _, listing := range listings {
		entry := book[listing.ReferenceID]

		var comparison *market.OrderBookEntry
		if compID, ok := listing.ComparisonReferenceID(); ok {
			comparison = book[compID]
		}

		row := marketRow{
			Listing:   listing,
			Arbitrage: market.ComputeArbitrage(listing, entry, comparison),
		}
		if entry != nil {
			row.Offer = entry.Offer
			row.Request = entry.Request
		}
		rows = append(rows, row)
	}

	writeJSON(w, http.StatusOK, struct {
		Rows          []marketRow `json:"rows"`
		LastUpdatedAt time.Time   `json:"lastUpdatedAt"`
	}{rows, lastUpdatedAt})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	force := r.URL.Query().Get("force") == "true"

	err := s.engine.Refresh(force)
	var cooldown *market.CooldownError
	if errors.As(err, &cooldown) {
		writeJSON(w, http.StatusTooManyRequests, map[string]interface{}{
			"error":            "cooldown active",
			"remainingSeconds": int(cooldown.Remaining.Seconds()),
			"remainingMinutes": cooldown.RemainingMinutes(),
		})
		return
	}
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.mu.RLock()
		defer s.mu.RUnlock()
		writeJSON(w, http.StatusOK, s.cfg)
	case http.MethodPut, http.MethodPost:
		// Decode over the current values so a partial body only changes
		// the fields it names.
		s.mu.RLock()
		cfg := *s.cfg
		s.mu.RUnlock()
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("decode config: %v", err))
			return
		}
		s.mu.Lock()
		*s.cfg = cfg
		s.mu.Unlock()
		s.engine.Reconfigure(&cfg)
		if err := s.db.SaveConfig(&cfg); err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("save config: %v", err))
			return
		}
		writeJSON(w, http.StatusOK, &cfg)
	default:
		writeError(w, http.StatusMethodNotAllowed, "GET or PUT required")
	}
}
