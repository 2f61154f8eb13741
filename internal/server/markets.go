package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"coinwire/internal/markets"
)

func (s *Server) handleMarkets(w http.ResponseWriter, r *http.Request) {
	coins, err := s.coingecko.Markets(r.Context(), nil)
	if err != nil {
		slog.Error("markets fetch failed", "error", err)
		writeError(w, http.StatusBadGateway, "failed to fetch market data")
		return
	}
	writeJSON(w, coins)
}

func (s *Server) handleStablecoins(w http.ResponseWriter, r *http.Request) {
	coins, err := s.coingecko.Markets(r.Context(), markets.StablecoinIDs)
	if err != nil {
		slog.Error("stablecoins fetch failed", "error", err)
		writeError(w, http.StatusBadGateway, "failed to fetch stablecoin data")
		return
	}
	writeJSON(w, coins)
}

func (s *Server) handleStablecoinMetrics(w http.ResponseWriter, r *http.Request) {
	coins, err := s.llama.Stablecoins(r.Context())
	if err != nil {
		slog.Error("stablecoin metrics fetch failed", "error", err)
		writeError(w, http.StatusBadGateway, "failed to fetch stablecoin metrics")
		return
	}
	writeJSON(w, coins)
}

func writeJSON(w http.ResponseWriter, value any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(value)
}
