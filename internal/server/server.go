// Package server exposes the aggregation pipeline over HTTP: the JSON
// API consumed by the frontend, plus RSS/Atom re-exports of the current
// aggregate. Handlers are thin; everything interesting happens in the
// aggregator.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"coinwire/internal/aggregate"
	"coinwire/internal/cache"
	"coinwire/internal/markets"
	"coinwire/internal/tagger"
	"coinwire/internal/types"
)

// FeedAggregator is the aggregation entry point the handlers call.
type FeedAggregator interface {
	Aggregate(ctx context.Context, query aggregate.Query) (*aggregate.Result, error)
}

type Config struct {
	Port     string
	PageSize int
}

type Server struct {
	config     Config
	aggregator FeedAggregator
	tagger     *tagger.Tagger
	coingecko  *markets.CoinGecko
	llama      *markets.DefiLlama
	cache      cache.Store
	server     *http.Server
}

func New(config Config, aggregator FeedAggregator, tag *tagger.Tagger, coingecko *markets.CoinGecko, llama *markets.DefiLlama, store cache.Store) *Server {
	if config.Port == "" {
		config.Port = "8080"
	}
	if config.PageSize == 0 {
		config.PageSize = 20
	}
	return &Server{
		config:     config,
		aggregator: aggregator,
		tagger:     tag,
		coingecko:  coingecko,
		llama:      llama,
		cache:      store,
	}
}

// Handler builds the route table. Exposed separately so tests can drive
// it through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/feed", s.handleFeed)
	mux.HandleFunc("GET /api/news", s.platformHandler(types.PlatformNews, types.PlatformMedium))
	mux.HandleFunc("GET /api/social", s.platformHandler(types.PlatformReddit, types.PlatformTwitter, types.PlatformTelegram))
	mux.HandleFunc("GET /api/youtube", s.platformHandler(types.PlatformYouTube))
	mux.HandleFunc("GET /api/topics", s.handleTopics)
	mux.HandleFunc("GET /api/markets", s.handleMarkets)
	mux.HandleFunc("GET /api/stablecoins", s.handleStablecoins)
	mux.HandleFunc("GET /api/stablecoins/metrics", s.handleStablecoinMetrics)
	mux.HandleFunc("GET /feed.rss", s.handleExportRSS)
	mux.HandleFunc("GET /feed.atom", s.handleExportAtom)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:    ":" + s.config.Port,
		Handler: s.Handler(),
	}

	slog.Info("server starting", "port", s.config.Port)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"ok","time":"%s"}`, time.Now().UTC().Format(time.RFC3339))
}
