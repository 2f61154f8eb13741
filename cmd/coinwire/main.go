package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coinwire/internal/aggregate"
	"coinwire/internal/cache"
	"coinwire/internal/config"
	"coinwire/internal/feedparse"
	"coinwire/internal/fetch"
	"coinwire/internal/markets"
	"coinwire/internal/normalize"
	"coinwire/internal/server"
	"coinwire/internal/sources"
	"coinwire/internal/tagger"
	"coinwire/internal/telegram"
)

var (
	configPath = flag.String("config", "", "Path to configuration file (optional)")
	logLevel   = flag.String("log-level", "info", "Log level: debug, info, warn, error")
)

func main() {
	flag.Parse()

	setupLogging(*logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		slog.Info("received signal, shutting down", "signal", sig.String())
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	registry, err := sources.NewRegistry(cfg)
	if err != nil {
		return fmt.Errorf("failed to build source registry: %w", err)
	}
	slog.Info("source registry built", "sources", len(registry.All()))

	store, err := cache.New(cache.Config{
		Type:      cfg.Cache.Type,
		TTL:       cfg.CacheTTL(),
		RedisAddr: cfg.Cache.RedisAddr,
	})
	if err != nil {
		return fmt.Errorf("failed to build cache: %w", err)
	}
	defer store.Close()

	tag := tagger.New()

	aggregator := aggregate.New(aggregate.Options{
		Registry:  registry,
		Fetcher:   fetch.NewClient(cfg.FetchTimeout(), cfg.Fetch.UserAgent),
		Parser:    feedparse.New(),
		Normalize: normalize.Entry,
		Telegram:  telegram.NewClient(cfg.Telegram.BotToken),
		Tagger:    tag,
		PageSize:  cfg.Server.PageSize,
	})

	srv := server.New(
		server.Config{Port: cfg.Server.Port, PageSize: cfg.Server.PageSize},
		aggregator,
		tag,
		markets.NewCoinGecko(cfg.Markets.CoinGeckoURL),
		markets.NewDefiLlama(cfg.Markets.LlamaURL),
		store,
	)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start(ctx)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
	}

	slog.Info("server stopped")
	return nil
}

func setupLogging(level string) {
	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slogLevel})))
}
