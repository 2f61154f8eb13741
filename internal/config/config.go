package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"coinwire/internal/types"
)

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Fetch    FetchConfig    `toml:"fetch"`
	Cache    CacheConfig    `toml:"cache"`
	Telegram TelegramConfig `toml:"telegram"`
	Markets  MarketsConfig  `toml:"markets"`
	Sources  []SourceConfig `toml:"sources"`
}

type ServerConfig struct {
	Port     string `toml:"port"`
	PageSize int    `toml:"page_size"`
}

type FetchConfig struct {
	Timeout   string `toml:"timeout"`
	UserAgent string `toml:"user_agent"`
}

type CacheConfig struct {
	Type      string `toml:"type"`
	TTL       string `toml:"ttl"`
	RedisAddr string `toml:"redis_addr"`
}

type TelegramConfig struct {
	BotToken string   `toml:"bot_token"`
	Channels []string `toml:"channels"`
}

type MarketsConfig struct {
	CoinGeckoURL string `toml:"coingecko_url"`
	LlamaURL     string `toml:"llama_url"`
}

type SourceConfig struct {
	Name     string `toml:"name"`
	Platform string `toml:"platform"`
	Endpoint string `toml:"endpoint"`
	Category string `toml:"category"`
}

// DefaultUserAgent is sent on every feed request. Several endpoints
// (Reddit in particular) reject Go's default client identifier.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Load reads a TOML config file, or returns a fully defaulted config
// when path is empty.
func Load(path string) (*Config, error) {
	var config Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := toml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		config.Server.Port = "8080"
	}

	if config.Server.PageSize == 0 {
		config.Server.PageSize = 20
	}
	if config.Server.PageSize < 1 || config.Server.PageSize > 100 {
		return fmt.Errorf("page_size must be between 1 and 100, got %d", config.Server.PageSize)
	}

	if config.Fetch.Timeout == "" {
		config.Fetch.Timeout = "8s"
	}
	if _, err := time.ParseDuration(config.Fetch.Timeout); err != nil {
		return fmt.Errorf("invalid fetch timeout: %w", err)
	}

	if config.Fetch.UserAgent == "" {
		config.Fetch.UserAgent = DefaultUserAgent
	}

	if config.Cache.Type == "" {
		config.Cache.Type = "memory"
	}
	switch config.Cache.Type {
	case "memory", "redis", "none":
	default:
		return fmt.Errorf("invalid cache type: %s (must be 'memory', 'redis' or 'none')", config.Cache.Type)
	}

	if config.Cache.TTL == "" {
		config.Cache.TTL = "2m"
	}
	if _, err := time.ParseDuration(config.Cache.TTL); err != nil {
		return fmt.Errorf("invalid cache ttl: %w", err)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisAddr == "" {
		config.Cache.RedisAddr = "localhost:6379"
	}

	if config.Telegram.BotToken == "" {
		config.Telegram.BotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	}

	if config.Markets.CoinGeckoURL == "" {
		config.Markets.CoinGeckoURL = "https://api.coingecko.com/api/v3"
	}
	if config.Markets.LlamaURL == "" {
		config.Markets.LlamaURL = "https://stablecoins.llama.fi"
	}

	seen := make(map[string]bool, len(config.Sources))
	for i, src := range config.Sources {
		if src.Name == "" {
			return fmt.Errorf("source %d: name is required", i)
		}
		if seen[src.Name] {
			return fmt.Errorf("duplicate source name: %s", src.Name)
		}
		seen[src.Name] = true

		platform, err := types.ParsePlatform(src.Platform)
		if err != nil {
			return fmt.Errorf("source %s: %w", src.Name, err)
		}
		if platform != types.PlatformTelegram && src.Endpoint == "" {
			return fmt.Errorf("source %s: endpoint is required", src.Name)
		}
	}

	return nil
}

// FetchTimeout returns the validated per-source fetch timeout.
func (c *Config) FetchTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Fetch.Timeout)
	return d
}

// CacheTTL returns the validated response-cache TTL.
func (c *Config) CacheTTL() time.Duration {
	d, _ := time.ParseDuration(c.Cache.TTL)
	return d
}
