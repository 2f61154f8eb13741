package sources

import (
	"fmt"

	"coinwire/internal/config"
	"coinwire/internal/types"
)

// Registry holds the immutable set of feed sources for one service
// instance. It is built once at startup and only read afterwards.
type Registry struct {
	sources []types.Source
}

// NewRegistry builds a registry from configured sources, falling back to
// the built-in defaults when none are configured. Telegram channels from
// the telegram config section are appended as sources of their own.
func NewRegistry(cfg *config.Config) (*Registry, error) {
	var srcs []types.Source

	if len(cfg.Sources) == 0 {
		srcs = append(srcs, Defaults()...)
	} else {
		for _, sc := range cfg.Sources {
			platform, err := types.ParsePlatform(sc.Platform)
			if err != nil {
				return nil, fmt.Errorf("source %s: %w", sc.Name, err)
			}
			srcs = append(srcs, types.Source{
				Name:     sc.Name,
				Platform: platform,
				Endpoint: sc.Endpoint,
				Category: sc.Category,
			})
		}
	}

	for _, channel := range cfg.Telegram.Channels {
		srcs = append(srcs, types.Source{
			Name:     "Telegram @" + channel,
			Platform: types.PlatformTelegram,
			Endpoint: channel,
			Category: "community",
		})
	}

	return &Registry{sources: srcs}, nil
}

// NewStatic builds a registry directly from a source list.
func NewStatic(srcs []types.Source) *Registry {
	return &Registry{sources: srcs}
}

// All returns every registered source.
func (r *Registry) All() []types.Source {
	return r.sources
}

// Filter restricts the registry to sources matching any of the given
// platforms and the given category. Empty arguments match everything.
// Filtering happens before fan-out so excluded endpoints are never
// fetched.
func (r *Registry) Filter(platforms []types.Platform, category string) []types.Source {
	matched := make([]types.Source, 0, len(r.sources))
	for _, src := range r.sources {
		if len(platforms) > 0 && !containsPlatform(platforms, src.Platform) {
			continue
		}
		if category != "" && src.Category != category {
			continue
		}
		matched = append(matched, src)
	}
	return matched
}

func containsPlatform(platforms []types.Platform, p types.Platform) bool {
	for _, candidate := range platforms {
		if candidate == p {
			return true
		}
	}
	return false
}

// Defaults mirrors the sources the original deployment aggregated:
// the major crypto news feeds, the big Bitcoin subreddits, a handful of
// Nitter account mirrors and YouTube channel feeds.
func Defaults() []types.Source {
	return []types.Source{
		{Name: "Cointelegraph", Platform: types.PlatformNews, Endpoint: "https://cointelegraph.com/rss", Category: "news"},
		{Name: "Decrypt", Platform: types.PlatformNews, Endpoint: "https://decrypt.co/feed", Category: "news"},
		{Name: "CoinDesk", Platform: types.PlatformNews, Endpoint: "https://www.coindesk.com/arc/outboundfeeds/rss/", Category: "news"},
		{Name: "CryptoSlate", Platform: types.PlatformNews, Endpoint: "https://cryptoslate.com/feed/", Category: "news"},
		{Name: "Bitcoin Magazine", Platform: types.PlatformMedium, Endpoint: "https://medium.com/feed/bitcoin-magazine", Category: "news"},
		{Name: "Bitcoin Subreddit", Platform: types.PlatformReddit, Endpoint: "https://www.reddit.com/r/Bitcoin/hot/.rss", Category: "community"},
		{Name: "Cryptocurrency Subreddit", Platform: types.PlatformReddit, Endpoint: "https://www.reddit.com/r/CryptoCurrency/hot/.rss", Category: "community"},
		{Name: "CryptoMarkets Subreddit", Platform: types.PlatformReddit, Endpoint: "https://www.reddit.com/r/CryptoMarkets/hot/.rss", Category: "community"},
		{Name: "CZ Binance", Platform: types.PlatformTwitter, Endpoint: "https://nitter.net/cz_binance/rss", Category: "influencer"},
		{Name: "Michael Saylor", Platform: types.PlatformTwitter, Endpoint: "https://nitter.net/saylor/rss", Category: "influencer"},
		{Name: "Vitalik Buterin", Platform: types.PlatformTwitter, Endpoint: "https://nitter.net/VitalikButerin/rss", Category: "influencer"},
		{Name: "Andreas Antonopoulos", Platform: types.PlatformTwitter, Endpoint: "https://nitter.net/aantonop/rss", Category: "education"},
		{Name: "Coin Bureau", Platform: types.PlatformYouTube, Endpoint: "https://www.youtube.com/feeds/videos.xml?channel_id=UCqK_GSMbpiV8spgD3ZGloSw", Category: "education"},
		{Name: "DataDash", Platform: types.PlatformYouTube, Endpoint: "https://www.youtube.com/feeds/videos.xml?channel_id=UCMtJYS0PrtiUwlk6zjGDEMA", Category: "influencer"},
		{Name: "Anthony Pompliano", Platform: types.PlatformYouTube, Endpoint: "https://www.youtube.com/feeds/videos.xml?channel_id=UCCatR7nWbYrkVXdxXb4cGXw", Category: "influencer"},
	}
}
