// Package markets wraps the CoinGecko and DefiLlama JSON APIs. Their
// payloads are passed through to the presentation layer mostly as-is;
// unlike the feed pipeline there is no normalization step here. These
// clients sit outside the aggregation core, so a small retry budget is
// fine.
package markets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"coinwire/internal/config"
)

// StablecoinIDs are the CoinGecko ids tracked by the stablecoin
// dashboard.
var StablecoinIDs = []string{
	"tether", "usd-coin", "dai", "binance-usd", "frax", "true-usd", "usdd", "pax-dollar",
}

// Coin is one entry of CoinGecko's /coins/markets response.
type Coin struct {
	ID                string  `json:"id"`
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	Image             string  `json:"image"`
	CurrentPrice      float64 `json:"current_price"`
	MarketCap         float64 `json:"market_cap"`
	MarketCapRank     int     `json:"market_cap_rank"`
	TotalVolume       float64 `json:"total_volume"`
	PriceChange24h    float64 `json:"price_change_percentage_24h"`
	CirculatingSupply float64 `json:"circulating_supply"`
}

type CoinGecko struct {
	baseURL string
	client  *retryablehttp.Client
}

func NewCoinGecko(baseURL string) *CoinGecko {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.RetryWaitMin = 500 * time.Millisecond
	client.HTTPClient.Timeout = 10 * time.Second
	client.Logger = nil

	return &CoinGecko{baseURL: baseURL, client: client}
}

// Markets fetches market data for the given coin ids, or the top coins
// by market cap when ids is empty.
func (c *CoinGecko) Markets(ctx context.Context, ids []string) ([]Coin, error) {
	params := url.Values{}
	params.Set("vs_currency", "usd")
	params.Set("order", "market_cap_desc")
	params.Set("per_page", "100")
	params.Set("page", "1")
	params.Set("sparkline", "false")
	params.Set("price_change_percentage", "24h")
	if len(ids) > 0 {
		params.Set("ids", strings.Join(ids, ","))
	}

	endpoint := fmt.Sprintf("%s/coins/markets?%s", c.baseURL, params.Encode())

	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", config.DefaultUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("coingecko request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("coingecko returned status %d", resp.StatusCode)
	}

	var coins []Coin
	if err := json.NewDecoder(resp.Body).Decode(&coins); err != nil {
		return nil, fmt.Errorf("failed to decode coingecko response: %w", err)
	}
	return coins, nil
}
