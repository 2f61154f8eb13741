package markets

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Stablecoin is one pegged asset from DefiLlama's /stablecoins response,
// reduced to the fields the metrics dashboard renders.
type Stablecoin struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Symbol      string  `json:"symbol"`
	PegType     string  `json:"pegType"`
	Price       float64 `json:"price"`
	Circulating float64 `json:"circulating"`
}

type llamaResponse struct {
	PeggedAssets []struct {
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		Symbol      string  `json:"symbol"`
		PegType     string  `json:"pegType"`
		Price       float64 `json:"price"`
		Circulating struct {
			PeggedUSD float64 `json:"peggedUSD"`
		} `json:"circulating"`
	} `json:"peggedAssets"`
}

type DefiLlama struct {
	baseURL string
	client  *retryablehttp.Client
}

func NewDefiLlama(baseURL string) *DefiLlama {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.RetryWaitMin = 500 * time.Millisecond
	client.HTTPClient.Timeout = 10 * time.Second
	client.Logger = nil

	return &DefiLlama{baseURL: baseURL, client: client}
}

// Stablecoins fetches the circulating-supply metrics for every tracked
// pegged asset.
func (d *DefiLlama) Stablecoins(ctx context.Context) ([]Stablecoin, error) {
	endpoint := d.baseURL + "/stablecoins?includePrices=true"

	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("defillama request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("defillama returned status %d", resp.StatusCode)
	}

	var decoded llamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode defillama response: %w", err)
	}

	coins := make([]Stablecoin, 0, len(decoded.PeggedAssets))
	for _, asset := range decoded.PeggedAssets {
		coins = append(coins, Stablecoin{
			ID:          asset.ID,
			Name:        asset.Name,
			Symbol:      asset.Symbol,
			PegType:     asset.PegType,
			Price:       asset.Price,
			Circulating: asset.Circulating.PeggedUSD,
		})
	}
	return coins, nil
}
