package markets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoinGeckoMarkets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/markets", r.URL.Path)
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currency"))
		assert.Equal(t, "tether,usd-coin", r.URL.Query().Get("ids"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":"tether","symbol":"usdt","name":"Tether","current_price":1.0,"market_cap":83000000000,"market_cap_rank":3},
			{"id":"usd-coin","symbol":"usdc","name":"USDC","current_price":0.999,"market_cap":26000000000,"market_cap_rank":6}
		]`))
	}))
	defer srv.Close()

	coins, err := NewCoinGecko(srv.URL).Markets(context.Background(), []string{"tether", "usd-coin"})
	require.NoError(t, err)
	require.Len(t, coins, 2)
	assert.Equal(t, "tether", coins[0].ID)
	assert.Equal(t, 1.0, coins[0].CurrentPrice)
	assert.Equal(t, 3, coins[0].MarketCapRank)
}

func TestCoinGeckoMarkets_TopCoinsOmitsIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("ids"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	coins, err := NewCoinGecko(srv.URL).Markets(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, coins)
}

func TestCoinGeckoMarkets_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewCoinGecko(srv.URL).Markets(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestDefiLlamaStablecoins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stablecoins", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("includePrices"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"peggedAssets":[
			{"id":"1","name":"Tether","symbol":"USDT","pegType":"peggedUSD","price":1.001,"circulating":{"peggedUSD":83400000000}}
		]}`))
	}))
	defer srv.Close()

	coins, err := NewDefiLlama(srv.URL).Stablecoins(context.Background())
	require.NoError(t, err)
	require.Len(t, coins, 1)
	assert.Equal(t, "USDT", coins[0].Symbol)
	assert.Equal(t, 83400000000.0, coins[0].Circulating)
}

func TestDefiLlamaStablecoins_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"peggedAssets": [{`))
	}))
	defer srv.Close()

	_, err := NewDefiLlama(srv.URL).Stablecoins(context.Background())
	require.Error(t, err)
}
