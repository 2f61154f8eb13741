package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coinwire/internal/aggregate"
	"coinwire/internal/types"
)

func TestHandleTopics(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	stub := &stubAggregator{result: &aggregate.Result{
		Items: []*types.FeedItem{
			{
				ID:          "1",
				Title:       "Bitcoin ETF approved",
				Content:     "BTC adoption grows",
				URL:         "https://example.com/1",
				PublishedAt: now,
				SourceName:  "Example",
				Keywords:    []string{"bitcoin", "btc", "etf", "adoption"},
				Sentiment:   0.2,
			},
			{
				ID:          "2",
				Title:       "Bitcoin mining report",
				Content:     "halving outlook",
				URL:         "https://example.com/2",
				PublishedAt: now.Add(-time.Hour),
				SourceName:  "Example",
				Keywords:    []string{"bitcoin", "mining", "halving"},
				Sentiment:   0.4,
			},
			{
				ID:          "3",
				Title:       "Ethereum staking update",
				URL:         "https://example.com/3",
				PublishedAt: now.Add(-2 * time.Hour),
				SourceName:  "Example",
				Keywords:    []string{"ethereum", "staking"},
				Sentiment:   -0.1,
			},
		},
		Total: 3,
	}}
	srv := httptest.NewServer(newTestServer(t, stub, nil).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/topics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body topicsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.True(t, body.Success)
	require.NotEmpty(t, body.Topics)

	assert.True(t, stub.lastQuery.Tagged)
	assert.Equal(t, []types.Platform{types.PlatformNews, types.PlatformMedium}, stub.lastQuery.Platforms)

	top := body.Topics[0]
	assert.Equal(t, "bitcoin", top.ID)
	assert.Equal(t, 2, top.MentionCount)
	assert.Equal(t, now, top.LastMentioned)
	assert.InDelta(t, 0.3, top.Sentiment, 1e-9)
	require.Len(t, top.RelatedNews, 2)
	assert.Equal(t, "Bitcoin ETF approved", top.RelatedNews[0].Title)

	// Topics sort by mention count, so the mentioned topics precede the
	// unmentioned ones and unmentioned topics still appear with zeroes.
	for _, topic := range body.Topics[1:] {
		assert.LessOrEqual(t, topic.MentionCount, top.MentionCount)
	}
}
