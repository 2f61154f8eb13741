// Package telegram reads channel messages through the Bot API. Unlike
// the feed sources there is nothing to parse: getUpdates already returns
// structured JSON, so the client goes straight to normalization.
package telegram

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"coinwire/internal/normalize"
	"coinwire/internal/types"
)

type Client struct {
	token    string
	endpoint string

	mu  sync.Mutex
	bot *tgbotapi.BotAPI
}

func NewClient(token string) *Client {
	return &Client{token: token, endpoint: tgbotapi.APIEndpoint}
}

// WithEndpoint overrides the Bot API endpoint. Used in tests.
func (c *Client) WithEndpoint(endpoint string) *Client {
	c.endpoint = endpoint
	return c
}

// api returns the lazily constructed bot session. A failed login is not
// cached; the next call tries again.
func (c *Client) api() (*tgbotapi.BotAPI, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.bot != nil {
		return c.bot, nil
	}

	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint(c.token, c.endpoint)
	if err != nil {
		return nil, err
	}
	c.bot = bot
	return bot, nil
}

// Messages returns the normalized recent messages for one channel
// source. Source.Endpoint holds the channel username. Failures are
// reported as *types.FetchError so the aggregator treats Telegram like
// any other unreachable source.
func (c *Client) Messages(ctx context.Context, source types.Source) ([]*types.FeedItem, error) {
	if c.token == "" {
		return nil, &types.FetchError{Source: source.Name, Err: errors.New("telegram bot token not configured")}
	}

	bot, err := c.api()
	if err != nil {
		return nil, &types.FetchError{Source: source.Name, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return nil, &types.FetchError{Source: source.Name, Err: err}
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Limit = 100
	updateConfig.AllowedUpdates = []string{"channel_post", "message"}

	updates, err := bot.GetUpdates(updateConfig)
	if err != nil {
		return nil, &types.FetchError{Source: source.Name, Err: err}
	}

	var items []*types.FeedItem
	for _, update := range updates {
		msg := update.ChannelPost
		if msg == nil {
			msg = update.Message
		}
		if msg == nil || msg.Chat == nil || msg.Chat.UserName == "" {
			continue
		}
		if !strings.EqualFold(msg.Chat.UserName, source.Endpoint) {
			continue
		}
		if item := normalize.TelegramMessage(msg, source); item != nil {
			items = append(items, item)
		}
	}

	slog.Debug("telegram channel fetched", "source", source.Name, "count", len(items))
	return items, nil
}
