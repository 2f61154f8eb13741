package normalize

import (
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coinwire/internal/types"
)

var telegramSource = types.Source{
	Name:     "Telegram @bitcoin",
	Platform: types.PlatformTelegram,
	Endpoint: "bitcoin",
	Category: "community",
}

func TestTelegramMessage(t *testing.T) {
	msg := &tgbotapi.Message{
		MessageID: 42,
		Date:      1717243200, // 2024-06-01T12:00:00Z
		Text:      "bitcoin is  moving",
		Chat:      &tgbotapi.Chat{UserName: "bitcoin"},
	}

	item := TelegramMessage(msg, telegramSource)
	require.NotNil(t, item)
	assert.Equal(t, "42", item.ID)
	assert.Equal(t, "bitcoin is moving", item.Content)
	assert.Equal(t, "https://t.me/bitcoin/42", item.URL)
	assert.Equal(t, "bitcoin", item.Author)
	assert.Equal(t, types.PlatformTelegram, item.Platform)
	assert.Equal(t, time.Unix(1717243200, 0).UTC(), item.PublishedAt.UTC())
}

func TestTelegramMessage_DropsEmptyText(t *testing.T) {
	msg := &tgbotapi.Message{MessageID: 1, Date: 1717243200, Chat: &tgbotapi.Chat{UserName: "bitcoin"}}
	assert.Nil(t, TelegramMessage(msg, telegramSource))
}

func TestTelegramMessage_DropsZeroDate(t *testing.T) {
	msg := &tgbotapi.Message{MessageID: 1, Text: "hello", Chat: &tgbotapi.Chat{UserName: "bitcoin"}}
	assert.Nil(t, TelegramMessage(msg, telegramSource))
}

func TestTelegramMessage_ChannelFallsBackToSource(t *testing.T) {
	msg := &tgbotapi.Message{MessageID: 7, Date: 1717243200, Text: "hello"}

	item := TelegramMessage(msg, telegramSource)
	require.NotNil(t, item)
	assert.Equal(t, "https://t.me/bitcoin/7", item.URL)
}

func TestTelegramMessage_Nil(t *testing.T) {
	assert.Nil(t, TelegramMessage(nil, telegramSource))
}
