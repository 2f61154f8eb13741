package normalize

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"coinwire/internal/types"
)

// TelegramMessage converts a Bot API message into a FeedItem. The link
// is synthesized from the public channel username and message id, since
// the Bot API does not return one.
func TelegramMessage(msg *tgbotapi.Message, source types.Source) *types.FeedItem {
	if msg == nil || msg.Text == "" || msg.Date == 0 {
		return nil
	}

	channel := source.Endpoint
	if msg.Chat != nil && msg.Chat.UserName != "" {
		channel = msg.Chat.UserName
	}
	if channel == "" {
		return nil
	}

	author := channel
	if msg.From != nil && msg.From.UserName != "" {
		author = msg.From.UserName
	}

	return &types.FeedItem{
		ID:          fmt.Sprintf("%d", msg.MessageID),
		Title:       CollapseWhitespace(msg.Text),
		Content:     CollapseWhitespace(msg.Text),
		URL:         fmt.Sprintf("https://t.me/%s/%d", channel, msg.MessageID),
		Author:      author,
		PublishedAt: msg.Time(),
		SourceName:  source.Name,
		Category:    source.Category,
		Platform:    types.PlatformTelegram,
	}
}
