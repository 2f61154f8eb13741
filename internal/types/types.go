package types

import (
	"fmt"
	"time"
)

// Platform identifies the dialect a source speaks and how its entries
// are normalized.
type Platform string

const (
	PlatformNews     Platform = "news"
	PlatformReddit   Platform = "reddit"
	PlatformTwitter  Platform = "twitter"
	PlatformYouTube  Platform = "youtube"
	PlatformTelegram Platform = "telegram"
	PlatformMedium   Platform = "medium"
)

func ParsePlatform(s string) (Platform, error) {
	switch Platform(s) {
	case PlatformNews, PlatformReddit, PlatformTwitter, PlatformYouTube, PlatformTelegram, PlatformMedium:
		return Platform(s), nil
	}
	return "", fmt.Errorf("unknown platform: %q", s)
}

// Source is one registered external feed endpoint. Registry entries are
// immutable once loaded.
type Source struct {
	Name     string
	Platform Platform
	Endpoint string
	Category string
}

// FeedItem is the canonical normalized representation of one entry from
// any source. It exists only for the duration of a single aggregation
// call; the tagger returns an enriched copy rather than mutating it.
type FeedItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	URL         string    `json:"url"`
	Author      string    `json:"author"`
	PublishedAt time.Time `json:"publishedAt"`
	SourceName  string    `json:"sourceName"`
	Category    string    `json:"category"`
	Platform    Platform  `json:"platform"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	Keywords    []string  `json:"keywords,omitempty"`
	Sentiment   float64   `json:"sentiment"`
}

// DedupeKey is the (source name, id) pair that must be unique within one
// aggregation result.
func (f *FeedItem) DedupeKey() string {
	return f.SourceName + "\x00" + f.ID
}
