// Package normalize maps parsed feed entries into canonical FeedItems.
// Each platform dialect has its own field aliases and noise profile; the
// HTML stripping pass is shared by all of them. Entries missing a
// parseable date or a usable id/link are dropped, never defaulted.
package normalize

import (
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"coinwire/internal/types"
)

var (
	htmlStripper = bluemonday.StrictPolicy()
	whitespace   = regexp.MustCompile(`\s+`)
)

// Entry converts one parsed entry into a FeedItem, dispatching on the
// source platform. It returns nil when the entry has no parseable date
// or no usable identifier; a nil result is a skip, not an error.
func Entry(entry *gofeed.Item, source types.Source) *types.FeedItem {
	if entry == nil {
		return nil
	}

	publishedAt, ok := entryDate(entry)
	if !ok {
		return nil
	}

	item := &types.FeedItem{
		Title:       StripHTML(entry.Title),
		URL:         entry.Link,
		PublishedAt: publishedAt,
		SourceName:  source.Name,
		Category:    source.Category,
		Platform:    source.Platform,
	}

	switch source.Platform {
	case types.PlatformReddit:
		item.ID = entryID(entry)
		item.Content = redditContent(entry)
		item.Author = entryAuthor(entry, source)
	case types.PlatformTwitter:
		item.ID = entryID(entry)
		item.Content = twitterContent(entry)
		item.Author = strings.TrimPrefix(entryAuthor(entry, source), "@")
	case types.PlatformYouTube:
		videoID := videoID(entry)
		if videoID == "" {
			return nil
		}
		item.ID = videoID
		item.Content = StripHTML(videoDescription(entry))
		item.Author = entryAuthor(entry, source)
		item.Thumbnail = videoThumbnail(entry, videoID)
	default: // news, medium and anything RSS-shaped
		item.ID = entryID(entry)
		item.Content = StripHTML(firstNonEmpty(entry.Content, entry.Description))
		item.Author = entryAuthor(entry, source)
	}

	if item.ID == "" {
		return nil
	}

	return item
}

// entryDate resolves the publication instant from whatever date field
// the dialect provides. gofeed already parses the common layouts; the
// dateparse fallback covers feeds with nonstandard date strings.
func entryDate(entry *gofeed.Item) (time.Time, bool) {
	if entry.PublishedParsed != nil {
		return *entry.PublishedParsed, true
	}
	if entry.UpdatedParsed != nil {
		return *entry.UpdatedParsed, true
	}
	for _, raw := range []string{entry.Published, entry.Updated} {
		if raw == "" {
			continue
		}
		if t, err := dateparse.ParseAny(raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func entryID(entry *gofeed.Item) string {
	if entry.GUID != "" {
		return entry.GUID
	}
	return entry.Link
}

func entryAuthor(entry *gofeed.Item, source types.Source) string {
	if entry.Author != nil && entry.Author.Name != "" {
		return entry.Author.Name
	}
	return source.Name
}

// twitterContent prefers the tweet text in the title; Nitter duplicates
// it as an HTML description.
func twitterContent(entry *gofeed.Item) string {
	if entry.Title != "" {
		return StripHTML(entry.Title)
	}
	return StripHTML(entry.Description)
}

// StripHTML removes markup and decodes entities. All titles and content
// bodies pass through here regardless of dialect, so no raw tags survive
// into a FeedItem.
func StripHTML(s string) string {
	s = htmlStripper.Sanitize(s)
	s = html.UnescapeString(s)
	return CollapseWhitespace(s)
}

func CollapseWhitespace(s string) string {
	// \s does not cover the non-breaking spaces &nbsp; decodes to.
	s = strings.ReplaceAll(s, " ", " ")
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
