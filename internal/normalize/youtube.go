package normalize

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
)

// videoID resolves the entry's YouTube video id, preferring the
// yt:videoId extension and falling back to the link URL. Channel feeds
// always carry the extension; the URL grammar covers entries relayed
// through generic aggregators.
func videoID(entry *gofeed.Item) string {
	if ext, ok := entry.Extensions["yt"]; ok {
		if ids, ok := ext["videoId"]; ok && len(ids) > 0 && ids[0].Value != "" {
			return ids[0].Value
		}
	}
	return VideoIDFromURL(entry.Link)
}

// VideoIDFromURL extracts a video id from the standard YouTube URL
// forms: watch?v=ID, youtu.be/ID and embed/ID.
func VideoIDFromURL(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}

	switch {
	case strings.HasSuffix(u.Host, "youtu.be"):
		return strings.Trim(u.Path, "/")
	case strings.Contains(u.Path, "/embed/"):
		_, id, _ := strings.Cut(u.Path, "/embed/")
		return strings.Trim(id, "/")
	default:
		return u.Query().Get("v")
	}
}

func videoDescription(entry *gofeed.Item) string {
	if group := mediaGroup(entry); group != nil {
		if descs, ok := group.Children["description"]; ok && len(descs) > 0 {
			return descs[0].Value
		}
	}
	return entry.Description
}

// videoThumbnail reads media:group/media:thumbnail/@url, defaulting to
// the predictable i.ytimg.com location.
func videoThumbnail(entry *gofeed.Item, videoID string) string {
	if group := mediaGroup(entry); group != nil {
		if thumbs, ok := group.Children["thumbnail"]; ok && len(thumbs) > 0 {
			if u := thumbs[0].Attrs["url"]; u != "" {
				return u
			}
		}
	}
	return fmt.Sprintf("https://i.ytimg.com/vi/%s/hqdefault.jpg", videoID)
}

func mediaGroup(entry *gofeed.Item) *ext.Extension {
	media, ok := entry.Extensions["media"]
	if !ok {
		return nil
	}
	groups, ok := media["group"]
	if !ok || len(groups) == 0 {
		return nil
	}
	return &groups[0]
}
