package normalize

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// Reddit's Atom feed wraps every post in boilerplate: a preview table,
// "[link] [comments]" anchors and a "submitted by /u/username" line.
// None of that is post content.
var redditNoise = []*regexp.Regexp{
	regexp.MustCompile(`\[link\]`),
	regexp.MustCompile(`\[comments?\]`),
	regexp.MustCompile(`(?i)submitted\s+by`),
	regexp.MustCompile(`/u/[^\s]+`),
}

func redditContent(entry *gofeed.Item) string {
	raw := firstNonEmpty(entry.Content, entry.Description)
	if raw == "" {
		return ""
	}

	// The preview table's cell text survives tag stripping, so the
	// table elements have to go before the strip pass.
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw)); err == nil {
		doc.Find("table").Remove()
		if inner, err := doc.Find("body").Html(); err == nil {
			raw = inner
		}
	}

	text := StripHTML(raw)
	for _, re := range redditNoise {
		text = re.ReplaceAllString(text, "")
	}
	return CollapseWhitespace(text)
}
