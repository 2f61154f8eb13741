// Package tagger enriches feed items with keyword tags and a
// bag-of-words sentiment score. Both word lists are fixed, so tagging is
// deterministic and reproducible; this is a heuristic, not a model.
package tagger

import (
	"strings"

	"golang.org/x/text/cases"

	"coinwire/internal/types"
)

// Topic groups the keyword vocabulary for the topic dashboard.
type Topic struct {
	ID       string
	Name     string
	Category string
	Keywords []string
}

// Topics is the fixed domain vocabulary.
var Topics = []Topic{
	{ID: "bitcoin", Name: "Bitcoin", Category: "market", Keywords: []string{"bitcoin", "btc", "satoshi", "halving", "mining"}},
	{ID: "ethereum", Name: "Ethereum", Category: "technology", Keywords: []string{"ethereum", "eth", "smart contract", "defi", "gas"}},
	{ID: "defi", Name: "DeFi", Category: "defi", Keywords: []string{"defi", "yield", "liquidity", "amm", "dex"}},
	{ID: "nft", Name: "NFT", Category: "nft", Keywords: []string{"nft", "token", "art", "collectible", "marketplace"}},
	{ID: "regulation", Name: "Regulation", Category: "regulation", Keywords: []string{"regulation", "sec", "compliance", "legal", "tax"}},
}

var (
	positiveWords = []string{"bullish", "growth", "adoption", "innovation", "success"}
	negativeWords = []string{"bearish", "crash", "risk", "concern", "ban"}
)

// sentimentScale divides the net positive/negative match count before
// clamping to [-1, 1].
const sentimentScale = 10

type Tagger struct {
	vocabulary []string
	fold       cases.Caser
}

func New() *Tagger {
	t := &Tagger{fold: cases.Fold()}
	seen := make(map[string]bool)
	for _, topic := range Topics {
		for _, kw := range topic.Keywords {
			if !seen[kw] {
				seen[kw] = true
				t.vocabulary = append(t.vocabulary, kw)
			}
		}
	}
	return t
}

// Tag returns a copy of the item with Keywords and Sentiment populated.
// The input is never mutated.
func (t *Tagger) Tag(item types.FeedItem) types.FeedItem {
	text := t.fold.String(item.Title + " " + item.Content)

	var keywords []string
	for _, kw := range t.vocabulary {
		if strings.Contains(text, t.fold.String(kw)) {
			keywords = append(keywords, kw)
		}
	}

	item.Keywords = keywords
	item.Sentiment = t.sentiment(text)
	return item
}

// MatchesTopic reports whether any of the topic's keywords occur in the
// item's title or content.
func (t *Tagger) MatchesTopic(item types.FeedItem, topic Topic) bool {
	text := t.fold.String(item.Title + " " + item.Content)
	for _, kw := range topic.Keywords {
		if strings.Contains(text, t.fold.String(kw)) {
			return true
		}
	}
	return false
}

func (t *Tagger) sentiment(foldedText string) float64 {
	net := 0
	for _, w := range positiveWords {
		if strings.Contains(foldedText, w) {
			net++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(foldedText, w) {
			net--
		}
	}

	score := float64(net) / sentimentScale
	if score > 1 {
		return 1
	}
	if score < -1 {
		return -1
	}
	return score
}
