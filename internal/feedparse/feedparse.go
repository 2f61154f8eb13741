// Package feedparse decodes raw feed payloads into generic entries.
// gofeed's universal parser detects RSS 2.0, Atom and JSON Feed and
// exposes namespaced XML extensions (yt:videoId, media:group,
// link attributes) as a typed tree, which is everything the per-kind
// normalizers need.
package feedparse

import (
	"bytes"

	"github.com/mmcdole/gofeed"

	"coinwire/internal/fetch"
	"coinwire/internal/types"
)

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// Parse decodes a payload into its entries. A well-formed feed with zero
// entries returns an empty slice; malformed input returns a
// *types.ParseError.
//
// A gofeed.Parser is built per call: gofeed initializes its format
// translators lazily on first use, so a shared instance is not safe
// under concurrent Parse calls.
func (p *Parser) Parse(payload *fetch.Payload) ([]*gofeed.Item, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(payload.Body))
	if err != nil {
		return nil, &types.ParseError{Source: payload.Source.Name, Err: err}
	}
	return feed.Items, nil
}
