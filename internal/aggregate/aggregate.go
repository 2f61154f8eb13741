// Package aggregate fans out fetch+parse+normalize across every
// registered source concurrently, joins all branches, and turns the
// merged items into a deduplicated, sorted, filtered page. One slow or
// broken source never aborts or delays its siblings; the call as a whole
// fails only when every source errored.
package aggregate

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/mmcdole/gofeed"
	"golang.org/x/text/cases"

	"coinwire/internal/fetch"
	"coinwire/internal/sources"
	"coinwire/internal/tagger"
	"coinwire/internal/types"
)

var errNoTelegram = errors.New("no telegram client configured")

// Fetcher retrieves a source endpoint's raw payload.
type Fetcher interface {
	Fetch(ctx context.Context, source types.Source) (*fetch.Payload, error)
}

// Parser decodes a raw payload into generic entries.
type Parser interface {
	Parse(payload *fetch.Payload) ([]*gofeed.Item, error)
}

// Normalizer maps one parsed entry to a FeedItem, or nil to drop it.
type Normalizer func(entry *gofeed.Item, source types.Source) *types.FeedItem

// TelegramFetcher serves telegram channel sources, which bypass the
// fetch/parse stages entirely.
type TelegramFetcher interface {
	Messages(ctx context.Context, source types.Source) ([]*types.FeedItem, error)
}

// Query is one aggregation request. Page is 1-indexed; PageSize of zero
// falls back to the aggregator default. Tagged requests the
// keyword/sentiment enrichment pass.
type Query struct {
	Platforms []types.Platform
	Category  string
	Keyword   string
	Page      int
	PageSize  int
	Tagged    bool
}

// Result is one page of the merged, deduplicated, sorted item list.
type Result struct {
	Items   []*types.FeedItem
	Total   int
	HasMore bool
}

type Aggregator struct {
	registry  *sources.Registry
	fetcher   Fetcher
	parser    Parser
	normalize Normalizer
	telegram  TelegramFetcher
	tagger    *tagger.Tagger
	pageSize  int
	fold      cases.Caser
}

type Options struct {
	Registry  *sources.Registry
	Fetcher   Fetcher
	Parser    Parser
	Normalize Normalizer
	Telegram  TelegramFetcher
	Tagger    *tagger.Tagger
	PageSize  int
}

func New(opts Options) *Aggregator {
	if opts.PageSize == 0 {
		opts.PageSize = 20
	}
	return &Aggregator{
		registry:  opts.Registry,
		fetcher:   opts.Fetcher,
		parser:    opts.Parser,
		normalize: opts.Normalize,
		telegram:  opts.Telegram,
		tagger:    opts.Tagger,
		pageSize:  opts.PageSize,
		fold:      cases.Fold(),
	}
}

// Aggregate runs one full aggregation pass. It returns a
// *types.AggregateError only when every selected source returned an
// error; a source with zero entries, or a keyword filter that matches
// nothing, is still a success.
func (a *Aggregator) Aggregate(ctx context.Context, query Query) (*Result, error) {
	srcs := a.registry.Filter(query.Platforms, query.Category)

	merged, failed := a.collect(ctx, srcs)
	if len(srcs) > 0 && failed == len(srcs) {
		return nil, &types.AggregateError{Sources: len(srcs), Failed: failed}
	}

	items := dedupe(merged)

	if query.Tagged {
		for i, item := range items {
			tagged := a.tagger.Tag(*item)
			items[i] = &tagged
		}
	}

	if query.Keyword != "" {
		items = a.filterKeyword(items, query.Keyword)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})

	return paginate(items, query.Page, a.pageSizeFor(query)), nil
}

// collect fans out one goroutine per source and waits for all of them.
// Each branch writes only its own slots, so the merge needs no locking.
// failed counts sources that returned an error; an empty feed is not a
// failure.
func (a *Aggregator) collect(ctx context.Context, srcs []types.Source) ([]*types.FeedItem, int) {
	results := make([][]*types.FeedItem, len(srcs))
	errs := make([]error, len(srcs))

	var wg sync.WaitGroup
	for i, src := range srcs {
		wg.Add(1)
		go func(i int, src types.Source) {
			defer wg.Done()
			items, err := a.fetchSource(ctx, src)
			if err != nil {
				slog.Warn("source failed", "source", src.Name, "error", err)
				errs[i] = err
				return
			}
			results[i] = items
		}(i, src)
	}
	wg.Wait()

	var merged []*types.FeedItem
	failed := 0
	for i, items := range results {
		if errs[i] != nil {
			failed++
			continue
		}
		merged = append(merged, items...)
	}
	return merged, failed
}

func (a *Aggregator) fetchSource(ctx context.Context, src types.Source) ([]*types.FeedItem, error) {
	if src.Platform == types.PlatformTelegram {
		if a.telegram == nil {
			return nil, &types.FetchError{Source: src.Name, Err: errNoTelegram}
		}
		return a.telegram.Messages(ctx, src)
	}

	payload, err := a.fetcher.Fetch(ctx, src)
	if err != nil {
		return nil, err
	}

	entries, err := a.parser.Parse(payload)
	if err != nil {
		return nil, err
	}

	items := make([]*types.FeedItem, 0, len(entries))
	for _, entry := range entries {
		if item := a.normalize(entry, src); item != nil {
			items = append(items, item)
		}
	}

	slog.Debug("source normalized", "source", src.Name, "entries", len(entries), "items", len(items))
	return items, nil
}

// dedupe drops items whose (source, id) key was already seen; the first
// occurrence in merge order wins.
func dedupe(items []*types.FeedItem) []*types.FeedItem {
	seen := make(map[string]bool, len(items))
	deduped := make([]*types.FeedItem, 0, len(items))
	for _, item := range items {
		key := item.DedupeKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, item)
	}
	return deduped
}

// filterKeyword keeps items whose title or content contains the keyword
// case-insensitively, or whose tagged keywords match it exactly. Items
// not already tagged are matched against a throwaway tagged copy so the
// filter never adds Keywords or Sentiment to the output.
func (a *Aggregator) filterKeyword(items []*types.FeedItem, keyword string) []*types.FeedItem {
	needle := a.fold.String(keyword)
	kept := make([]*types.FeedItem, 0, len(items))
	for _, item := range items {
		if strings.Contains(a.fold.String(item.Title+" "+item.Content), needle) {
			kept = append(kept, item)
			continue
		}
		keywords := item.Keywords
		if len(keywords) == 0 {
			keywords = a.tagger.Tag(*item).Keywords
		}
		for _, kw := range keywords {
			if a.fold.String(kw) == needle {
				kept = append(kept, item)
				break
			}
		}
	}
	return kept
}

func (a *Aggregator) pageSizeFor(query Query) int {
	if query.PageSize > 0 {
		return query.PageSize
	}
	return a.pageSize
}

func paginate(items []*types.FeedItem, page, pageSize int) *Result {
	if page < 1 {
		page = 1
	}

	total := len(items)
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &Result{
		Items:   items[start:end],
		Total:   total,
		HasMore: total > page*pageSize,
	}
}
