package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/feeds"

	"coinwire/internal/aggregate"
)

// The RSS/Atom exports let feed readers subscribe to the merged
// aggregate without speaking the JSON API.

func (s *Server) handleExportRSS(w http.ResponseWriter, r *http.Request) {
	feed, ok := s.exportFeed(w, r)
	if !ok {
		return
	}
	rss, err := feed.ToRss()
	if err != nil {
		slog.Error("rss export failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	fmt.Fprint(w, rss)
}

func (s *Server) handleExportAtom(w http.ResponseWriter, r *http.Request) {
	feed, ok := s.exportFeed(w, r)
	if !ok {
		return
	}
	atom, err := feed.ToAtom()
	if err != nil {
		slog.Error("atom export failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/atom+xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	fmt.Fprint(w, atom)
}

func (s *Server) exportFeed(w http.ResponseWriter, r *http.Request) (*feeds.Feed, bool) {
	result, err := s.aggregator.Aggregate(r.Context(), aggregate.Query{Page: 1, PageSize: s.config.PageSize})
	if err != nil {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprintf(w, "Error: %v", err)
		return nil, false
	}

	items := make([]*feeds.Item, 0, len(result.Items))
	for _, entry := range result.Items {
		items = append(items, &feeds.Item{
			Id:          entry.ID,
			Title:       entry.Title,
			Link:        &feeds.Link{Href: entry.URL},
			Description: entry.Content,
			Author:      &feeds.Author{Name: entry.Author},
			Created:     entry.PublishedAt,
		})
	}

	return &feeds.Feed{
		Title:       "Coinwire Aggregate",
		Link:        &feeds.Link{Href: "http://localhost/"},
		Description: "Aggregated crypto news and social feeds",
		Created:     time.Now().UTC(),
		Items:       items,
	}, true
}
