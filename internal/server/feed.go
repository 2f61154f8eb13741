package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"coinwire/internal/aggregate"
	"coinwire/internal/types"
)

// feedResponse is the JSON envelope every aggregation endpoint returns.
// PublishedAt serializes as RFC 3339 through time.Time's marshaler.
type feedResponse struct {
	Success bool              `json:"success"`
	Items   []*types.FeedItem `json:"items"`
	HasMore bool              `json:"hasMore"`
	Total   int               `json:"total"`
	Error   string            `json:"error,omitempty"`
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	query, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.serveAggregate(w, r, query)
}

// platformHandler scopes the main aggregation endpoint to a fixed set of
// platforms but accepts the same page/category/keyword parameters.
func (s *Server) platformHandler(platforms ...types.Platform) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := parseQuery(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		query.Platforms = platforms
		s.serveAggregate(w, r, query)
	}
}

func (s *Server) serveAggregate(w http.ResponseWriter, r *http.Request, query aggregate.Query) {
	cacheKey := r.URL.Path + "?" + r.URL.Query().Encode()
	if cached, ok := s.cache.Get(r.Context(), cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(cached)
		return
	}

	result, err := s.aggregator.Aggregate(r.Context(), query)
	if err != nil {
		if types.IsAggregateError(err) {
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		slog.Error("aggregation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	items := result.Items
	if items == nil {
		items = []*types.FeedItem{}
	}

	body, err := json.Marshal(feedResponse{
		Success: true,
		Items:   items,
		HasMore: result.HasMore,
		Total:   result.Total,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.cache.Set(r.Context(), cacheKey, body)
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// parseQuery reads the aggregation parameters: page (positive integer,
// default 1), platform, category, keyword, tagged.
func parseQuery(r *http.Request) (aggregate.Query, error) {
	query := aggregate.Query{Page: 1}
	params := r.URL.Query()

	if raw := params.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return query, errInvalidPage
		}
		query.Page = page
	}

	if raw := params.Get("platform"); raw != "" {
		platform, err := types.ParsePlatform(raw)
		if err != nil {
			return query, err
		}
		query.Platforms = []types.Platform{platform}
	}

	query.Category = params.Get("category")
	query.Keyword = params.Get("keyword")
	query.Tagged = params.Get("tagged") == "true"

	return query, nil
}

var errInvalidPage = &badRequestError{"page must be a positive integer"}

type badRequestError struct{ msg string }

func (e *badRequestError) Error() string { return e.msg }

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(feedResponse{
		Success: false,
		Items:   []*types.FeedItem{},
		Error:   message,
	})
}
