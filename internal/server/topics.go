package server

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"coinwire/internal/aggregate"
	"coinwire/internal/tagger"
	"coinwire/internal/types"
)

// topicsPoolSize bounds how many recent items feed the topic analysis.
const topicsPoolSize = 200

type topicMention struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Category      string         `json:"category"`
	MentionCount  int            `json:"mentionCount"`
	LastMentioned time.Time      `json:"lastMentioned"`
	Sentiment     float64        `json:"sentiment"`
	RelatedNews   []relatedEntry `json:"relatedNews"`
}

type relatedEntry struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
	Source      string    `json:"source"`
}

type topicsResponse struct {
	Success bool           `json:"success"`
	Topics  []topicMention `json:"topics"`
	Error   string         `json:"error,omitempty"`
}

// handleTopics runs the news aggregate through the fixed topic
// vocabulary and reports per-topic mention counts and sentiment.
func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	result, err := s.aggregator.Aggregate(r.Context(), aggregate.Query{
		Platforms: []types.Platform{types.PlatformNews, types.PlatformMedium},
		Page:      1,
		PageSize:  topicsPoolSize,
		Tagged:    true,
	})
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	mentions := make([]topicMention, 0, len(tagger.Topics))
	for _, topic := range tagger.Topics {
		mention := topicMention{
			ID:          topic.ID,
			Name:        topic.Name,
			Category:    topic.Category,
			RelatedNews: []relatedEntry{},
		}

		var sentimentSum float64
		for _, item := range result.Items {
			if !s.tagger.MatchesTopic(*item, topic) {
				continue
			}
			mention.MentionCount++
			sentimentSum += item.Sentiment
			if item.PublishedAt.After(mention.LastMentioned) {
				mention.LastMentioned = item.PublishedAt
			}
			mention.RelatedNews = append(mention.RelatedNews, relatedEntry{
				Title:       item.Title,
				URL:         item.URL,
				PublishedAt: item.PublishedAt,
				Source:      item.SourceName,
			})
		}

		if mention.MentionCount > 0 {
			mention.Sentiment = sentimentSum / float64(mention.MentionCount)
		}
		mentions = append(mentions, mention)
	}

	sort.SliceStable(mentions, func(i, j int) bool {
		return mentions[i].MentionCount > mentions[j].MentionCount
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(topicsResponse{Success: true, Topics: mentions})
}
