package handler

import (
	"time"

	"github.com/shiva994u/stock-news-analyzer/internal/model"
)

type BulkSentimentRequest struct {
	Quotes []model.QuoteRecord `json:"quotes" binding:"required"`
}

type BulkSentimentResponse struct {
	Results map[string]model.SentimentResult `json:"results"`
	Total   int                              `json:"total"`
}

type CacheStatsResponse struct {
	Entries     int    `json:"entries"`
	Capacity    int    `json:"capacity"`
	TTL         string `json:"ttl"`
	Hits        uint64 `json:"hits"`
	Misses      uint64 `json:"misses"`
	Evictions   uint64 `json:"evictions"`
	Expirations uint64 `json:"expirations"`
}

type SourceResponse struct {
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	Configured bool   `json:"configured"`
	Reason     string `json:"reason,omitempty"`
	UsedToday  int64  `json:"used_today"`
}

type SourcesResponse struct {
	Sources []SourceResponse `json:"sources"`
	Total   int              `json:"total"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
