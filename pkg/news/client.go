package news

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/shiva994u/stock-news-analyzer/internal/model"
)

// Source is a news provider adapter. FetchNews makes exactly one outbound call.
type Source interface {
	Name() string
	// Configured returns a *model.ConfigurationError when the source cannot be used.
	Configured() error
	FetchNews(ctx context.Context, q model.NewsQuery) ([]model.NewsRecord, error)
}

func generateExternalID(url string) string {
	sum := sha256.Sum256([]byte(url))
	return fmt.Sprintf("%x", sum)[:16]
}

// finish applies the defaults every adapter shares.
func finish(r model.NewsRecord, source string, fetchedAt time.Time) model.NewsRecord {
	r.SourceName = source
	r.Provenance = model.Live(source)
	if r.ID == "" {
		r.ID = generateExternalID(r.URL + r.Title)
	}
	if r.PublishedAt.IsZero() {
		r.PublishedAt = fetchedAt
	}
	if r.Category == "" {
		r.Category = model.InferCategory(r.Title)
	}
	if r.Sentiment == nil {
		r.Confidence = 0
	}
	return r
}

func float64Ptr(v float64) *float64 { return &v }
