// Package dedup removes records that describe the same story or the same ticker.
// The first occurrence of a key wins, so callers control priority through order.
package dedup

import (
	"strings"

	"github.com/shiva994u/stock-news-analyzer/internal/model"
)

const titleKeyLen = 50

// NewsKey is the normalized title prefix, so the same headline syndicated by
// several sources collapses to one record. Untitled records fall back to
// their id and source.
func NewsKey(r model.NewsRecord) string {
	title := strings.Join(strings.Fields(strings.ToLower(r.Title)), " ")
	if title == "" {
		return r.ID + "|" + r.SourceName
	}
	runes := []rune(title)
	if len(runes) > titleKeyLen {
		runes = runes[:titleKeyLen]
	}
	return string(runes)
}

func QuoteKey(q model.QuoteRecord) string {
	return strings.ToUpper(strings.TrimSpace(q.Symbol))
}

func News(records []model.NewsRecord) []model.NewsRecord {
	return unique(records, NewsKey)
}

func Quotes(records []model.QuoteRecord) []model.QuoteRecord {
	return unique(records, QuoteKey)
}

func unique[T any](records []T, key func(T) string) []T {
	if len(records) == 0 {
		return records
	}
	seen := make(map[string]struct{}, len(records))
	out := make([]T, 0, len(records))
	for _, r := range records {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}
