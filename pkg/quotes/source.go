package quotes

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/shiva994u/stock-news-analyzer/internal/model"
)

// Source is a top-gainers provider adapter. FetchGainers makes exactly one outbound call.
type Source interface {
	Name() string
	Configured() error
	FetchGainers(ctx context.Context, q model.GainerQuery) ([]model.QuoteRecord, error)
}

func finish(r model.QuoteRecord, source string, fetchedAt time.Time) model.QuoteRecord {
	r.Symbol = strings.ToUpper(strings.TrimSpace(r.Symbol))
	if r.DisplayName == "" {
		r.DisplayName = r.Symbol
	}
	if r.LastUpdate.IsZero() {
		r.LastUpdate = fetchedAt
	}
	r.Provenance = model.Live(source)
	return r
}

// parseNumber reads provider numerics that arrive as strings, e.g. "12.5%".
func parseNumber(s string) float64 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
