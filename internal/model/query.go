package model

import (
	"regexp"
	"strings"
)

const (
	DefaultNewsLimit   = 20
	DefaultGainerLimit = 10
	DefaultDays        = 7
	MaxLimit           = 100
	MaxDays            = 30
)

var symbolPattern = regexp.MustCompile(`^[A-Z0-9^][A-Z0-9.\-=]{0,14}$`)

type NewsQuery struct {
	Symbol           string   `json:"symbol"`
	Limit            int      `json:"limit"`
	Days             int      `json:"days"`
	PreferredSources []string `json:"preferred_sources,omitempty"`
	NoFallback       bool     `json:"no_fallback,omitempty"`
}

// Normalize validates the query and fills in defaults. The receiver is not modified.
func (q NewsQuery) Normalize() (NewsQuery, error) {
	q.Symbol = strings.ToUpper(strings.TrimSpace(q.Symbol))
	if q.Symbol == "" {
		return q, &ValidationError{Field: "symbol", Reason: "must not be empty"}
	}
	if !symbolPattern.MatchString(q.Symbol) {
		return q, &ValidationError{Field: "symbol", Reason: "malformed ticker " + q.Symbol}
	}
	if q.Limit < 0 {
		return q, &ValidationError{Field: "limit", Reason: "must not be negative"}
	}
	if q.Days < 0 {
		return q, &ValidationError{Field: "days", Reason: "must not be negative"}
	}
	if q.Limit == 0 {
		q.Limit = DefaultNewsLimit
	}
	q.Limit = min(q.Limit, MaxLimit)
	if q.Days == 0 {
		q.Days = DefaultDays
	}
	q.Days = min(q.Days, MaxDays)
	q.PreferredSources = normalizeSources(q.PreferredSources)
	return q, nil
}

type GainerQuery struct {
	Limit            int      `json:"limit"`
	MinPercentChange float64  `json:"min_percent_change"`
	PreferredSources []string `json:"preferred_sources,omitempty"`
	NoFallback       bool     `json:"no_fallback,omitempty"`
}

func (q GainerQuery) Normalize() (GainerQuery, error) {
	if q.Limit < 0 {
		return q, &ValidationError{Field: "limit", Reason: "must not be negative"}
	}
	if q.Limit == 0 {
		q.Limit = DefaultGainerLimit
	}
	q.Limit = min(q.Limit, MaxLimit)
	q.PreferredSources = normalizeSources(q.PreferredSources)
	return q, nil
}

func normalizeSources(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
