package model

import (
	"slices"
	"time"
)

type SourceStatus string

const (
	StatusSuccess SourceStatus = "success"
	StatusError   SourceStatus = "error"
	StatusSkipped SourceStatus = "skipped"
)

// SourceResult is one manifest line: what happened when a source was considered.
type SourceResult struct {
	Source    string       `json:"source"`
	Status    SourceStatus `json:"status"`
	Count     int          `json:"count"`
	Error     string       `json:"error,omitempty"`
	ErrorKind ErrorKind    `json:"error_kind,omitempty"`
	ElapsedMS int64        `json:"elapsed_ms"`
}

// State summarises how much of a result came from live providers.
type State string

const (
	StateLive        State = "live"
	StatePartial     State = "partial"
	StateSynthetic   State = "synthetic"
	StateUnavailable State = "unavailable"
)

// ResultState derives the State from a manifest and the provenance of the payload.
func ResultState(sources []SourceResult, kind ProvenanceKind, records int) State {
	if kind == ProvenanceSynthetic {
		return StateSynthetic
	}
	if records == 0 && !anySuccess(sources) {
		return StateUnavailable
	}
	for _, s := range sources {
		if s.Status != StatusSuccess {
			return StatePartial
		}
	}
	return StateLive
}

func anySuccess(sources []SourceResult) bool {
	for _, s := range sources {
		if s.Status == StatusSuccess {
			return true
		}
	}
	return false
}

type NewsResult struct {
	Query            NewsQuery        `json:"query"`
	Records          []NewsRecord     `json:"records"`
	Sources          []SourceResult   `json:"sources"`
	OverallSentiment OverallSentiment `json:"overall_sentiment"`
	Provenance       ProvenanceKind   `json:"provenance"`
	State            State            `json:"state"`
	FetchedAt        time.Time        `json:"fetched_at"`
	Cached           bool             `json:"cached"`
}

type QuoteResult struct {
	Query      GainerQuery    `json:"query"`
	Records    []QuoteRecord  `json:"records"`
	Sources    []SourceResult `json:"sources"`
	Provenance ProvenanceKind `json:"provenance"`
	State      State          `json:"state"`
	FetchedAt  time.Time      `json:"fetched_at"`
	Cached     bool           `json:"cached"`
}

// Clone returns a copy that shares no slices or pointers with r.
func (r *NewsResult) Clone() *NewsResult {
	out := *r
	out.Query.PreferredSources = slices.Clone(r.Query.PreferredSources)
	out.Sources = slices.Clone(r.Sources)
	if r.Records != nil {
		out.Records = make([]NewsRecord, len(r.Records))
		for i, rec := range r.Records {
			rec.Symbols = slices.Clone(rec.Symbols)
			if rec.Sentiment != nil {
				s := *rec.Sentiment
				rec.Sentiment = &s
			}
			out.Records[i] = rec
		}
	}
	return &out
}

func (r *QuoteResult) Clone() *QuoteResult {
	out := *r
	out.Query.PreferredSources = slices.Clone(r.Query.PreferredSources)
	out.Sources = slices.Clone(r.Sources)
	out.Records = slices.Clone(r.Records)
	return &out
}
