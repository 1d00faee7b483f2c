// Package history records one row per aggregation so operators can see how
// often each provider answered. Recording is write-only and best effort.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/shiva994u/stock-news-analyzer/internal/model"
)

type Kind string

const (
	KindNews    Kind = "news"
	KindGainers Kind = "gainers"
)

type Event struct {
	Kind       Kind                 `json:"kind"`
	Symbol     string               `json:"symbol,omitempty"`
	Provenance model.ProvenanceKind `json:"provenance"`
	State      model.State          `json:"state"`
	Records    int                  `json:"records"`
	Sources    []model.SourceResult `json:"sources"`
	FetchedAt  time.Time            `json:"fetched_at"`
}

// SourceNames lists the manifest sources in order.
func (e Event) SourceNames() []string {
	names := make([]string, 0, len(e.Sources))
	for _, s := range e.Sources {
		names = append(names, s.Source)
	}
	return names
}

// Failed lists the manifest sources that did not succeed.
func (e Event) Failed() []string {
	var names []string
	for _, s := range e.Sources {
		if s.Status != model.StatusSuccess {
			names = append(names, s.Source)
		}
	}
	return names
}

func NewsEvent(r *model.NewsResult) Event {
	return Event{
		Kind:       KindNews,
		Symbol:     r.Query.Symbol,
		Provenance: r.Provenance,
		State:      r.State,
		Records:    len(r.Records),
		Sources:    r.Sources,
		FetchedAt:  r.FetchedAt,
	}
}

func GainersEvent(r *model.QuoteResult) Event {
	return Event{
		Kind:       KindGainers,
		Provenance: r.Provenance,
		State:      r.State,
		Records:    len(r.Records),
		Sources:    r.Sources,
		FetchedAt:  r.FetchedAt,
	}
}

type Recorder interface {
	Record(ctx context.Context, e Event) error
	Close() error
}

type Noop struct{}

func (Noop) Record(context.Context, Event) error { return nil }

func (Noop) Close() error { return nil }

// Multi fans an event out to every recorder and joins their errors.
type Multi []Recorder

func (m Multi) Record(ctx context.Context, e Event) error {
	var errs []error
	for _, r := range m {
		if err := r.Record(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, r := range m {
		if err := r.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
