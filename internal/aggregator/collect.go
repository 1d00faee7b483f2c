package aggregator

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shiva994u/stock-news-analyzer/internal/model"
)

type candidate[T any] struct {
	name       string
	configured func() error
	fetch      func(ctx context.Context) ([]T, error)
}

type outcome[T any] struct {
	records []T
	err     error
	elapsed time.Duration
}

// collect runs every eligible candidate concurrently, each under its own
// timeout, and waits for all of them. It returns the successful batches in
// candidate order and a manifest entry per candidate.
func collect[T any](ctx context.Context, e *Engine, cands []candidate[T]) ([][]T, []model.SourceResult) {
	manifest := make([]model.SourceResult, len(cands))
	outcomes := make([]*outcome[T], len(cands))

	var g errgroup.Group
	g.SetLimit(e.concurrency)

	for i, c := range cands {
		manifest[i] = model.SourceResult{Source: c.name}

		if err := c.configured(); err != nil {
			manifest[i].Status = model.StatusSkipped
			manifest[i].Error = err.Error()
			manifest[i].ErrorKind = model.KindOf(err)
			continue
		}
		if err := e.quota.Take(ctx, c.name); err != nil {
			manifest[i].Status = model.StatusSkipped
			manifest[i].Error = err.Error()
			manifest[i].ErrorKind = model.KindOf(err)
			e.logger.Warn("source skipped", "source", c.name, "error", err)
			continue
		}

		g.Go(func() error {
			outcomes[i] = runOne(ctx, e, c)
			return nil // never fail the group, errors are reported per source
		})
	}
	_ = g.Wait()

	var batches [][]T
	for i, o := range outcomes {
		if o == nil {
			continue
		}
		manifest[i].ElapsedMS = o.elapsed.Milliseconds()
		if o.err != nil {
			manifest[i].Status = model.StatusError
			manifest[i].Error = o.err.Error()
			manifest[i].ErrorKind = model.KindOf(o.err)
			e.logger.Warn("source failed", "source", cands[i].name, "kind", manifest[i].ErrorKind, "error", o.err)
			continue
		}
		manifest[i].Status = model.StatusSuccess
		manifest[i].Count = len(o.records)
		batches = append(batches, o.records)
	}
	return batches, manifest
}

// runOne returns once the adapter answers or its timeout fires, whichever is
// first. An adapter that ignores its context is abandoned, not waited for.
func runOne[T any](ctx context.Context, e *Engine, c candidate[T]) *outcome[T] {
	start := time.Now()
	sctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	if err := e.limiters.Wait(sctx, c.name); err != nil {
		return &outcome[T]{err: &model.TransportError{Source: c.name, Err: err}, elapsed: time.Since(start)}
	}

	done := make(chan *outcome[T], 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- &outcome[T]{err: fmt.Errorf("%s: panic: %v", c.name, r)}
			}
		}()
		records, err := c.fetch(sctx)
		done <- &outcome[T]{records: records, err: err}
	}()

	var o *outcome[T]
	select {
	case o = <-done:
	case <-sctx.Done():
		o = &outcome[T]{err: &model.TransportError{Source: c.name, Err: sctx.Err()}}
	}
	o.elapsed = time.Since(start)
	return o
}
