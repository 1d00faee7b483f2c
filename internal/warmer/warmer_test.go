package warmer

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"github.com/shiva994u/stock-news-analyzer/internal/aggregator"
	"github.com/shiva994u/stock-news-analyzer/internal/model"
	"github.com/shiva994u/stock-news-analyzer/pkg/news"
)

type fakeFetcher struct {
	mu      sync.Mutex
	symbols []string
	gainers int
}

func (f *fakeFetcher) RefreshNews(_ context.Context, q model.NewsQuery) (*model.NewsResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if q.Symbol == "" {
		return nil, &model.ValidationError{Field: "symbol", Reason: "must not be empty"}
	}
	f.symbols = append(f.symbols, q.Symbol)
	prov := model.ProvenanceLive
	if q.Symbol == "ZZZZ" {
		prov = model.ProvenanceSynthetic
	}
	return &model.NewsResult{Provenance: prov}, nil
}

func (f *fakeFetcher) RefreshGainers(context.Context, model.GainerQuery) (*model.QuoteResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gainers++
	return &model.QuoteResult{Provenance: model.ProvenanceLive}, nil
}

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunOnce(t *testing.T) {
	f := &fakeFetcher{}
	w := New(context.Background(), f, []string{"AAPL", "", "ZZZZ", "MSFT"}, quiet())

	live := w.RunOnce(context.Background())
	assert.Equal(t, 3, live)
	assert.Equal(t, 1, f.gainers)
	assert.Equal(t, []string{"AAPL", "ZZZZ", "MSFT"}, f.symbols)
}

func TestRunOnceStopsOnCancel(t *testing.T) {
	f := &fakeFetcher{}
	w := New(context.Background(), f, []string{"AAPL", "MSFT"}, quiet())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w.RunOnce(ctx)
	assert.Equal(t, 0, len(f.symbols))
}

func TestRegister(t *testing.T) {
	w := New(context.Background(), &fakeFetcher{}, nil, quiet())
	assert.Equal(t, nil, w.Register("0 */5 * * * *"))
	assert.NotEqual(t, nil, w.Register("not a cron"))
	w.Start()
	w.Stop()
}

type countingNews struct {
	calls atomic.Int32
}

func (c *countingNews) Name() string      { return "finnhub" }
func (c *countingNews) Configured() error { return nil }

func (c *countingNews) FetchNews(context.Context, model.NewsQuery) ([]model.NewsRecord, error) {
	c.calls.Add(1)
	return []model.NewsRecord{{ID: "1", Title: "Apple rally", PublishedAt: time.Now().Add(-time.Hour)}}, nil
}

func TestRunOnceReplacesFreshEntries(t *testing.T) {
	src := &countingNews{}
	e := aggregator.New([]news.Source{src}, nil, aggregator.Deps{Logger: quiet()}, aggregator.Options{})
	ctx := context.Background()

	e.FetchComprehensiveNews(ctx, model.NewsQuery{Symbol: "AAPL"})
	assert.Equal(t, int32(1), src.calls.Load())

	w := New(ctx, e, []string{"AAPL"}, quiet())
	assert.Equal(t, 1, w.RunOnce(ctx))
	assert.Equal(t, int32(2), src.calls.Load())

	res, _ := e.FetchComprehensiveNews(ctx, model.NewsQuery{Symbol: "AAPL"})
	assert.Equal(t, true, res.Cached)
	assert.Equal(t, int32(2), src.calls.Load())
}
