// Package warmer refreshes cached results for a watchlist on a cron schedule
// so interactive requests for popular tickers are served from cache.
package warmer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/shiva994u/stock-news-analyzer/internal/model"
)

// Fetcher refreshes a query and stores the result in the cache, even when a
// fresh entry is already there.
type Fetcher interface {
	RefreshNews(ctx context.Context, q model.NewsQuery) (*model.NewsResult, error)
	RefreshGainers(ctx context.Context, q model.GainerQuery) (*model.QuoteResult, error)
}

type Warmer struct {
	cron      *cron.Cron
	fetcher   Fetcher
	watchlist []string
	logger    *slog.Logger
	ctx       context.Context
}

func New(ctx context.Context, f Fetcher, watchlist []string, logger *slog.Logger) *Warmer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Warmer{
		cron:      cron.New(cron.WithSeconds()),
		fetcher:   f,
		watchlist: watchlist,
		logger:    logger,
		ctx:       ctx,
	}
}

// Register schedules the warm-up using the six-field cron format (with seconds).
func (w *Warmer) Register(spec string) error {
	if _, err := w.cron.AddFunc(spec, func() { w.RunOnce(w.ctx) }); err != nil {
		return fmt.Errorf("register warm task: %w", err)
	}
	return nil
}

func (w *Warmer) Start() {
	w.cron.Start()
	w.logger.Info("cache warmer started", "symbols", len(w.watchlist))
}

func (w *Warmer) Stop() {
	<-w.cron.Stop().Done()
	w.logger.Info("cache warmer stopped")
}

// RunOnce warms the default gainers query and default news query for each
// watched symbol. It returns how many queries came back live.
func (w *Warmer) RunOnce(ctx context.Context) int {
	live := 0
	if res, err := w.fetcher.RefreshGainers(ctx, model.GainerQuery{}); err != nil {
		w.logger.Error("warm gainers failed", "error", err)
	} else if res.Provenance == model.ProvenanceLive {
		live++
	}

	for _, sym := range w.watchlist {
		if ctx.Err() != nil {
			break
		}
		res, err := w.fetcher.RefreshNews(ctx, model.NewsQuery{Symbol: sym})
		if err != nil {
			w.logger.Error("warm news failed", "symbol", sym, "error", err)
			continue
		}
		if res.Provenance == model.ProvenanceLive {
			live++
		}
	}
	w.logger.Info("cache warmed", "symbols", len(w.watchlist), "live", live)
	return live
}
