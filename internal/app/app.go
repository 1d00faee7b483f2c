// Package app wires configuration into a ready Engine and its optional
// storage backends. Both binaries build through it.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shiva994u/stock-news-analyzer/db"
	"github.com/shiva994u/stock-news-analyzer/internal/aggregator"
	"github.com/shiva994u/stock-news-analyzer/internal/cache"
	"github.com/shiva994u/stock-news-analyzer/internal/config"
	"github.com/shiva994u/stock-news-analyzer/internal/history"
	"github.com/shiva994u/stock-news-analyzer/internal/quota"
	"github.com/shiva994u/stock-news-analyzer/internal/sentiment"
	"github.com/shiva994u/stock-news-analyzer/internal/synthetic"
	"github.com/shiva994u/stock-news-analyzer/pkg/news"
	"github.com/shiva994u/stock-news-analyzer/pkg/provider"
	"github.com/shiva994u/stock-news-analyzer/pkg/quotes"
)

const connectTimeout = 5 * time.Second

type App struct {
	Engine *aggregator.Engine

	recorder history.Recorder
	redis    *redis.Client
}

// NewsSources returns the news adapters in registration order.
func NewsSources(cfg *config.Config) []news.Source {
	client := provider.NewHTTPClient()
	return []news.Source{
		news.NewFinnHubClient(cfg.Providers.FinnhubKey, client),
		news.NewAlphaVantageClient(cfg.Providers.AlphaVantageKey, client),
		news.NewMassiveClient(cfg.Providers.MassiveKey, client),
		news.NewYahooRSSClient(client),
		news.NewFinvizClient(client),
	}
}

// QuoteSources returns the gainers adapters in registration order.
func QuoteSources(cfg *config.Config) []quotes.Source {
	client := provider.NewHTTPClient()
	return []quotes.Source{
		quotes.NewAlphaVantageClient(cfg.Providers.AlphaVantageKey, client),
		quotes.NewMassiveClient(cfg.Providers.MassiveKey, client),
		quotes.NewYahooScreenerClient(client),
	}
}

// New builds the engine. Storage backends that fail to connect are logged and
// skipped; the engine always comes up.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{}

	limits := quota.Limits{Default: cfg.Sources.DailyQuota, PerSource: cfg.Sources.Quotas}
	var counter quota.Counter = quota.NewMemory(limits, nil)
	if cfg.Storage.RedisURL != "" {
		cctx, cancel := context.WithTimeout(ctx, connectTimeout)
		client, err := db.ConnectRedis(cctx, cfg.Storage.RedisURL)
		cancel()
		if err != nil {
			logger.Warn("redis unavailable, using in-process quota", "error", err)
		} else {
			a.redis = client
			counter = quota.NewRedis(client, limits, nil)
		}
	}

	a.recorder = recorders(ctx, cfg, logger)

	gen := synthetic.New(nil, nil)
	if cfg.SyntheticSeed != 0 {
		gen = synthetic.NewSeeded(cfg.SyntheticSeed, nil)
	}

	a.Engine = aggregator.New(NewsSources(cfg), QuoteSources(cfg), aggregator.Deps{
		Cache:     cache.New(cfg.Cache.TTL, cfg.Cache.Capacity, nil),
		Limiters:  provider.NewLimiters(cfg.Sources.RPS, 1),
		Quota:     counter,
		Synthetic: gen,
		Scorer:    sentiment.NewScorer(),
		History:   a.recorder,
		Logger:    logger,
	}, aggregator.Options{SourceTimeout: cfg.Sources.Timeout})

	return a
}

func recorders(ctx context.Context, cfg *config.Config, logger *slog.Logger) history.Recorder {
	var out history.Multi

	if cfg.Storage.SQLitePath != "" {
		s, err := history.OpenSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			logger.Warn("sqlite history disabled", "path", cfg.Storage.SQLitePath, "error", err)
		} else {
			out = append(out, s)
		}
	}

	if cfg.Storage.DatabaseURL != "" {
		cctx, cancel := context.WithTimeout(ctx, connectTimeout)
		conn, err := db.Connect(cctx, cfg.Storage.DatabaseURL)
		if err == nil {
			p := history.NewPostgres(conn)
			if err = p.Migrate(cctx); err != nil {
				p.Close()
			} else {
				out = append(out, p)
			}
		}
		cancel()
		if err != nil {
			logger.Warn("postgres history disabled", "error", err)
		}
	}

	if cfg.Storage.KafkaBroker != "" {
		out = append(out, history.NewKafka(cfg.Storage.KafkaBroker, cfg.Storage.KafkaTopic))
	}

	if len(out) == 0 {
		return history.Noop{}
	}
	return out
}

func (a *App) Close() error {
	var errs []error
	if err := a.recorder.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close history: %w", err))
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	return errors.Join(errs...)
}
