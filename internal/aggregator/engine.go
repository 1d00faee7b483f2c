// Package aggregator fans a query out to every eligible provider, reconciles
// what comes back and degrades to synthetic data when nothing live answers.
package aggregator

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/shiva994u/stock-news-analyzer/internal/cache"
	"github.com/shiva994u/stock-news-analyzer/internal/dedup"
	"github.com/shiva994u/stock-news-analyzer/internal/history"
	"github.com/shiva994u/stock-news-analyzer/internal/model"
	"github.com/shiva994u/stock-news-analyzer/internal/quota"
	"github.com/shiva994u/stock-news-analyzer/internal/sentiment"
	"github.com/shiva994u/stock-news-analyzer/internal/synthetic"
	"github.com/shiva994u/stock-news-analyzer/pkg/news"
	"github.com/shiva994u/stock-news-analyzer/pkg/provider"
	"github.com/shiva994u/stock-news-analyzer/pkg/quotes"
)

const (
	DefaultSourceTimeout  = 8 * time.Second
	DefaultMaxConcurrency = 8
	historyTimeout        = 2 * time.Second
)

// Deps holds the state an Engine shares across calls. Zero fields get defaults.
type Deps struct {
	Cache     *cache.Cache
	Limiters  *provider.Limiters
	Quota     quota.Counter
	Synthetic *synthetic.Generator
	Scorer    *sentiment.Scorer
	History   history.Recorder
	Logger    *slog.Logger
	Clock     func() time.Time
}

type Options struct {
	SourceTimeout  time.Duration
	MaxConcurrency int
}

type Engine struct {
	newsSources  []news.Source
	quoteSources []quotes.Source

	cache     *cache.Cache
	limiters  *provider.Limiters
	quota     quota.Counter
	synthetic *synthetic.Generator
	scorer    *sentiment.Scorer
	history   history.Recorder
	logger    *slog.Logger
	now       func() time.Time

	timeout     time.Duration
	concurrency int

	flight singleflight.Group
}

// New builds an Engine. Sources are consulted, and reported, in the order given.
func New(newsSources []news.Source, quoteSources []quotes.Source, deps Deps, opts Options) *Engine {
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.Cache == nil {
		deps.Cache = cache.New(cache.DefaultTTL, cache.DefaultCapacity, deps.Clock)
	}
	if deps.Limiters == nil {
		deps.Limiters = provider.NewLimiters(0, 1)
	}
	if deps.Quota == nil {
		deps.Quota = quota.Unlimited{}
	}
	if deps.Synthetic == nil {
		deps.Synthetic = synthetic.New(nil, deps.Clock)
	}
	if deps.Scorer == nil {
		deps.Scorer = sentiment.NewScorer()
	}
	if deps.History == nil {
		deps.History = history.Noop{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if opts.SourceTimeout <= 0 {
		opts.SourceTimeout = DefaultSourceTimeout
	}
	if opts.MaxConcurrency <= 0 {
		opts.MaxConcurrency = DefaultMaxConcurrency
	}
	return &Engine{
		newsSources:  newsSources,
		quoteSources: quoteSources,
		cache:        deps.Cache,
		limiters:     deps.Limiters,
		quota:        deps.Quota,
		synthetic:    deps.Synthetic,
		scorer:       deps.Scorer,
		history:      deps.History,
		logger:       deps.Logger,
		now:          deps.Clock,
		timeout:      opts.SourceTimeout,
		concurrency:  opts.MaxConcurrency,
	}
}

// FetchComprehensiveNews returns news for q.Symbol from every eligible source.
// The only error it returns is a *model.ValidationError; provider failures are
// reported in the result's Sources manifest.
func (e *Engine) FetchComprehensiveNews(ctx context.Context, q model.NewsQuery) (*model.NewsResult, error) {
	return e.news(ctx, q, false)
}

// RefreshNews is FetchComprehensiveNews without the cache read. The fresh
// result replaces whatever was cached under the same query.
func (e *Engine) RefreshNews(ctx context.Context, q model.NewsQuery) (*model.NewsResult, error) {
	return e.news(ctx, q, true)
}

func (e *Engine) news(ctx context.Context, q model.NewsQuery, refresh bool) (*model.NewsResult, error) {
	nq, err := q.Normalize()
	if err != nil {
		return nil, err
	}

	key := newsCacheKey(nq)
	if !refresh {
		if v, ok := e.cache.Get(key); ok {
			out := v.(*model.NewsResult).Clone()
			out.Cached = true
			return out, nil
		}
	}

	// The shared fetch outlives any single caller; each adapter call is
	// still bounded by the source timeout.
	fctx := context.WithoutCancel(ctx)
	v, _, _ := e.flight.Do(key, func() (any, error) {
		res := e.fetchNews(fctx, nq)
		e.cache.Set(key, res)
		e.record(fctx, history.NewsEvent(res))
		return res, nil
	})
	return v.(*model.NewsResult).Clone(), nil
}

func (e *Engine) fetchNews(ctx context.Context, q model.NewsQuery) *model.NewsResult {
	start := time.Now()
	now := e.now()

	cands := make([]candidate[model.NewsRecord], 0, len(e.newsSources))
	for _, src := range selectSources(e.newsSources, q.PreferredSources) {
		cands = append(cands, candidate[model.NewsRecord]{
			name:       src.Name(),
			configured: src.Configured,
			fetch: func(ctx context.Context) ([]model.NewsRecord, error) {
				return src.FetchNews(ctx, q)
			},
		})
	}
	batches, manifest := collect(ctx, e, cands)

	res := &model.NewsResult{Query: q, Sources: manifest, FetchedAt: now, Provenance: model.ProvenanceLive}
	switch {
	case len(batches) > 0:
		cutoff := now.AddDate(0, 0, -q.Days)
		var merged []model.NewsRecord
		for _, batch := range batches {
			for _, r := range batch {
				if r.PublishedAt.Before(cutoff) {
					continue
				}
				merged = append(merged, r)
			}
		}
		res.Records = rankNews(merged, q.Limit)
	case q.NoFallback:
		res.Records = []model.NewsRecord{}
	default:
		res.Records = e.synthetic.News(q)
		res.Provenance = model.ProvenanceSynthetic
	}

	for i := range res.Records {
		res.Records[i] = sentiment.ScoreNews(res.Records[i])
	}
	res.OverallSentiment = sentiment.Aggregate(res.Records)
	res.State = model.ResultState(manifest, res.Provenance, len(res.Records))

	e.logger.Info("news aggregated",
		"symbol", q.Symbol,
		"state", res.State,
		"records", len(res.Records),
		"sources", len(manifest),
		"elapsed", time.Since(start),
	)
	return res
}

// rankNews dedups, orders newest first and truncates. Ties keep arrival order.
func rankNews(records []model.NewsRecord, limit int) []model.NewsRecord {
	out := dedup.News(records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []model.NewsRecord{}
	}
	return out
}

// FetchTopGainers returns the day's top movers from every eligible source.
func (e *Engine) FetchTopGainers(ctx context.Context, q model.GainerQuery) (*model.QuoteResult, error) {
	return e.gainers(ctx, q, false)
}

// RefreshGainers is FetchTopGainers without the cache read.
func (e *Engine) RefreshGainers(ctx context.Context, q model.GainerQuery) (*model.QuoteResult, error) {
	return e.gainers(ctx, q, true)
}

func (e *Engine) gainers(ctx context.Context, q model.GainerQuery, refresh bool) (*model.QuoteResult, error) {
	gq, err := q.Normalize()
	if err != nil {
		return nil, err
	}

	key := gainersCacheKey(gq)
	if !refresh {
		if v, ok := e.cache.Get(key); ok {
			out := v.(*model.QuoteResult).Clone()
			out.Cached = true
			return out, nil
		}
	}

	fctx := context.WithoutCancel(ctx)
	v, _, _ := e.flight.Do(key, func() (any, error) {
		res := e.fetchGainers(fctx, gq)
		e.cache.Set(key, res)
		e.record(fctx, history.GainersEvent(res))
		return res, nil
	})
	return v.(*model.QuoteResult).Clone(), nil
}

func (e *Engine) fetchGainers(ctx context.Context, q model.GainerQuery) *model.QuoteResult {
	start := time.Now()
	now := e.now()

	cands := make([]candidate[model.QuoteRecord], 0, len(e.quoteSources))
	for _, src := range selectSources(e.quoteSources, q.PreferredSources) {
		cands = append(cands, candidate[model.QuoteRecord]{
			name:       src.Name(),
			configured: src.Configured,
			fetch: func(ctx context.Context) ([]model.QuoteRecord, error) {
				return src.FetchGainers(ctx, q)
			},
		})
	}
	batches, manifest := collect(ctx, e, cands)

	res := &model.QuoteResult{Query: q, Sources: manifest, FetchedAt: now, Provenance: model.ProvenanceLive}
	switch {
	case len(batches) > 0:
		var merged []model.QuoteRecord
		for _, batch := range batches {
			for _, r := range batch {
				if r.PercentChange < q.MinPercentChange {
					continue
				}
				merged = append(merged, r)
			}
		}
		res.Records = rankQuotes(merged, q.Limit)
	case q.NoFallback:
		res.Records = []model.QuoteRecord{}
	default:
		res.Records = e.synthetic.Gainers(q)
		res.Provenance = model.ProvenanceSynthetic
	}
	res.State = model.ResultState(manifest, res.Provenance, len(res.Records))

	e.logger.Info("gainers aggregated",
		"state", res.State,
		"records", len(res.Records),
		"sources", len(manifest),
		"elapsed", time.Since(start),
	)
	return res
}

func rankQuotes(records []model.QuoteRecord, limit int) []model.QuoteRecord {
	out := dedup.Quotes(records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PercentChange > out[j].PercentChange
	})
	if len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []model.QuoteRecord{}
	}
	return out
}

// AnalyzeBulkSentiment scores each quote, keyed by upper-cased symbol. Later
// duplicates of a symbol are ignored.
func (e *Engine) AnalyzeBulkSentiment(records []model.QuoteRecord) map[string]model.SentimentResult {
	at := e.now()
	out := make(map[string]model.SentimentResult, len(records))
	for _, r := range records {
		sym := strings.ToUpper(strings.TrimSpace(r.Symbol))
		if sym == "" {
			continue
		}
		if _, ok := out[sym]; ok {
			continue
		}
		out[sym] = e.scorer.QuoteScore(r, at)
	}
	return out
}

func (e *Engine) ClearCache() {
	e.cache.Clear()
	e.logger.Info("cache cleared")
}

func (e *Engine) CacheStats() cache.Stats {
	return e.cache.Stats()
}

type SourceInfo struct {
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	Configured bool   `json:"configured"`
	Reason     string `json:"reason,omitempty"`
	UsedToday  int64  `json:"used_today"`
}

// Sources describes every registered source in registration order, news first.
func (e *Engine) Sources(ctx context.Context) []SourceInfo {
	var out []SourceInfo
	add := func(kind, name string, configured error) {
		info := SourceInfo{Name: name, Kind: kind, Configured: configured == nil}
		if configured != nil {
			info.Reason = configured.Error()
		}
		if used, err := e.quota.Used(ctx, name); err == nil {
			info.UsedToday = used
		}
		out = append(out, info)
	}
	for _, s := range e.newsSources {
		add(string(history.KindNews), s.Name(), s.Configured())
	}
	for _, s := range e.quoteSources {
		add(string(history.KindGainers), s.Name(), s.Configured())
	}
	return out
}

func (e *Engine) record(ctx context.Context, ev history.Event) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), historyTimeout)
	defer cancel()
	if err := e.history.Record(ctx, ev); err != nil {
		e.logger.Warn("history record failed", "kind", ev.Kind, "symbol", ev.Symbol, "error", err)
	}
}

type named interface{ Name() string }

// selectSources keeps registration order. No preference means every source.
func selectSources[S named](all []S, preferred []string) []S {
	if len(preferred) == 0 {
		return all
	}
	want := make(map[string]bool, len(preferred))
	for _, p := range preferred {
		want[strings.ToLower(p)] = true
	}
	var out []S
	for _, s := range all {
		if want[strings.ToLower(s.Name())] {
			out = append(out, s)
		}
	}
	return out
}

func newsCacheKey(q model.NewsQuery) string {
	return fmt.Sprintf("news|%s|%d|%d|%s|%t", q.Symbol, q.Limit, q.Days, sourcesKey(q.PreferredSources), !q.NoFallback)
}

func gainersCacheKey(q model.GainerQuery) string {
	return fmt.Sprintf("gainers|%d|%g|%s|%t", q.Limit, q.MinPercentChange, sourcesKey(q.PreferredSources), !q.NoFallback)
}

func sourcesKey(names []string) string {
	if len(names) == 0 {
		return "*"
	}
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}
