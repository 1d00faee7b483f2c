// Package synthetic produces plausible market data for when no live source
// answers. Every record it returns is tagged with synthetic provenance.
package synthetic

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/shiva994u/stock-news-analyzer/internal/model"
	"github.com/shiva994u/stock-news-analyzer/internal/sentiment"
)

const minVolume = 100_000

// Generator is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

// New returns a generator. A nil rnd is seeded from the clock; a nil clock means time.Now.
func New(rnd *rand.Rand, clock func() time.Time) *Generator {
	if clock == nil {
		clock = time.Now
	}
	if rnd == nil {
		seed := uint64(clock().UnixNano())
		rnd = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return &Generator{rnd: rnd, now: clock}
}

// NewSeeded returns a generator whose output is reproducible for a given seed and clock.
func NewSeeded(seed uint64, clock func() time.Time) *Generator {
	return New(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), clock)
}

// Gainers returns synthetic top movers sorted by percent change descending.
// When the minimum-change filter would leave nothing, the unfiltered list is used.
func (g *Generator) Gainers(q model.GainerQuery) []model.QuoteRecord {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	tf := timeFactor(now)
	sf := sessionFactor(now)
	regular := sentiment.SessionAt(now) == sentiment.SessionRegular

	all := make([]model.QuoteRecord, 0, len(baselines))
	for _, b := range baselines {
		composite := (tf + sf + sectorVolatility[b.sector] + b.volatility) / 4

		change := b.change * (0.6 + 0.8*g.rnd.Float64()) * composite
		change = math.Max(0.05, change)
		prevClose := b.price
		price := prevClose * (1 + change/100)

		volume := tierVolume[b.tier]
		if regular {
			volume *= 1.5
		}
		volume *= 1 + math.Abs(change)/10
		volume *= 0.8 + 0.4*g.rnd.Float64()
		volume = math.Max(minVolume, volume)

		all = append(all, model.QuoteRecord{
			Symbol:        b.symbol,
			DisplayName:   b.name,
			Price:         round(price, 2),
			PercentChange: round(change, 2),
			ChangeAmount:  round(price-prevClose, 2),
			Volume:        int64(volume),
			Sector:        b.sector,
			LastUpdate:    now,
			Provenance:    model.Synthetic(),
		})
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].PercentChange > all[j].PercentChange
	})

	out := make([]model.QuoteRecord, 0, len(all))
	for _, r := range all {
		if r.PercentChange >= q.MinPercentChange {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		out = all
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

// timeFactor is higher around the open and the close.
func timeFactor(t time.Time) float64 {
	switch sentiment.SessionAt(t) {
	case sentiment.SessionRegular:
		ny := t.In(model.NewYork)
		m := ny.Hour()*60 + ny.Minute()
		switch {
		case m < 10*60+30:
			return 1.3
		case m >= 15*60:
			return 1.2
		default:
			return 1.0
		}
	case sentiment.SessionPre, sentiment.SessionAfter:
		return 0.8
	default:
		return 0.6
	}
}

func sessionFactor(t time.Time) float64 {
	if wd := t.In(model.NewYork).Weekday(); wd == time.Saturday || wd == time.Sunday {
		return 0.4
	}
	if sentiment.SessionAt(t) == sentiment.SessionRegular {
		return 1.0
	}
	return 0.6
}

type newsTemplate struct {
	title       string
	description string
	category    model.Category
	score       float64
	age         time.Duration
}

var newsTemplates = []newsTemplate{
	{"%s reports stronger-than-expected quarterly results", "%s topped consensus estimates on revenue and margins, lifting its full-year outlook.", model.CategoryEarnings, 0.6, 2 * time.Hour},
	{"Analysts lift price target on %s after investor day", "Several brokerages raised their targets on %s, citing execution on new initiatives.", model.CategoryAnalyst, 0.4, 5 * time.Hour},
	{"%s signs partnership to widen distribution", "%s said the agreement extends its reach into new regional markets.", model.CategoryPartnership, 0.1, 9 * time.Hour},
	{"%s trades in line with the broader market", "Shares of %s tracked the index as investors awaited fresh economic data.", model.CategoryMarket, 0, 20 * time.Hour},
	{"Regulators open review of %s disclosures", "Officials requested additional documents from %s regarding recent filings.", model.CategoryRegulatory, -0.3, 30 * time.Hour},
	{"%s flags supply delays for flagship product", "%s warned that component shortages could push back shipments this quarter.", model.CategoryProduct, -0.5, 46 * time.Hour},
}

// News returns the template articles for q.Symbol, newest first.
func (g *Generator) News(q model.NewsQuery) []model.NewsRecord {
	g.mu.Lock()
	now := g.now()
	g.mu.Unlock()

	name := q.Symbol
	if b, ok := lookup(q.Symbol); ok {
		name = b.name
	}

	out := make([]model.NewsRecord, 0, len(newsTemplates))
	for i, tpl := range newsTemplates {
		score := tpl.score
		res := sentiment.Result(score)
		out = append(out, model.NewsRecord{
			ID:             fmt.Sprintf("synthetic-%s-%d", q.Symbol, i+1),
			Title:          fmt.Sprintf(tpl.title, q.Symbol),
			Description:    fmt.Sprintf(tpl.description, name),
			SourceName:     model.SyntheticSource,
			Publisher:      "Market Pulse",
			PublishedAt:    now.Add(-tpl.age),
			Symbols:        []string{q.Symbol},
			Sentiment:      &score,
			SentimentLabel: res.Label,
			Category:       tpl.category,
			Confidence:     res.Confidence,
			Provenance:     model.Synthetic(),
		})
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
