package sentiment

import (
	"strings"
	"time"

	"github.com/shiva994u/stock-news-analyzer/internal/model"
)

const DefaultContextWeight = 0.2

var changeSteps = []struct {
	min   float64
	score float64
}{
	{10, 0.8},
	{5, 0.6},
	{3, 0.4},
	{1, 0.2},
	{0, 0.05},
}

var hotSectors = map[string]float64{
	"technology":             0.1,
	"semiconductors":         0.1,
	"communication services": 0.05,
	"energy":                 0.05,
	"healthcare":             0.05,
	"consumer cyclical":      0.03,
	"financial services":     0.02,
}

// Scorer rates quotes from their move, volume, sector and the time of day.
type Scorer struct {
	// ContextFunc returns a market-session score in [-1, 1] for t.
	ContextFunc   func(t time.Time) float64
	ContextWeight float64
}

func NewScorer() *Scorer {
	return &Scorer{ContextFunc: MarketContext, ContextWeight: DefaultContextWeight}
}

func (s *Scorer) QuoteScore(q model.QuoteRecord, at time.Time) model.SentimentResult {
	base := clamp(changeScore(q.PercentChange) + volumeBonus(q.Volume) + hotSectors[strings.ToLower(q.Sector)])
	if s.ContextFunc == nil || s.ContextWeight <= 0 {
		return Result(base)
	}
	w := min(s.ContextWeight, 1)
	return Result((1-w)*base + w*s.ContextFunc(at))
}

func changeScore(pct float64) float64 {
	mag := pct
	sign := 1.0
	if pct < 0 {
		mag, sign = -pct, -1
	}
	if mag == 0 {
		return 0
	}
	for _, st := range changeSteps {
		if mag >= st.min {
			return sign * st.score
		}
	}
	return 0
}

func volumeBonus(v int64) float64 {
	switch {
	case v > 50_000_000:
		return 0.1
	case v > 10_000_000:
		return 0.05
	}
	return 0
}
