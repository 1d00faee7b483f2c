package sentiment

import (
	"math"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"github.com/shiva994u/stock-news-analyzer/internal/model"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestLabel(t *testing.T) {
	tests := []struct {
		score float64
		want  model.SentimentLabel
	}{
		{0.21, model.SentimentPositive},
		{0.2, model.SentimentNeutral},
		{0, model.SentimentNeutral},
		{-0.2, model.SentimentNeutral},
		{-0.21, model.SentimentNegative},
		{1, model.SentimentPositive},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Label(tt.score))
	}
	assert.Equal(t, 45.0, Confidence(-0.45))
}

func TestTextScore(t *testing.T) {
	score, matched := TextScore("Apple shares surge after strong earnings beat")
	assert.Equal(t, 3, matched)
	assert.Equal(t, true, near(0.3/math.Sqrt(3), score))
	assert.Equal(t, model.SentimentNeutral, Label(score))

	score, matched = TextScore("surge soar jump rally gain rise record strong growth")
	assert.Equal(t, 9, matched)
	assert.Equal(t, true, near(0.3, score))
	assert.Equal(t, model.SentimentPositive, Label(score))

	score, matched = TextScore("plunge drop fall decline loss weak downgrade bearish slump")
	assert.Equal(t, 9, matched)
	assert.Equal(t, true, near(-0.3, score))
	assert.Equal(t, model.SentimentNegative, Label(score))

	_, matched = TextScore("The company held a meeting")
	assert.Equal(t, 0, matched)
}

func TestTextScoreDeterministic(t *testing.T) {
	text := "Chipmaker rallies on record profit, analysts warn of supply risk"
	a, _ := TextScore(text)
	b, _ := TextScore(text)
	assert.Equal(t, a, b)
	assert.Equal(t, true, a >= -1 && a <= 1)
}

func TestQuoteScore(t *testing.T) {
	s := &Scorer{ContextFunc: func(time.Time) float64 { return 0.5 }, ContextWeight: 0.2}
	at := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)

	hot := s.QuoteScore(model.QuoteRecord{Symbol: "NVDA", PercentChange: 12, Volume: 60_000_000, Sector: "Technology"}, at)
	assert.Equal(t, true, near(0.9, hot.Score))
	assert.Equal(t, model.SentimentPositive, hot.Label)
	assert.Equal(t, 90.0, hot.Confidence)

	flat := s.QuoteScore(model.QuoteRecord{Symbol: "KO", PercentChange: 0, Volume: 1000}, at)
	assert.Equal(t, true, near(0.1, flat.Score))
	assert.Equal(t, model.SentimentNeutral, flat.Label)

	down := s.QuoteScore(model.QuoteRecord{Symbol: "XYZ", PercentChange: -6}, at)
	assert.Equal(t, true, near(0.8*-0.6+0.1, down.Score))
	assert.Equal(t, model.SentimentNegative, down.Label)
}

func TestQuoteScoreWithoutContext(t *testing.T) {
	s := &Scorer{}
	r := s.QuoteScore(model.QuoteRecord{PercentChange: 3.5, Volume: 20_000_000}, time.Now())
	assert.Equal(t, true, near(0.45, r.Score))
}

func TestQuoteScoreClamped(t *testing.T) {
	s := &Scorer{ContextFunc: func(time.Time) float64 { return 5 }, ContextWeight: 0.5}
	r := s.QuoteScore(model.QuoteRecord{PercentChange: 50, Volume: 90_000_000, Sector: "semiconductors"}, time.Now())
	assert.Equal(t, 1.0, r.Score)
}

func TestSessionAt(t *testing.T) {
	// 2026-03-02 is a Monday; New York is UTC-5 until March 8.
	assert.Equal(t, SessionPre, SessionAt(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, SessionRegular, SessionAt(time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)))
	assert.Equal(t, SessionAfter, SessionAt(time.Date(2026, 3, 2, 22, 0, 0, 0, time.UTC)))
	assert.Equal(t, SessionClosed, SessionAt(time.Date(2026, 3, 3, 3, 0, 0, 0, time.UTC)))
	assert.Equal(t, SessionClosed, SessionAt(time.Date(2026, 3, 7, 15, 0, 0, 0, time.UTC)))

	assert.Equal(t, 0.5, MarketContext(time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)))
	assert.Equal(t, -0.2, MarketContext(time.Date(2026, 3, 2, 22, 0, 0, 0, time.UTC)))
	assert.Equal(t, -0.5, MarketContext(time.Date(2026, 3, 7, 15, 0, 0, 0, time.UTC)))
}

func ptr(v float64) *float64 { return &v }

func TestAggregate(t *testing.T) {
	records := []model.NewsRecord{
		{ID: "a", Sentiment: ptr(0.5)},
		{ID: "b", Sentiment: ptr(-0.3)},
		{ID: "c"},
		{ID: "d", Sentiment: ptr(0.1)},
	}
	got := Aggregate(records)
	assert.Equal(t, 3, got.Scored)
	assert.Equal(t, 0.1, got.Score)
	assert.Equal(t, model.SentimentNeutral, got.Label)
	assert.Equal(t, 1, got.Positive)
	assert.Equal(t, 1, got.Negative)
	assert.Equal(t, 2, got.Neutral)
}

func TestAggregateEmpty(t *testing.T) {
	got := Aggregate(nil)
	assert.Equal(t, 0, got.Scored)
	assert.Equal(t, 0.0, got.Score)
	assert.Equal(t, model.SentimentNeutral, got.Label)
}

func TestScoreNews(t *testing.T) {
	provided := ScoreNews(model.NewsRecord{Title: "Shares plunge", Sentiment: ptr(0.6)})
	assert.Equal(t, 0.6, *provided.Sentiment)
	assert.Equal(t, model.SentimentPositive, provided.SentimentLabel)
	assert.Equal(t, 60.0, provided.Confidence)

	unscored := ScoreNews(model.NewsRecord{Title: "The company held a meeting"})
	assert.Equal(t, true, unscored.Sentiment == nil)
	assert.Equal(t, model.SentimentNeutral, unscored.SentimentLabel)

	text := ScoreNews(model.NewsRecord{Title: "Shares plunge"})
	assert.Equal(t, true, near(-0.1, *text.Sentiment))
}
