// Package sentiment scores news text and quote moves on a [-1, 1] scale.
package sentiment

import (
	"math"

	"github.com/shiva994u/stock-news-analyzer/internal/model"
)

const (
	PositiveThreshold = 0.2
	NegativeThreshold = -0.2
)

func Label(score float64) model.SentimentLabel {
	switch {
	case score > PositiveThreshold:
		return model.SentimentPositive
	case score < NegativeThreshold:
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}

func Confidence(score float64) float64 {
	return math.Round(math.Abs(score)*100*100) / 100
}

func Result(score float64) model.SentimentResult {
	score = clamp(score)
	return model.SentimentResult{Score: score, Label: Label(score), Confidence: Confidence(score)}
}

func clamp(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
