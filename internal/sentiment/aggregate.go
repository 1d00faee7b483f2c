package sentiment

import (
	"math"

	"github.com/shiva994u/stock-news-analyzer/internal/model"
)

// ScoreNews fills in sentiment for a record. A provider score is kept; otherwise
// the text scorer runs and records without keyword hits stay unscored.
func ScoreNews(r model.NewsRecord) model.NewsRecord {
	if r.Sentiment == nil {
		if score, matched := TextScore(r.Text()); matched > 0 {
			r.Sentiment = &score
		}
	}
	if r.Sentiment == nil {
		r.SentimentLabel = model.SentimentNeutral
		r.Confidence = 0
		return r
	}
	res := Result(*r.Sentiment)
	r.Sentiment = &res.Score
	r.SentimentLabel = res.Label
	r.Confidence = res.Confidence
	return r
}

// Aggregate averages the numeric scores of records. Unscored records are left
// out of the mean but still counted in the label distribution.
func Aggregate(records []model.NewsRecord) model.OverallSentiment {
	var (
		out model.OverallSentiment
		sum float64
	)
	for _, r := range records {
		label := model.SentimentNeutral
		if r.Sentiment != nil {
			sum += *r.Sentiment
			out.Scored++
			label = Label(*r.Sentiment)
		}
		switch label {
		case model.SentimentPositive:
			out.Positive++
		case model.SentimentNegative:
			out.Negative++
		default:
			out.Neutral++
		}
	}
	if out.Scored > 0 {
		out.Score = math.Round(sum/float64(out.Scored)*1000) / 1000
	}
	out.Label = Label(out.Score)
	out.Confidence = Confidence(out.Score)
	return out
}
