package model

type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNeutral  SentimentLabel = "Neutral"
	SentimentNegative SentimentLabel = "Negative"
)

type SentimentResult struct {
	Score      float64        `json:"score"`
	Label      SentimentLabel `json:"label"`
	Confidence float64        `json:"confidence"`
}

// OverallSentiment summarises the per-record sentiment of a result set.
type OverallSentiment struct {
	Score      float64        `json:"score"`
	Label      SentimentLabel `json:"label"`
	Confidence float64        `json:"confidence"`
	Scored     int            `json:"scored"`
	Positive   int            `json:"positive"`
	Neutral    int            `json:"neutral"`
	Negative   int            `json:"negative"`
}
