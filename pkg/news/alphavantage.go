package news

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shiva994u/stock-news-analyzer/internal/model"
	"github.com/shiva994u/stock-news-analyzer/pkg/provider"
)

const alphaVantageName = "alphavantage"

type AlphaVantageClient struct {
	apiKey     string
	httpClient *http.Client
	now        func() time.Time
}

func NewAlphaVantageClient(apiKey string, httpClient *http.Client) *AlphaVantageClient {
	if httpClient == nil {
		httpClient = provider.NewHTTPClient()
	}
	return &AlphaVantageClient{
		apiKey:     apiKey,
		httpClient: httpClient,
		now:        time.Now,
	}
}

func (c *AlphaVantageClient) Name() string {
	return alphaVantageName
}

func (c *AlphaVantageClient) Configured() error {
	return provider.RequireKey(alphaVantageName, c.apiKey)
}

func (c *AlphaVantageClient) FetchNews(ctx context.Context, q model.NewsQuery) ([]model.NewsRecord, error) {
	now := c.now()
	params := url.Values{}
	params.Set("function", "NEWS_SENTIMENT")
	params.Set("tickers", q.Symbol)
	params.Set("limit", strconv.Itoa(max(q.Limit, 50)))
	params.Set("sort", "LATEST")
	params.Set("time_from", now.AddDate(0, 0, -q.Days).UTC().Format("20060102T1504"))
	params.Set("apikey", c.apiKey)

	var raw avResponse
	if err := provider.GetJSON(ctx, c.httpClient, alphaVantageName, "https://www.alphavantage.co/query?"+params.Encode(), nil, &raw); err != nil {
		return nil, err
	}
	if msg := raw.providerError(); msg != "" {
		return nil, &model.ParseError{Source: alphaVantageName, Err: errors.New(msg)}
	}

	records := make([]model.NewsRecord, 0, len(raw.Feed))
	for _, item := range raw.Feed {
		publishedAt, err := time.Parse("20060102T150405", item.TimePublished)
		if err != nil {
			publishedAt = time.Time{}
		}

		symbols := make([]string, 0, len(item.TickerSentiment))
		score := item.OverallSentimentScore
		for _, ts := range item.TickerSentiment {
			if ts.Ticker == "" {
				continue
			}
			symbols = append(symbols, ts.Ticker)
			if strings.EqualFold(ts.Ticker, q.Symbol) {
				if v, err := strconv.ParseFloat(ts.TickerSentimentScore, 64); err == nil {
					score = &v
				}
			}
		}

		r := model.NewsRecord{
			ID:          generateExternalID(item.URL),
			Title:       item.Title,
			Description: item.Summary,
			URL:         item.URL,
			Publisher:   item.Source,
			PublishedAt: publishedAt,
			Symbols:     symbols,
		}
		if score != nil {
			r.Sentiment = float64Ptr(*score)
		}
		records = append(records, finish(r, alphaVantageName, now))
	}

	return records, nil
}

type avResponse struct {
	Feed         []avFeedItem `json:"feed"`
	Note         string       `json:"Note"`
	Information  string       `json:"Information"`
	ErrorMessage string       `json:"Error Message"`
}

// providerError returns the message AlphaVantage puts in a 200 response
// when it refuses a request (bad key, throttling).
func (r avResponse) providerError() string {
	switch {
	case r.ErrorMessage != "":
		return r.ErrorMessage
	case r.Note != "":
		return r.Note
	case r.Information != "" && len(r.Feed) == 0:
		return r.Information
	}
	return ""
}

type avFeedItem struct {
	Title                 string              `json:"title"`
	Summary               string              `json:"summary"`
	URL                   string              `json:"url"`
	Source                string              `json:"source"`
	TimePublished         string              `json:"time_published"`
	OverallSentimentScore *float64            `json:"overall_sentiment_score"`
	TickerSentiment       []avTickerSentiment `json:"ticker_sentiment"`
}

type avTickerSentiment struct {
	Ticker               string `json:"ticker"`
	TickerSentimentScore string `json:"ticker_sentiment_score"`
}
