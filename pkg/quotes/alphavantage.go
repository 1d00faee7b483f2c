package quotes

import (
	"context"
	"errors"
	"net/http"
	"net/url"
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
	return &AlphaVantageClient{apiKey: apiKey, httpClient: httpClient, now: time.Now}
}

func (c *AlphaVantageClient) Name() string {
	return alphaVantageName
}

func (c *AlphaVantageClient) Configured() error {
	return provider.RequireKey(alphaVantageName, c.apiKey)
}

func (c *AlphaVantageClient) FetchGainers(ctx context.Context, q model.GainerQuery) ([]model.QuoteRecord, error) {
	now := c.now()
	params := url.Values{}
	params.Set("function", "TOP_GAINERS_LOSERS")
	params.Set("apikey", c.apiKey)

	var raw avMoversResponse
	if err := provider.GetJSON(ctx, c.httpClient, alphaVantageName, "https://www.alphavantage.co/query?"+params.Encode(), nil, &raw); err != nil {
		return nil, err
	}
	if msg := raw.providerError(); msg != "" {
		return nil, &model.ParseError{Source: alphaVantageName, Err: errors.New(msg)}
	}

	updated := parseAVUpdated(raw.LastUpdated)
	records := make([]model.QuoteRecord, 0, len(raw.TopGainers))
	for _, g := range raw.TopGainers {
		if g.Ticker == "" {
			continue
		}
		records = append(records, finish(model.QuoteRecord{
			Symbol:        g.Ticker,
			Price:         parseNumber(g.Price),
			PercentChange: parseNumber(g.ChangePercentage),
			ChangeAmount:  parseNumber(g.ChangeAmount),
			Volume:        int64(parseNumber(g.Volume)),
			LastUpdate:    updated,
		}, alphaVantageName, now))
	}
	return records, nil
}

// parseAVUpdated reads "2026-02-26 16:15:59 US/Eastern".
func parseAVUpdated(s string) time.Time {
	if len(s) < 19 {
		return time.Time{}
	}
	t, err := time.ParseInLocation("2006-01-02 15:04:05", s[:19], model.NewYork)
	if err != nil {
		return time.Time{}
	}
	return t
}

type avMoversResponse struct {
	LastUpdated  string    `json:"last_updated"`
	TopGainers   []avMover `json:"top_gainers"`
	Note         string    `json:"Note"`
	Information  string    `json:"Information"`
	ErrorMessage string    `json:"Error Message"`
}

func (r avMoversResponse) providerError() string {
	switch {
	case r.ErrorMessage != "":
		return r.ErrorMessage
	case r.Note != "":
		return r.Note
	case r.Information != "" && len(r.TopGainers) == 0:
		return r.Information
	}
	return ""
}

type avMover struct {
	Ticker           string `json:"ticker"`
	Price            string `json:"price"`
	ChangeAmount     string `json:"change_amount"`
	ChangePercentage string `json:"change_percentage"`
	Volume           string `json:"volume"`
}
