package quotes

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/shiva994u/stock-news-analyzer/internal/model"
	"github.com/shiva994u/stock-news-analyzer/pkg/provider"
)

const massiveName = "massive"

type MassiveClient struct {
	apiKey     string
	httpClient *http.Client
	now        func() time.Time
}

func NewMassiveClient(apiKey string, httpClient *http.Client) *MassiveClient {
	if httpClient == nil {
		httpClient = provider.NewHTTPClient()
	}
	return &MassiveClient{apiKey: apiKey, httpClient: httpClient, now: time.Now}
}

func (c *MassiveClient) Name() string {
	return massiveName
}

func (c *MassiveClient) Configured() error {
	return provider.RequireKey(massiveName, c.apiKey)
}

func (c *MassiveClient) FetchGainers(ctx context.Context, q model.GainerQuery) ([]model.QuoteRecord, error) {
	now := c.now()
	params := url.Values{}
	params.Set("apiKey", c.apiKey)

	var raw massiveSnapshotResponse
	if err := provider.GetJSON(ctx, c.httpClient, massiveName, "https://api.massive.com/v2/snapshot/locale/us/markets/stocks/gainers?"+params.Encode(), nil, &raw); err != nil {
		return nil, err
	}

	records := make([]model.QuoteRecord, 0, len(raw.Tickers))
	for _, s := range raw.Tickers {
		if s.Ticker == "" {
			continue
		}
		price := s.LastTrade.P
		if price == 0 {
			price = s.Day.C
		}
		var updated time.Time
		if s.Updated > 0 {
			updated = time.Unix(0, s.Updated).UTC()
		}
		records = append(records, finish(model.QuoteRecord{
			Symbol:        s.Ticker,
			Price:         price,
			PercentChange: s.TodaysChangePerc,
			ChangeAmount:  s.TodaysChange,
			Volume:        int64(s.Day.V),
			LastUpdate:    updated,
		}, massiveName, now))
	}
	return records, nil
}

type massiveSnapshotResponse struct {
	Status  string            `json:"status"`
	Tickers []massiveSnapshot `json:"tickers"`
}

type massiveSnapshot struct {
	Ticker           string  `json:"ticker"`
	TodaysChange     float64 `json:"todaysChange"`
	TodaysChangePerc float64 `json:"todaysChangePerc"`
	Updated          int64   `json:"updated"`
	Day              struct {
		C float64 `json:"c"`
		V float64 `json:"v"`
	} `json:"day"`
	LastTrade struct {
		P float64 `json:"p"`
	} `json:"lastTrade"`
}
