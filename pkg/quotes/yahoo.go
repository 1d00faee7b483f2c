package quotes

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shiva994u/stock-news-analyzer/internal/model"
	"github.com/shiva994u/stock-news-analyzer/pkg/provider"
)

const yahooName = "yahoo"

// YahooScreenerClient reads the predefined day_gainers screener. No key is needed.
type YahooScreenerClient struct {
	httpClient *http.Client
	now        func() time.Time
}

func NewYahooScreenerClient(httpClient *http.Client) *YahooScreenerClient {
	if httpClient == nil {
		httpClient = provider.NewHTTPClient()
	}
	return &YahooScreenerClient{httpClient: httpClient, now: time.Now}
}

func (c *YahooScreenerClient) Name() string {
	return yahooName
}

func (c *YahooScreenerClient) Configured() error {
	return nil
}

func (c *YahooScreenerClient) FetchGainers(ctx context.Context, q model.GainerQuery) ([]model.QuoteRecord, error) {
	now := c.now()
	params := url.Values{}
	params.Set("scrIds", "day_gainers")
	params.Set("count", strconv.Itoa(max(q.Limit, 25)))
	params.Set("formatted", "false")

	var raw yahooScreenerResponse
	if err := provider.GetJSON(ctx, c.httpClient, yahooName, "https://query1.finance.yahoo.com/v1/finance/screener/predefined/saved?"+params.Encode(), nil, &raw); err != nil {
		return nil, err
	}
	if raw.Finance.Error != nil {
		return nil, &model.ParseError{Source: yahooName, Err: errors.New(raw.Finance.Error.Description)}
	}
	if len(raw.Finance.Result) == 0 {
		return nil, &model.ParseError{Source: yahooName, Err: errors.New("empty screener result")}
	}

	quotes := raw.Finance.Result[0].Quotes
	records := make([]model.QuoteRecord, 0, len(quotes))
	for _, yq := range quotes {
		if yq.Symbol == "" {
			continue
		}
		name := yq.ShortName
		if name == "" {
			name = yq.LongName
		}
		var updated time.Time
		if yq.RegularMarketTime > 0 {
			updated = time.Unix(yq.RegularMarketTime, 0).UTC()
		}
		records = append(records, finish(model.QuoteRecord{
			Symbol:        yq.Symbol,
			DisplayName:   name,
			Price:         yq.RegularMarketPrice,
			PercentChange: yq.RegularMarketChangePercent,
			ChangeAmount:  yq.RegularMarketChange,
			Volume:        yq.RegularMarketVolume,
			LastUpdate:    updated,
		}, yahooName, now))
	}
	return records, nil
}

type yahooScreenerResponse struct {
	Finance struct {
		Result []struct {
			Quotes []yahooQuote `json:"quotes"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"finance"`
}

type yahooQuote struct {
	Symbol                     string  `json:"symbol"`
	ShortName                  string  `json:"shortName"`
	LongName                   string  `json:"longName"`
	RegularMarketPrice         float64 `json:"regularMarketPrice"`
	RegularMarketChange        float64 `json:"regularMarketChange"`
	RegularMarketChangePercent float64 `json:"regularMarketChangePercent"`
	RegularMarketVolume        int64   `json:"regularMarketVolume"`
	RegularMarketTime          int64   `json:"regularMarketTime"`
}
