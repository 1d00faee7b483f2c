package news

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"

	"github.com/shiva994u/stock-news-analyzer/internal/model"
	"github.com/shiva994u/stock-news-analyzer/pkg/provider"
)

const finnhubName = "finnhub"

type FinnHubClient struct {
	apiKey string
	client *finnhub.DefaultApiService
	now    func() time.Time
}

func NewFinnHubClient(apiKey string, httpClient *http.Client) *FinnHubClient {
	if httpClient == nil {
		httpClient = provider.NewHTTPClient()
	}
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	cfg.HTTPClient = httpClient
	return &FinnHubClient{
		apiKey: apiKey,
		client: finnhub.NewAPIClient(cfg).DefaultApi,
		now:    time.Now,
	}
}

func (c *FinnHubClient) Name() string {
	return finnhubName
}

func (c *FinnHubClient) Configured() error {
	return provider.RequireKey(finnhubName, c.apiKey)
}

func (c *FinnHubClient) FetchNews(ctx context.Context, q model.NewsQuery) ([]model.NewsRecord, error) {
	now := c.now()
	from := now.AddDate(0, 0, -q.Days).Format("2006-01-02")
	to := now.Format("2006-01-02")

	res, resp, err := c.client.CompanyNews(ctx).Symbol(q.Symbol).From(from).To(to).Execute()
	if err != nil {
		return nil, classifyFinnhub(err, resp)
	}

	records := make([]model.NewsRecord, 0, len(res))
	for _, news := range res {
		var r model.NewsRecord

		if news.Id != nil {
			r.ID = strconv.FormatInt(*news.Id, 10)
		}
		if news.Headline != nil {
			r.Title = *news.Headline
		}
		if news.Summary != nil {
			r.Description = *news.Summary
		}
		if news.Url != nil {
			r.URL = *news.Url
		}
		if news.Datetime != nil && *news.Datetime > 0 {
			r.PublishedAt = time.Unix(*news.Datetime, 0).UTC()
		}
		if news.Source != nil {
			r.Publisher = *news.Source
		}
		if news.Related != nil && *news.Related != "" {
			r.Symbols = strings.Split(*news.Related, ",")
		} else {
			r.Symbols = []string{q.Symbol}
		}

		records = append(records, finish(r, finnhubName, now))
	}

	return records, nil
}

// classifyFinnhub maps SDK errors onto the adapter error taxonomy. A 2xx
// response with an error means the body did not decode.
func classifyFinnhub(err error, resp *http.Response) error {
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	if status >= 200 && status < 300 {
		return &model.ParseError{Source: finnhubName, Err: err}
	}
	return &model.TransportError{Source: finnhubName, StatusCode: status, Err: fmt.Errorf("company news: %w", err)}
}
