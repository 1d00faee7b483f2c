package news

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/shiva994u/stock-news-analyzer/internal/model"
	"github.com/shiva994u/stock-news-analyzer/pkg/provider"
)

const yahooName = "yahoo"

// YahooRSSClient reads the per-ticker Yahoo Finance headline feed. No key is needed.
type YahooRSSClient struct {
	httpClient *http.Client
	parser     *gofeed.Parser
	now        func() time.Time
}

func NewYahooRSSClient(httpClient *http.Client) *YahooRSSClient {
	if httpClient == nil {
		httpClient = provider.NewHTTPClient()
	}
	return &YahooRSSClient{
		httpClient: httpClient,
		parser:     gofeed.NewParser(),
		now:        time.Now,
	}
}

func (c *YahooRSSClient) Name() string {
	return yahooName
}

func (c *YahooRSSClient) Configured() error {
	return nil
}

func (c *YahooRSSClient) FetchNews(ctx context.Context, q model.NewsQuery) ([]model.NewsRecord, error) {
	now := c.now()
	params := url.Values{}
	params.Set("s", q.Symbol)
	params.Set("region", "US")
	params.Set("lang", "en-US")

	body, err := provider.Get(ctx, c.httpClient, yahooName, "https://feeds.finance.yahoo.com/rss/2.0/headline?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	feed, err := c.parser.ParseString(string(body))
	if err != nil {
		return nil, &model.ParseError{Source: yahooName, Err: err}
	}

	records := make([]model.NewsRecord, 0, len(feed.Items))
	for _, entry := range feed.Items {
		var published time.Time
		if entry.PublishedParsed != nil {
			published = *entry.PublishedParsed
		} else if entry.UpdatedParsed != nil {
			published = *entry.UpdatedParsed
		}

		id := entry.GUID
		if id == "" {
			id = generateExternalID(entry.Link)
		}

		records = append(records, finish(model.NewsRecord{
			ID:          id,
			Title:       entry.Title,
			Description: entry.Description,
			URL:         entry.Link,
			Publisher:   "Yahoo Finance",
			PublishedAt: published,
			Symbols:     []string{q.Symbol},
		}, yahooName, now))
	}

	return records, nil
}
