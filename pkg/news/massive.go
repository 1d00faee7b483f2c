package news

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shiva994u/stock-news-analyzer/internal/model"
	"github.com/shiva994u/stock-news-analyzer/pkg/provider"
)

const massiveName = "massive"

// Scores assigned to the categorical sentiment Massive attaches per ticker.
var massiveSentiment = map[string]float64{
	"positive": 0.5,
	"neutral":  0,
	"negative": -0.5,
}

type MassiveClient struct {
	apiKey     string
	httpClient *http.Client
	now        func() time.Time
}

func NewMassiveClient(apiKey string, httpClient *http.Client) *MassiveClient {
	if httpClient == nil {
		httpClient = provider.NewHTTPClient()
	}
	return &MassiveClient{
		apiKey:     apiKey,
		httpClient: httpClient,
		now:        time.Now,
	}
}

func (c *MassiveClient) Name() string {
	return massiveName
}

func (c *MassiveClient) Configured() error {
	return provider.RequireKey(massiveName, c.apiKey)
}

func (c *MassiveClient) FetchNews(ctx context.Context, q model.NewsQuery) ([]model.NewsRecord, error) {
	now := c.now()
	params := url.Values{}
	params.Set("ticker", q.Symbol)
	params.Set("published_utc.gte", now.AddDate(0, 0, -q.Days).UTC().Format("2006-01-02"))
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("order", "desc")
	params.Set("sort", "published_utc")
	params.Set("apiKey", c.apiKey)

	var raw massiveResponse
	if err := provider.GetJSON(ctx, c.httpClient, massiveName, "https://api.massive.com/v2/reference/news?"+params.Encode(), nil, &raw); err != nil {
		return nil, err
	}

	records := make([]model.NewsRecord, 0, len(raw.Results))
	for _, item := range raw.Results {
		publishedAt, err := time.Parse(time.RFC3339, item.PublishedUTC)
		if err != nil {
			publishedAt = time.Time{}
		}

		r := model.NewsRecord{
			ID:          item.ID,
			Title:       item.Title,
			Description: item.Description,
			URL:         item.ArticleURL,
			Publisher:   item.Publisher.Name,
			PublishedAt: publishedAt,
			Symbols:     item.Tickers,
		}
		for _, in := range item.Insights {
			if !strings.EqualFold(in.Ticker, q.Symbol) {
				continue
			}
			if v, ok := massiveSentiment[strings.ToLower(in.Sentiment)]; ok {
				r.Sentiment = float64Ptr(v)
			}
			break
		}
		records = append(records, finish(r, massiveName, now))
	}

	return records, nil
}

type massiveResponse struct {
	Results []massiveResult `json:"results"`
}

type massiveResult struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	ArticleURL   string           `json:"article_url"`
	PublishedUTC string           `json:"published_utc"`
	Tickers      []string         `json:"tickers"`
	Publisher    massivePublisher `json:"publisher"`
	Insights     []massiveInsight `json:"insights"`
}

type massivePublisher struct {
	Name string `json:"name"`
}

type massiveInsight struct {
	Ticker    string `json:"ticker"`
	Sentiment string `json:"sentiment"`
}
