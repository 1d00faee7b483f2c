package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"github.com/shiva994u/stock-news-analyzer/internal/model"
)

const yahooFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Yahoo! Finance: AAPL News</title>
<item>
  <title>Apple announces record buyback</title>
  <description>The company expanded its repurchase program.</description>
  <link>https://finance.yahoo.com/news/apple-buyback.html</link>
  <guid isPermaLink="false">apple-buyback-123</guid>
  <pubDate>Thu, 26 Feb 2026 14:30:00 +0000</pubDate>
</item>
<item>
  <title>Tech stocks slip</title>
  <link>https://finance.yahoo.com/news/tech-slip.html</link>
</item>
</channel>
</rss>`

func TestYahooRSSFetchNews(t *testing.T) {
	var gotSymbol string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSymbol = r.URL.Query().Get("s")
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(yahooFeed))
	}))
	defer srv.Close()

	client := NewYahooRSSClient(&http.Client{
		Transport: &rewriteTransport{base: srv.URL, inner: http.DefaultTransport},
	})
	client.now = func() time.Time { return fixedNow }

	records, err := client.FetchNews(context.Background(), model.NewsQuery{Symbol: "AAPL", Limit: 10, Days: 7})

	assert.Equal(t, nil, err)
	assert.Equal(t, "AAPL", gotSymbol)
	assert.Equal(t, 2, len(records))

	a := records[0]
	assert.Equal(t, "apple-buyback-123", a.ID)
	assert.Equal(t, "Apple announces record buyback", a.Title)
	assert.Equal(t, "yahoo", a.SourceName)
	assert.Equal(t, model.CategoryCorporate, a.Category)
	assert.Equal(t, time.Date(2026, 2, 26, 14, 30, 0, 0, time.UTC), a.PublishedAt.UTC())

	b := records[1]
	assert.Equal(t, generateExternalID("https://finance.yahoo.com/news/tech-slip.html"), b.ID)
	assert.Equal(t, fixedNow, b.PublishedAt)
}

func TestYahooRSSMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("service temporarily unavailable"))
	}))
	defer srv.Close()

	client := NewYahooRSSClient(&http.Client{
		Transport: &rewriteTransport{base: srv.URL, inner: http.DefaultTransport},
	})
	_, err := client.FetchNews(context.Background(), model.NewsQuery{Symbol: "AAPL", Limit: 10, Days: 7})
	assert.Equal(t, model.KindParse, model.KindOf(err))
	assert.Equal(t, nil, client.Configured())
}
