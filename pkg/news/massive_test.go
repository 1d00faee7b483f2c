package news

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"github.com/shiva994u/stock-news-analyzer/internal/model"
)

func TestMassiveFetchNews(t *testing.T) {
	payload := map[string]interface{}{
		"results": []map[string]interface{}{
			{
				"id":            "576d99da",
				"title":         "Acme Corp Reports Q4 Earnings",
				"description":   "Acme Corp beat expectations with strong Q4 results.",
				"article_url":   "https://example.com/acme-q4",
				"published_utc": "2026-02-26T11:02:00Z",
				"tickers":       []string{"ACME", "SPY"},
				"publisher": map[string]interface{}{
					"name": "GlobeNewswire Inc.",
				},
				"insights": []map[string]interface{}{
					{"ticker": "SPY", "sentiment": "neutral"},
					{"ticker": "ACME", "sentiment": "positive"},
				},
			},
		},
		"status": "OK",
	}

	var gotTicker string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTicker = r.URL.Query().Get("ticker")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	client := NewMassiveClient("test-key", srv.Client())
	client.httpClient.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}

	records, err := client.FetchNews(context.Background(), model.NewsQuery{Symbol: "ACME", Limit: 10, Days: 7})

	assert.Equal(t, nil, err)
	assert.Equal(t, "ACME", gotTicker)
	assert.Equal(t, 1, len(records))

	a := records[0]
	assert.Equal(t, "576d99da", a.ID)
	assert.Equal(t, "Acme Corp Reports Q4 Earnings", a.Title)
	assert.Equal(t, "https://example.com/acme-q4", a.URL)
	assert.Equal(t, "GlobeNewswire Inc.", a.Publisher)
	assert.Equal(t, "massive", a.SourceName)
	assert.Equal(t, []string{"ACME", "SPY"}, a.Symbols)
	assert.Equal(t, model.CategoryEarnings, a.Category)
	assert.Equal(t, 0.5, *a.Sentiment)
	assert.Equal(t, 2026, a.PublishedAt.Year())
	assert.Equal(t, time.February, a.PublishedAt.Month())
	assert.Equal(t, 26, a.PublishedAt.Day())
}

func TestMassiveServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewMassiveClient("test-key", srv.Client())
	client.httpClient.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}

	_, err := client.FetchNews(context.Background(), model.NewsQuery{Symbol: "ACME", Limit: 10, Days: 7})
	assert.Equal(t, model.KindTransport, model.KindOf(err))
}
