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

const finvizPage = `<html><body>
<table id="news-table">
<tr>
  <td width="130" align="right">Feb-26-26 09:30AM</td>
  <td align="left"><div class="news-link-left"><a class="tab-link-news" href="https://example.com/nvda-partner">Nvidia forms partnership with automaker</a></div>
  <div class="news-link-right"><span>(Reuters)</span></div></td>
</tr>
<tr>
  <td width="130" align="right">08:15AM</td>
  <td align="left"><div class="news-link-left"><a class="tab-link-news" href="https://example.com/nvda-ceo">Nvidia CEO speaks at conference</a></div>
  <div class="news-link-right"><span>(Bloomberg)</span></div></td>
</tr>
</table>
</body></html>`

func TestFinvizFetchNews(t *testing.T) {
	var gotTicker string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTicker = r.URL.Query().Get("t")
		w.Write([]byte(finvizPage))
	}))
	defer srv.Close()

	client := NewFinvizClient(&http.Client{
		Transport: &rewriteTransport{base: srv.URL, inner: http.DefaultTransport},
	})
	client.now = func() time.Time { return fixedNow }

	records, err := client.FetchNews(context.Background(), model.NewsQuery{Symbol: "NVDA", Limit: 10, Days: 7})

	assert.Equal(t, nil, err)
	assert.Equal(t, "NVDA", gotTicker)
	assert.Equal(t, 2, len(records))

	a := records[0]
	assert.Equal(t, "Nvidia forms partnership with automaker", a.Title)
	assert.Equal(t, "Reuters", a.Publisher)
	assert.Equal(t, "finviz", a.SourceName)
	assert.Equal(t, model.CategoryPartnership, a.Category)
	assert.Equal(t, time.Date(2026, 2, 26, 9, 30, 0, 0, model.NewYork), a.PublishedAt)

	b := records[1]
	assert.Equal(t, "Bloomberg", b.Publisher)
	assert.Equal(t, model.CategoryManagement, b.Category)
	assert.Equal(t, time.Date(2026, 2, 26, 8, 15, 0, 0, model.NewYork), b.PublishedAt)
}

func TestFinvizMissingTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>captcha</body></html>`))
	}))
	defer srv.Close()

	client := NewFinvizClient(&http.Client{
		Transport: &rewriteTransport{base: srv.URL, inner: http.DefaultTransport},
	})
	_, err := client.FetchNews(context.Background(), model.NewsQuery{Symbol: "NVDA", Limit: 10, Days: 7})
	assert.Equal(t, model.KindParse, model.KindOf(err))
}

func TestParseFinvizStamp(t *testing.T) {
	got, day := parseFinvizStamp("Today 10:05PM", time.Time{}, fixedNow)
	assert.Equal(t, 22, got.Hour())
	assert.Equal(t, 5, got.Minute())
	assert.Equal(t, fixedNow.In(model.NewYork).Day(), day.Day())

	got, _ = parseFinvizStamp("07:00AM", time.Time{}, fixedNow)
	assert.Equal(t, true, got.IsZero())
}
