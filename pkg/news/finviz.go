package news

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/shiva994u/stock-news-analyzer/internal/model"
	"github.com/shiva994u/stock-news-analyzer/pkg/provider"
)

const finvizName = "finviz"

// FinvizClient scrapes the news table from a Finviz quote page.
type FinvizClient struct {
	httpClient *http.Client
	now        func() time.Time
}

func NewFinvizClient(httpClient *http.Client) *FinvizClient {
	if httpClient == nil {
		httpClient = provider.NewHTTPClient()
	}
	return &FinvizClient{httpClient: httpClient, now: time.Now}
}

func (c *FinvizClient) Name() string {
	return finvizName
}

func (c *FinvizClient) Configured() error {
	return nil
}

func (c *FinvizClient) FetchNews(ctx context.Context, q model.NewsQuery) ([]model.NewsRecord, error) {
	now := c.now()
	body, err := provider.Get(ctx, c.httpClient, finvizName, "https://finviz.com/quote.ashx?t="+url.QueryEscape(q.Symbol), nil)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &model.ParseError{Source: finvizName, Err: err}
	}
	table := doc.Find("#news-table")
	if table.Length() == 0 {
		return nil, &model.ParseError{Source: finvizName, Err: errors.New("news table not found")}
	}

	var (
		records []model.NewsRecord
		day     time.Time
	)
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		link := row.Find("a.tab-link-news").First()
		title := strings.TrimSpace(link.Text())
		if title == "" {
			return
		}
		href, _ := link.Attr("href")

		var published time.Time
		published, day = parseFinvizStamp(strings.TrimSpace(row.Find("td").First().Text()), day, now)

		publisher := strings.TrimSpace(row.Find(".news-link-right span").First().Text())
		publisher = strings.Trim(publisher, "()")

		records = append(records, finish(model.NewsRecord{
			ID:          generateExternalID(href),
			Title:       title,
			URL:         href,
			Publisher:   publisher,
			PublishedAt: published,
			Symbols:     []string{q.Symbol},
		}, finvizName, now))
	})

	return records, nil
}

// parseFinvizStamp reads the first-column stamp of a news row. Rows carry
// either "Jan-02-26 09:30AM", "Today 09:30AM" or only a time, in which case
// the previous row's day applies. It returns the timestamp and the day to
// carry forward.
func parseFinvizStamp(stamp string, prevDay, now time.Time) (time.Time, time.Time) {
	fields := strings.Fields(stamp)
	if len(fields) == 0 {
		return time.Time{}, prevDay
	}

	day := prevDay
	clock := fields[len(fields)-1]
	if len(fields) >= 2 {
		switch d := fields[0]; {
		case strings.EqualFold(d, "today"):
			n := now.In(model.NewYork)
			day = time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, model.NewYork)
		default:
			if parsed, err := time.ParseInLocation("Jan-02-06", d, model.NewYork); err == nil {
				day = parsed
			}
		}
	}
	if day.IsZero() {
		return time.Time{}, prevDay
	}

	t, err := time.Parse("03:04PM", clock)
	if err != nil {
		return time.Time{}, day
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, model.NewYork), day
}
