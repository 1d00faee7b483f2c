package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shiva994u/stock-news-analyzer/internal/model"
)

const userAgent = "Mozilla/5.0 (compatible; stock-news-analyzer/1.0)"

// maxBody caps how much of a provider response is read.
const maxBody = 8 << 20

// NewHTTPClient returns the client adapters use when none is injected.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

// Get performs one GET and returns the body. Network failures and non-2xx
// statuses come back as *model.TransportError.
func Get(ctx context.Context, client *http.Client, source, url string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &model.TransportError{Source: source, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &model.TransportError{Source: source, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, &model.TransportError{Source: source, StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &model.TransportError{
			Source:     source,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status: %s", truncate(string(body), 200)),
		}
	}
	return body, nil
}

// GetJSON performs one GET and decodes the body into out.
func GetJSON(ctx context.Context, client *http.Client, source, url string, header http.Header, out any) error {
	body, err := Get(ctx, client, source, url, header)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &model.ParseError{Source: source, Err: err}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
