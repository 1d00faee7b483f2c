package model

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestNewsQueryNormalize(t *testing.T) {
	q, err := NewsQuery{Symbol: "  aapl "}.Normalize()
	assert.Equal(t, nil, err)
	assert.Equal(t, "AAPL", q.Symbol)
	assert.Equal(t, DefaultNewsLimit, q.Limit)
	assert.Equal(t, DefaultDays, q.Days)

	q, err = NewsQuery{Symbol: "BRK.B", Limit: 500, Days: 90, PreferredSources: []string{" Finnhub", "finnhub", "", "yahoo"}}.Normalize()
	assert.Equal(t, nil, err)
	assert.Equal(t, MaxLimit, q.Limit)
	assert.Equal(t, MaxDays, q.Days)
	assert.Equal(t, []string{"finnhub", "yahoo"}, q.PreferredSources)
}

func TestNewsQueryNormalizeRejects(t *testing.T) {
	cases := []NewsQuery{
		{Symbol: ""},
		{Symbol: "   "},
		{Symbol: "AA PL"},
		{Symbol: "THISISAVERYLONGTICKER"},
		{Symbol: "AAPL", Limit: -1},
		{Symbol: "AAPL", Days: -3},
	}
	for _, c := range cases {
		_, err := c.Normalize()
		assert.Equal(t, true, IsValidation(err))
	}
}

func TestGainerQueryNormalize(t *testing.T) {
	q, err := GainerQuery{}.Normalize()
	assert.Equal(t, nil, err)
	assert.Equal(t, DefaultGainerLimit, q.Limit)

	_, err = GainerQuery{Limit: -2}.Normalize()
	assert.Equal(t, true, IsValidation(err))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, ErrorKind(""), KindOf(nil))
	assert.Equal(t, KindConfiguration, KindOf(&ConfigurationError{Source: "finnhub", Reason: "missing key"}))
	assert.Equal(t, KindTransport, KindOf(fmt.Errorf("wrapped: %w", &TransportError{Source: "x", StatusCode: 502, Err: errors.New("bad gateway")})))
	assert.Equal(t, KindParse, KindOf(&ParseError{Source: "x", Err: errors.New("eof")}))
	assert.Equal(t, KindQuota, KindOf(&QuotaError{Source: "x", Used: 25, Limit: 25}))
	assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
}

func TestResultState(t *testing.T) {
	ok := SourceResult{Source: "a", Status: StatusSuccess, Count: 3}
	bad := SourceResult{Source: "b", Status: StatusError, Error: "timeout"}

	assert.Equal(t, StateLive, ResultState([]SourceResult{ok}, ProvenanceLive, 3))
	assert.Equal(t, StatePartial, ResultState([]SourceResult{ok, bad}, ProvenanceLive, 3))
	assert.Equal(t, StateSynthetic, ResultState([]SourceResult{bad}, ProvenanceSynthetic, 6))
	assert.Equal(t, StateUnavailable, ResultState([]SourceResult{bad}, ProvenanceLive, 0))
}

func TestInferCategory(t *testing.T) {
	assert.Equal(t, CategoryEarnings, InferCategory("Apple beats Q3 earnings estimates"))
	assert.Equal(t, CategoryAnalyst, InferCategory("Morgan Stanley upgrade lifts shares"))
	assert.Equal(t, CategoryRegulatory, InferCategory("Company fined by EU antitrust body"))
	assert.Equal(t, CategoryMarket, InferCategory("Stocks drift sideways"))
}

func TestProvenance(t *testing.T) {
	assert.Equal(t, true, Synthetic().IsSynthetic())
	assert.Equal(t, false, Live("finnhub").IsSynthetic())
	assert.Equal(t, SyntheticSource, Synthetic().Source)
}

func TestNewYorkZone(t *testing.T) {
	winter := time.Date(2026, 2, 27, 15, 0, 0, 0, time.UTC).In(NewYork)
	summer := time.Date(2026, 7, 1, 15, 0, 0, 0, time.UTC).In(NewYork)

	_, winterOffset := winter.Zone()
	_, summerOffset := summer.Zone()
	assert.Equal(t, -5*3600, winterOffset)
	assert.Equal(t, -4*3600, summerOffset)
	assert.Equal(t, 10, winter.Hour())
}
