package history

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
	"github.com/segmentio/kafka-go"

	"github.com/shiva994u/stock-news-analyzer/internal/model"
)

func sampleEvent() Event {
	return Event{
		Kind:       KindNews,
		Symbol:     "AAPL",
		Provenance: model.ProvenanceLive,
		State:      model.StatePartial,
		Records:    3,
		Sources: []model.SourceResult{
			{Source: "finnhub", Status: model.StatusSuccess, Count: 3},
			{Source: "massive", Status: model.StatusError, Error: "timeout", ErrorKind: model.KindTransport},
		},
		FetchedAt: time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC),
	}
}

func TestEventHelpers(t *testing.T) {
	e := sampleEvent()
	assert.Equal(t, []string{"finnhub", "massive"}, e.SourceNames())
	assert.Equal(t, []string{"massive"}, e.Failed())

	r := &model.NewsResult{Query: model.NewsQuery{Symbol: "MSFT"}, Records: make([]model.NewsRecord, 4), State: model.StateLive}
	ne := NewsEvent(r)
	assert.Equal(t, KindNews, ne.Kind)
	assert.Equal(t, "MSFT", ne.Symbol)
	assert.Equal(t, 4, ne.Records)

	ge := GainersEvent(&model.QuoteResult{Provenance: model.ProvenanceSynthetic})
	assert.Equal(t, KindGainers, ge.Kind)
	assert.Equal(t, model.ProvenanceSynthetic, ge.Provenance)
}

func TestSQLiteRoundTrip(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "history.db"))
	assert.Equal(t, nil, err)
	defer s.Close()

	ctx := context.Background()
	first := sampleEvent()
	second := sampleEvent()
	second.Symbol = "NVDA"
	assert.Equal(t, nil, s.Record(ctx, first))
	assert.Equal(t, nil, s.Record(ctx, second))

	events, err := s.Recent(ctx, 10)
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(events))
	assert.Equal(t, "NVDA", events[0].Symbol)
	assert.Equal(t, model.StatePartial, events[1].State)
	assert.Equal(t, first.Sources, events[1].Sources)
	assert.Equal(t, true, first.FetchedAt.Equal(events[1].FetchedAt))
}

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaRecord(t *testing.T) {
	w := &fakeWriter{}
	k := &Kafka{writer: w}

	assert.Equal(t, nil, k.Record(context.Background(), sampleEvent()))
	assert.Equal(t, 1, len(w.msgs))
	assert.Equal(t, "news:AAPL", string(w.msgs[0].Key))

	var got Event
	assert.Equal(t, nil, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, "AAPL", got.Symbol)
	assert.Equal(t, 2, len(got.Sources))

	assert.Equal(t, nil, k.Close())
	assert.Equal(t, true, w.closed)
}

func TestNewKafkaFlushesEachEvent(t *testing.T) {
	k := NewKafka("localhost:9092", "pulse.fetch-history")
	defer k.Close()

	w, ok := k.writer.(*kafka.Writer)
	assert.Equal(t, true, ok)
	assert.Equal(t, 1, w.BatchSize)
	assert.Equal(t, true, w.BatchTimeout < 100*time.Millisecond)
	assert.Equal(t, "pulse.fetch-history", w.Topic)
}

type failing struct{}

func (failing) Record(context.Context, Event) error { return errors.New("disk full") }
func (failing) Close() error                        { return nil }

func TestMulti(t *testing.T) {
	w := &fakeWriter{}
	m := Multi{Noop{}, &Kafka{writer: w}, failing{}}

	err := m.Record(context.Background(), sampleEvent())
	assert.NotEqual(t, nil, err)
	assert.Equal(t, 1, len(w.msgs))
	assert.Equal(t, nil, m.Close())
}
