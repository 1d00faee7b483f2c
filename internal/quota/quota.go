// Package quota tracks how many requests each source has made today so a
// provider's free-tier allowance is not overrun.
package quota

import (
	"context"
	"sync"
	"time"

	"github.com/shiva994u/stock-news-analyzer/internal/model"
)

// Counter reserves requests against a per-source daily limit.
type Counter interface {
	// Take reserves one request for source, returning *model.QuotaError once the
	// day's limit is spent.
	Take(ctx context.Context, source string) error
	Used(ctx context.Context, source string) (int64, error)
}

// Limits maps a source to its daily allowance. Sources not listed use Default;
// a non-positive limit means unlimited.
type Limits struct {
	Default   int64
	PerSource map[string]int64
}

func (l Limits) For(source string) int64 {
	if n, ok := l.PerSource[source]; ok {
		return n
	}
	return l.Default
}

func dayKey(t time.Time) string {
	return t.UTC().Format("20060102")
}

type usage struct {
	day  string
	used int64
}

// Memory is a process-local Counter.
type Memory struct {
	mu     sync.Mutex
	limits Limits
	now    func() time.Time
	counts map[string]*usage
}

func NewMemory(limits Limits, clock func() time.Time) *Memory {
	if clock == nil {
		clock = time.Now
	}
	return &Memory{limits: limits, now: clock, counts: make(map[string]*usage)}
}

func (m *Memory) current(source string) *usage {
	day := dayKey(m.now())
	u, ok := m.counts[source]
	if !ok || u.day != day {
		u = &usage{day: day}
		m.counts[source] = u
	}
	return u
}

func (m *Memory) Take(_ context.Context, source string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.current(source)
	limit := m.limits.For(source)
	if limit > 0 && u.used >= limit {
		return &model.QuotaError{Source: source, Used: u.used, Limit: limit}
	}
	u.used++
	return nil
}

func (m *Memory) Used(_ context.Context, source string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current(source).used, nil
}

// Reset clears all counters.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts = make(map[string]*usage)
}

// Unlimited never refuses.
type Unlimited struct{}

func (Unlimited) Take(context.Context, string) error { return nil }

func (Unlimited) Used(context.Context, string) (int64, error) { return 0, nil }
