package provider

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/time/rate"
)

// Limiters paces outbound calls per source with a token bucket each.
type Limiters struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

// NewLimiters allows rps requests per second per source. rps <= 0 disables pacing.
func NewLimiters(rps float64, burst int) *Limiters {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &Limiters{
		limit:    limit,
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (l *Limiters) get(source string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.limiters[source]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[source] = lim
	}
	return lim
}

// Wait blocks until source may make a request or ctx is done.
func (l *Limiters) Wait(ctx context.Context, source string) error {
	if err := l.get(source).Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	return nil
}
