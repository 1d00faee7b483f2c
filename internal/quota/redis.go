package quota

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shiva994u/stock-news-analyzer/internal/model"
)

const keyPrefix = "pulse:quota"

// Redis shares counters between processes. Keys expire two days after first use.
type Redis struct {
	client *redis.Client
	limits Limits
	now    func() time.Time
}

func NewRedis(client *redis.Client, limits Limits, clock func() time.Time) *Redis {
	if clock == nil {
		clock = time.Now
	}
	return &Redis{client: client, limits: limits, now: clock}
}

func (r *Redis) key(source string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, source, dayKey(r.now()))
}

func (r *Redis) Take(ctx context.Context, source string) error {
	key := r.key(source)
	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, 48*time.Hour)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("quota incr %s: %w", source, err)
	}

	used := incr.Val()
	limit := r.limits.For(source)
	if limit > 0 && used > limit {
		// give the reservation back so Used reports the real count
		r.client.Decr(ctx, key)
		return &model.QuotaError{Source: source, Used: used - 1, Limit: limit}
	}
	return nil
}

func (r *Redis) Used(ctx context.Context, source string) (int64, error) {
	n, err := r.client.Get(ctx, r.key(source)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("quota get %s: %w", source, err)
	}
	return n, nil
}
