package health

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedisChecker checks that the checkout session store answers PING.
func NewRedisChecker(client redis.UniversalClient) Checker {
	return NewCheckFunc("redis", func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
}
