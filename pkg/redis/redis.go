package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

type Config interface {
	GetURL() string
}

// New parses a redis:// URL, connects and pings.
func New(ctx context.Context, cfg Config) (*goredis.Client, error) {
	opt, err := goredis.ParseURL(cfg.GetURL())
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := goredis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
