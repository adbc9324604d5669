package db

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects the soft-TTL event cache. The cache is optional:
// callers treat a nil client as "no cache".
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, err
	}

	return rdb, nil
}
