package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/event-finder/backend/internal/model"
	"github.com/redis/go-redis/v9"
)

type eventSearcher interface {
	SearchEvents(ctx context.Context, q model.EventSearchQuery) ([]model.Event, error)
}

// EventCache is a soft-expiring byte cache. Get returns (nil, nil) on a miss.
// Cached data is presentation-only and never consulted for authorization.
type EventCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type RedisEventCache struct {
	rdb *redis.Client
}

func NewRedisEventCache(rdb *redis.Client) *RedisEventCache {
	return &RedisEventCache{rdb: rdb}
}

func (c *RedisEventCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

func (c *RedisEventCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

type EventsService struct {
	client   eventSearcher
	cache    EventCache
	cacheTTL time.Duration
	logger   *slog.Logger
}

// NewEventsService wires the provider client and an optional cache; pass a
// nil cache to always hit the provider.
func NewEventsService(client eventSearcher, cache EventCache, cacheTTL time.Duration, logger *slog.Logger) *EventsService {
	return &EventsService{
		client:   client,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Search answers from the cache when a fresh entry exists, otherwise asks the
// provider and stores the result. Cache failures degrade to a provider call,
// never to an error.
func (s *EventsService) Search(ctx context.Context, q model.EventSearchQuery) ([]model.Event, error) {
	key := cacheKey(q)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("event cache read failed", "error", err)
		} else if cached != nil {
			var events []model.Event
			if err := json.Unmarshal(cached, &events); err == nil {
				return events, nil
			}
			s.logger.Warn("event cache entry corrupt, refetching", "key", key)
		}
	}

	events, err := s.client.SearchEvents(ctx, q)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(events); err == nil {
			if err := s.cache.Set(ctx, key, payload, s.cacheTTL); err != nil {
				s.logger.Warn("event cache write failed", "error", err)
			}
		}
	}

	return events, nil
}

func cacheKey(q model.EventSearchQuery) string {
	return fmt.Sprintf("events:%s:%s:%s:%s:%s:%d",
		q.Keyword, q.City, q.CountryCode, q.StartDate, q.EndDate, q.Size)
}
