package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/event-finder/backend/internal/model"
)

type fakeSearcher struct {
	calls  int
	events []model.Event
	err    error
}

func (f *fakeSearcher) SearchEvents(_ context.Context, _ model.EventSearchQuery) ([]model.Event, error) {
	f.calls++
	return f.events, f.err
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	getErr  error
	setErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.entries[key], nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[key] = value
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSearchServesRepeatFromCache(t *testing.T) {
	searcher := &fakeSearcher{events: []model.Event{{ID: "E1", Name: "Concert"}}}
	svc := NewEventsService(searcher, newMemoryCache(), time.Minute, testLogger())
	ctx := context.Background()
	q := model.EventSearchQuery{Keyword: "rock", City: "Berlin"}

	first, err := svc.Search(ctx, q)
	if err != nil {
		t.Fatalf("first Search error: %v", err)
	}
	second, err := svc.Search(ctx, q)
	if err != nil {
		t.Fatalf("second Search error: %v", err)
	}

	if searcher.calls != 1 {
		t.Fatalf("provider called %d times, want 1", searcher.calls)
	}
	if len(first) != 1 || len(second) != 1 || second[0].ID != "E1" {
		t.Fatalf("unexpected results: first %v, second %v", first, second)
	}
}

func TestSearchDistinctQueriesMissCache(t *testing.T) {
	searcher := &fakeSearcher{events: []model.Event{{ID: "E1"}}}
	svc := NewEventsService(searcher, newMemoryCache(), time.Minute, testLogger())
	ctx := context.Background()

	if _, err := svc.Search(ctx, model.EventSearchQuery{City: "Berlin"}); err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if _, err := svc.Search(ctx, model.EventSearchQuery{City: "Hamburg"}); err != nil {
		t.Fatalf("Search error: %v", err)
	}

	if searcher.calls != 2 {
		t.Fatalf("provider called %d times, want 2", searcher.calls)
	}
}

func TestSearchSurvivesCacheFailure(t *testing.T) {
	searcher := &fakeSearcher{events: []model.Event{{ID: "E1"}}}
	cache := newMemoryCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	svc := NewEventsService(searcher, cache, time.Minute, testLogger())

	events, err := svc.Search(context.Background(), model.EventSearchQuery{Keyword: "rock"})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
}

func TestSearchWithoutCache(t *testing.T) {
	searcher := &fakeSearcher{events: []model.Event{{ID: "E1"}}}
	svc := NewEventsService(searcher, nil, time.Minute, testLogger())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := svc.Search(ctx, model.EventSearchQuery{Keyword: "rock"}); err != nil {
			t.Fatalf("Search error: %v", err)
		}
	}
	if searcher.calls != 2 {
		t.Fatalf("provider called %d times, want 2", searcher.calls)
	}
}

func TestSearchPropagatesProviderError(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("upstream 500")}
	svc := NewEventsService(searcher, newMemoryCache(), time.Minute, testLogger())

	if _, err := svc.Search(context.Background(), model.EventSearchQuery{}); err == nil {
		t.Fatalf("expected provider error")
	}
}
