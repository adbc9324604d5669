package service

import (
	"context"
	"time"

	"github.com/event-finder/backend/internal/db"
	"github.com/event-finder/backend/internal/model"
)

// Provider dates arrive either as full RFC 3339 or as a zoneless
// "2025-01-01T20:00:00"; the latter is taken as UTC.
var favoriteDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

type favoriteStore interface {
	InsertFavorite(ctx context.Context, userID int64, eventID, name, url string, date time.Time, imageURL *string) (*model.FavoriteEvent, error)
	ListFavoritesByUser(ctx context.Context, userID int64) ([]model.FavoriteEvent, error)
}

type FavoritesService struct {
	store favoriteStore
}

func NewFavoritesService(store favoriteStore) *FavoritesService {
	return &FavoritesService{store: store}
}

// Add stores a favorite for the user. The (user, event) pair is unique at the
// storage layer; favoriting the same event twice returns ErrConflict.
func (s *FavoritesService) Add(ctx context.Context, userID int64, req model.FavoriteCreateRequest) (*model.FavoriteEvent, error) {
	date, err := parseEventDate(req.Date)
	if err != nil {
		return nil, ErrInvalidInput
	}

	var imageURL *string
	if req.ImageURL != "" {
		imageURL = &req.ImageURL
	}

	fav, err := s.store.InsertFavorite(ctx, userID, req.EventID, req.Name, req.URL, date, imageURL)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return fav, nil
}

// ListForUser returns the user's favorites ascending by event date.
func (s *FavoritesService) ListForUser(ctx context.Context, userID int64) ([]model.FavoriteEvent, error) {
	return s.store.ListFavoritesByUser(ctx, userID)
}

func parseEventDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range favoriteDateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
