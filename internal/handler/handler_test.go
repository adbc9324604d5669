package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/event-finder/backend/internal/config"
	"github.com/event-finder/backend/internal/model"
	"github.com/event-finder/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// memStore backs the handler tests with the same error surface the postgres
// layer has: pgx.ErrNoRows for misses, SQLSTATE 23505 for duplicates.
type memStore struct {
	users      map[int64]*model.User
	favorites  []model.FavoriteEvent
	nextUserID int64
	nextFavID  int64
}

func newMemStore() *memStore {
	return &memStore{users: map[int64]*model.User{}}
}

func (m *memStore) CreateUser(_ context.Context, username string, email *string, passwordHash string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username || (email != nil && u.Email != nil && *u.Email == *email) {
			return nil, &pgconn.PgError{Code: "23505"}
		}
	}
	m.nextUserID++
	user := &model.User{
		ID:           m.nextUserID,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	m.users[user.ID] = user
	return user, nil
}

func (m *memStore) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memStore) GetUserByID(_ context.Context, userID int64) (*model.User, error) {
	u, ok := m.users[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *u
	return &copied, nil
}

func (m *memStore) IncrementTokenEpoch(_ context.Context, userID int64) error {
	u, ok := m.users[userID]
	if !ok {
		return pgx.ErrNoRows
	}
	u.TokenEpoch++
	return nil
}

func (m *memStore) DeleteUser(_ context.Context, userID int64) error {
	if _, ok := m.users[userID]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.users, userID)
	kept := m.favorites[:0]
	for _, fav := range m.favorites {
		if fav.UserID != userID {
			kept = append(kept, fav)
		}
	}
	m.favorites = kept
	return nil
}

func (m *memStore) InsertFavorite(_ context.Context, userID int64, eventID, name, url string, date time.Time, imageURL *string) (*model.FavoriteEvent, error) {
	for _, fav := range m.favorites {
		if fav.UserID == userID && fav.EventID == eventID {
			return nil, &pgconn.PgError{Code: "23505"}
		}
	}
	m.nextFavID++
	fav := model.FavoriteEvent{
		ID:       m.nextFavID,
		UserID:   userID,
		EventID:  eventID,
		Name:     name,
		URL:      url,
		Date:     date,
		ImageURL: imageURL,
	}
	m.favorites = append(m.favorites, fav)
	return &fav, nil
}

func (m *memStore) ListFavoritesByUser(_ context.Context, userID int64) ([]model.FavoriteEvent, error) {
	out := []model.FavoriteEvent{}
	for _, fav := range m.favorites {
		if fav.UserID == userID {
			out = append(out, fav)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubSearcher struct{}

func (stubSearcher) SearchEvents(_ context.Context, _ model.EventSearchQuery) ([]model.Event, error) {
	return []model.Event{{ID: "E1", Name: "Concert", URL: "http://x"}}, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *memStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newMemStore()
	authSvc, err := service.NewAuthService(store, config.AuthConfig{
		JWTSecret:    "test-secret",
		JWTAccessTTL: "30m",
		BcryptCost:   "4",
	})
	if err != nil {
		t.Fatalf("NewAuthService error: %v", err)
	}
	favSvc := service.NewFavoritesService(store)
	eventsSvc := service.NewEventsService(stubSearcher{}, nil, time.Minute, discardLogger())

	r := SetupRouter(
		authSvc,
		NewAuthHandler(authSvc),
		NewFavoritesHandler(favSvc),
		NewEventsHandler(eventsSvc),
		"",
	)
	return r, store
}

func doJSON(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newRequest(method, path, authHeader string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	return req
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doForm(r *gin.Engine, path, form string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
