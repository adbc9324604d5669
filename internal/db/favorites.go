package db

import (
	"context"
	"time"

	"github.com/event-finder/backend/internal/model"
)

func (db *Postgres) InsertFavorite(ctx context.Context, userID int64, eventID, name, url string, date time.Time, imageURL *string) (*model.FavoriteEvent, error) {
	query := `
		INSERT INTO favorite_events (user_id, event_id, name, url, event_date, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, user_id, event_id, name, url, event_date, image_url
	`
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	var fav model.FavoriteEvent
	err := db.Pool.QueryRow(ctx, query, userID, eventID, name, url, date, imageURL).Scan(
		&fav.ID,
		&fav.UserID,
		&fav.EventID,
		&fav.Name,
		&fav.URL,
		&fav.Date,
		&fav.ImageURL,
	)
	if err != nil {
		return nil, err
	}
	return &fav, nil
}

func (db *Postgres) ListFavoritesByUser(ctx context.Context, userID int64) ([]model.FavoriteEvent, error) {
	query := `
		SELECT id, user_id, event_id, name, url, event_date, image_url
		FROM favorite_events
		WHERE user_id = $1
		ORDER BY event_date ASC
	`
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	rows, err := db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	favorites := []model.FavoriteEvent{}
	for rows.Next() {
		var fav model.FavoriteEvent
		if err := rows.Scan(
			&fav.ID,
			&fav.UserID,
			&fav.EventID,
			&fav.Name,
			&fav.URL,
			&fav.Date,
			&fav.ImageURL,
		); err != nil {
			return nil, err
		}
		favorites = append(favorites, fav)
	}
	return favorites, rows.Err()
}
