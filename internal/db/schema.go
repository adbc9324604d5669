package db

import "context"

// EnsureSchema creates the users and favorite_events tables. Uniqueness of
// usernames, emails, and per-user favorites lives here so the database stays
// the source of truth under concurrent writers; favorites are removed with
// their owner via ON DELETE CASCADE.
func (db *Postgres) EnsureSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT UNIQUE,
			password_hash TEXT NOT NULL,
			token_epoch BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS favorite_events (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			event_id TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL DEFAULT '',
			event_date TIMESTAMPTZ NOT NULL,
			image_url TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, event_id)
		)
		`,
		`CREATE INDEX IF NOT EXISTS favorite_events_user_id_idx ON favorite_events(user_id)`,
	}

	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}
