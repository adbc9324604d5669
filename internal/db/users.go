package db

import (
	"context"

	"github.com/event-finder/backend/internal/model"
	"github.com/jackc/pgx/v5"
)

func (db *Postgres) CreateUser(ctx context.Context, username string, email *string, passwordHash string) (*model.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, username, email, password_hash, token_epoch, created_at
	`
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	var user model.User
	err := db.Pool.QueryRow(ctx, query, username, email, passwordHash).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.TokenEpoch,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *Postgres) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
		SELECT id, username, email, password_hash, token_epoch, created_at
		FROM users
		WHERE username = $1
	`
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	var user model.User
	err := db.Pool.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.TokenEpoch,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *Postgres) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	query := `
		SELECT id, username, email, password_hash, token_epoch, created_at
		FROM users
		WHERE id = $1
	`
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	var user model.User
	err := db.Pool.QueryRow(ctx, query, userID).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.TokenEpoch,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// IncrementTokenEpoch invalidates every outstanding token for the user;
// tokens carry the epoch they were minted under and stale ones are rejected.
func (db *Postgres) IncrementTokenEpoch(ctx context.Context, userID int64) error {
	query := `UPDATE users SET token_epoch = token_epoch + 1 WHERE id = $1`

	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	tag, err := db.Pool.Exec(ctx, query, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DeleteUser removes the account; favorite_events rows go with it through the
// ON DELETE CASCADE foreign key.
func (db *Postgres) DeleteUser(ctx context.Context, userID int64) error {
	query := `DELETE FROM users WHERE id = $1`

	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	tag, err := db.Pool.Exec(ctx, query, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
