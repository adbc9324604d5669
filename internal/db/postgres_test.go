package db

import (
	"errors"
	"testing"
	"time"

	"github.com/event-finder/backend/internal/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestBuildPostgresURL(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.PostgresConfig
		want    string
		wantErr bool
	}{
		{
			name: "database-url-wins",
			cfg: config.PostgresConfig{
				DatabaseURL: "postgres://u:p@db:5432/events?sslmode=require",
				User:        "ignored",
				Database:    "ignored",
			},
			want: "postgres://u:p@db:5432/events?sslmode=require",
		},
		{
			name: "from-parts",
			cfg: config.PostgresConfig{
				Host:     "localhost",
				Port:     "5432",
				User:     "app",
				Password: "pw",
				Database: "events",
				SSLMode:  "disable",
			},
			want: "postgres://app:pw@localhost:5432/events?sslmode=disable",
		},
		{
			name: "no-password",
			cfg: config.PostgresConfig{
				Host:     "localhost",
				Port:     "5432",
				User:     "app",
				Database: "events",
				SSLMode:  "disable",
			},
			want: "postgres://app@localhost:5432/events?sslmode=disable",
		},
		{
			name:    "missing-user-and-db",
			cfg:     config.PostgresConfig{Host: "localhost", Port: "5432"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildPostgresURL(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("buildPostgresURL() err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Fatalf("buildPostgresURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsNoRows(t *testing.T) {
	if !IsNoRows(pgx.ErrNoRows) {
		t.Fatalf("pgx.ErrNoRows not recognized")
	}
	if IsNoRows(errors.New("other")) {
		t.Fatalf("unrelated error recognized as no-rows")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !IsUniqueViolation(&pgconn.PgError{Code: "23505"}) {
		t.Fatalf("23505 not recognized")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatalf("foreign-key violation misread as unique violation")
	}
	if IsUniqueViolation(errors.New("other")) {
		t.Fatalf("unrelated error recognized as unique violation")
	}
}

func TestNewPostgresDefaultsTimeout(t *testing.T) {
	store := NewPostgres(nil, 0)
	if store.queryTimeout != defaultQueryTimeout {
		t.Fatalf("queryTimeout = %v, want %v", store.queryTimeout, defaultQueryTimeout)
	}

	store = NewPostgres(nil, 2*time.Second)
	if store.queryTimeout != 2*time.Second {
		t.Fatalf("queryTimeout = %v, want 2s", store.queryTimeout)
	}
}
