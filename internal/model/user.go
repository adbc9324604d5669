package model

import "time"

// User is the stored account record. PasswordHash never leaves the server,
// so the struct carries no json tags.
type User struct {
	ID           int64
	Username     string
	Email        *string
	PasswordHash string
	TokenEpoch   int64
	CreatedAt    time.Time
}

// AuthUser is the identity resolved from a bearer token.
type AuthUser struct {
	ID       int64
	Username string
}
