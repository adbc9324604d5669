package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/event-finder/backend/internal/config"
	"github.com/event-finder/backend/internal/db"
	"github.com/event-finder/backend/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 50
	minPasswordLength = 8
	maxPasswordLength = 128
	maxEmailLength    = 100
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrConflict      = errors.New("conflict")
	ErrMisconfigured = errors.New("auth config invalid")
)

// userStore is the slice of the storage layer the auth service needs.
type userStore interface {
	CreateUser(ctx context.Context, username string, email *string, passwordHash string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
	IncrementTokenEpoch(ctx context.Context, userID int64) error
	DeleteUser(ctx context.Context, userID int64) error
}

type AuthService struct {
	store      userStore
	jwtSecret  []byte
	accessTTL  time.Duration
	bcryptCost int

	// now is replaceable so expiry boundaries can be tested with a fixed clock.
	now func() time.Time
}

// accessClaims binds the subject (user id) and the token epoch it was minted
// under. A stale epoch means the user has since revoked all tokens.
type accessClaims struct {
	Epoch int64 `json:"epoch"`
	jwt.RegisteredClaims
}

func NewAuthService(store userStore, cfg config.AuthConfig) (*AuthService, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}

	accessTTL, err := time.ParseDuration(cfg.JWTAccessTTL)
	if err != nil || accessTTL <= 0 {
		return nil, fmt.Errorf("%w: invalid JWT_ACCESS_TTL", ErrMisconfigured)
	}

	cost := bcrypt.DefaultCost
	if cfg.BcryptCost != "" {
		cost, err = strconv.Atoi(cfg.BcryptCost)
		if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return nil, fmt.Errorf("%w: invalid BCRYPT_COST", ErrMisconfigured)
		}
	}

	return &AuthService{
		store:      store,
		jwtSecret:  []byte(cfg.JWTSecret),
		accessTTL:  accessTTL,
		bcryptCost: cost,
		now:        time.Now,
	}, nil
}

// HashPassword produces a salted adaptive hash. The cost factor is encoded in
// the hash itself, so it can be tuned without invalidating stored hashes.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword returns false for any mismatch, including a malformed stored
// hash; it never reports why.
func (s *AuthService) VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Register creates the account and returns it. It does not log the user in.
// The unique constraints on users are the source of truth for duplicates;
// a violation surfaces as ErrConflict.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if err := validateRegistration(username, email, password); err != nil {
		return nil, err
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	var emailPtr *string
	if email != "" {
		emailPtr = &email
	}

	user, err := s.store.CreateUser(ctx, username, emailPtr, hash)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}

	return user, nil
}

// Login authenticates and mints an access token. Unknown username and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, int64, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", 0, ErrUnauthorized
	}

	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if db.IsNoRows(err) {
			return "", 0, ErrUnauthorized
		}
		return "", 0, err
	}

	if !s.VerifyPassword(password, user.PasswordHash) {
		return "", 0, ErrUnauthorized
	}

	return s.issueAccessToken(user)
}

func (s *AuthService) issueAccessToken(user *model.User) (string, int64, error) {
	now := s.now()
	claims := accessClaims{
		Epoch: user.TokenEpoch,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", 0, err
	}

	return signed, int64(s.accessTTL.Seconds()), nil
}

// ParseAccessToken checks signature and expiry. Malformed, expired, and
// mis-signed tokens all come back as ErrUnauthorized.
func (s *AuthService) ParseAccessToken(tokenStr string) (int64, int64, error) {
	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnauthorized
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !token.Valid {
		return 0, 0, ErrUnauthorized
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, 0, ErrUnauthorized
	}

	return userID, claims.Epoch, nil
}

// ResolveUser turns a bearer token into the live account behind it. A valid
// signature is not enough: the user must still exist and the token's epoch
// must match the stored one, so revoked tokens and deleted accounts fail the
// same way as bad tokens.
func (s *AuthService) ResolveUser(ctx context.Context, tokenStr string) (*model.AuthUser, error) {
	userID, epoch, err := s.ParseAccessToken(tokenStr)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	if user.TokenEpoch != epoch {
		return nil, ErrUnauthorized
	}

	return &model.AuthUser{ID: user.ID, Username: user.Username}, nil
}

// LogoutAll bumps the user's token epoch, invalidating every token issued so
// far without keeping a denylist.
func (s *AuthService) LogoutAll(ctx context.Context, userID int64) error {
	err := s.store.IncrementTokenEpoch(ctx, userID)
	if err != nil && db.IsNoRows(err) {
		return ErrUnauthorized
	}
	return err
}

// DeleteAccount removes the user; stored favorites cascade away with it.
func (s *AuthService) DeleteAccount(ctx context.Context, userID int64) error {
	err := s.store.DeleteUser(ctx, userID)
	if err != nil && db.IsNoRows(err) {
		return ErrUnauthorized
	}
	return err
}

func validateRegistration(username, email, password string) error {
	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return ErrInvalidInput
	}
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return ErrInvalidInput
	}
	if email != "" && (len(email) > maxEmailLength || !strings.Contains(email, "@")) {
		return ErrInvalidInput
	}
	return nil
}
