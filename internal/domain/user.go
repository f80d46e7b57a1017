package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenInvalid       = errors.New("token is invalid")
)

// TokenPurposeAuth is the only token purpose in use. Kept as a tagged
// field so additional purposes (e.g. password reset) can coexist in the
// same token list later.
const TokenPurposeAuth = "auth"

type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserToken is one entry in a user's issued-token list. A token is live
// only while its entry exists; logout deletes the entry, which makes the
// signed token unusable even though its signature still verifies.
type UserToken struct {
	UserID    string
	Purpose   string
	Token     string
	CreatedAt time.Time
}
