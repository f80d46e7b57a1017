package repository

import (
	"context"

	"github.com/ErlanBelekov/todo-api/internal/domain"
)

// UseCase depends on interface, not concrete implementation.
// This way we get: 1) can swap DB later without touching usecase 2) We can pass a mock implementation of interface in tests
type UserRepository interface {
	Create(ctx context.Context, email, passwordHash string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindByToken resolves a user only when the user exists AND the exact
	// token string is present in their token list with the given purpose.
	// This is the store half of the auth double-check: a token removed on
	// logout stops resolving even though its signature still verifies.
	FindByToken(ctx context.Context, userID, token, purpose string) (*domain.User, error)

	// AddToken appends the token to the user's token list. Re-adding a
	// token string the user already holds is a no-op, not an error.
	AddToken(ctx context.Context, userID, purpose, token string) error
	RemoveToken(ctx context.Context, userID, token string) error
}
