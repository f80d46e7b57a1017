package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/todo-api/internal/auth"
	"github.com/ErlanBelekov/todo-api/internal/domain"
	"github.com/ErlanBelekov/todo-api/internal/metrics"
	"github.com/ErlanBelekov/todo-api/internal/repository"
)

type UserUsecase struct {
	users  repository.UserRepository
	tokens *auth.TokenService
}

func NewUserUsecase(users repository.UserRepository, tokens *auth.TokenService) *UserUsecase {
	return &UserUsecase{users: users, tokens: tokens}
}

// Register creates the user with a hashed password, then issues and
// stores an auth token. The two writes are sequential with no
// transaction; a crash in between leaves a tokenless user who can
// recover by logging in.
func (u *UserUsecase) Register(ctx context.Context, email, password string) (*domain.User, string, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("register: %w", err)
	}

	user, err := u.users.Create(ctx, email, hash)
	if err != nil {
		return nil, "", err
	}

	token, err := u.issueToken(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and appends a fresh token. Tokens are
// additive: logging in from a second client does not invalidate the
// first one. Credential failures collapse to ErrInvalidCredentials so
// the response never reveals whether the email exists; store failures
// propagate wrapped so they can be logged, though the caller still
// answers with the same generic 400.
func (u *UserUsecase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := u.issueToken(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout removes exactly the presenting token from the user's token
// list. Other sessions keep their tokens.
func (u *UserUsecase) Logout(ctx context.Context, userID, token string) error {
	if err := u.users.RemoveToken(ctx, userID, token); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (u *UserUsecase) issueToken(ctx context.Context, userID string) (string, error) {
	token, err := u.tokens.Issue(userID, domain.TokenPurposeAuth)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	if err := u.users.AddToken(ctx, userID, domain.TokenPurposeAuth, token); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}
	metrics.TokensIssuedTotal.Inc()
	return token, nil
}
