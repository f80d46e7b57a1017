package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/todo-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and verifies the signed bearer tokens carried in
// the x-auth header. Tokens are stateless: Verify only proves the
// signature and decodes the claims. Whether a token is still live is
// decided by the auth middleware's store lookup, so logout works without
// a revocation list.
//
// No exp claim is set. Tokens never expire on their own; the only way to
// invalidate one is to remove it from the user's token list.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret []byte) *TokenService {
	return &TokenService{secret: secret}
}

// Claims is the decoded payload of a verified token.
type Claims struct {
	UserID  string
	Purpose string
}

// Issue signs a {sub, purpose, iat} payload for the given user. The iat
// claim keeps tokens from separate logins distinct.
func (s *TokenService) Issue(userID, purpose string) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     userID,
		"purpose": purpose,
		"iat":     time.Now().Unix(),
	})
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and decodes the claims. Any failure maps
// to domain.ErrTokenInvalid; callers never learn which check failed.
func (s *TokenService) Verify(raw string) (Claims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, domain.ErrTokenInvalid
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, domain.ErrTokenInvalid
	}

	sub, ok := mc["sub"].(string)
	if !ok || sub == "" {
		return Claims{}, domain.ErrTokenInvalid
	}
	purpose, _ := mc["purpose"].(string)

	return Claims{UserID: sub, Purpose: purpose}, nil
}
