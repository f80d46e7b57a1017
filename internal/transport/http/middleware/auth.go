package middleware

import (
	"context"
	"net/http"

	"github.com/ErlanBelekov/todo-api/internal/auth"
	"github.com/ErlanBelekov/todo-api/internal/domain"
	"github.com/ErlanBelekov/todo-api/internal/metrics"
	"github.com/gin-gonic/gin"
)

// AuthHeader is the custom header carrying the bearer token.
const AuthHeader = "x-auth"

const (
	ctxUserKey  = "user"
	ctxTokenKey = "token"
)

// tokenVerifier is the subset of auth.TokenService the middleware needs.
type tokenVerifier interface {
	Verify(raw string) (auth.Claims, error)
}

// userResolver is the store half of the auth check.
type userResolver interface {
	FindByToken(ctx context.Context, userID, token, purpose string) (*domain.User, error)
}

// Auth authenticates the x-auth token in two steps: the signature check
// proves who issued the token, the store lookup proves it is still in
// the user's token list. Both are required — a logged-out token still
// has a valid signature. Every failure, including store errors, is a
// bare 401 so the caller cannot tell which check failed.
func Auth(tokens tokenVerifier, users userResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(AuthHeader)
		if raw == "" {
			reject(c)
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			reject(c)
			return
		}

		user, err := users.FindByToken(c.Request.Context(), claims.UserID, raw, domain.TokenPurposeAuth)
		if err != nil {
			reject(c)
			return
		}

		c.Set(ctxUserKey, user)
		c.Set(ctxTokenKey, raw)
		c.Next()
	}
}

func reject(c *gin.Context) {
	metrics.AuthFailuresTotal.Inc()
	c.AbortWithStatus(http.StatusUnauthorized)
}

// CurrentUser returns the user resolved by Auth. Only valid on routes
// behind the Auth middleware.
func CurrentUser(c *gin.Context) *domain.User {
	u, _ := c.MustGet(ctxUserKey).(*domain.User)
	return u
}

// CurrentToken returns the raw token the request authenticated with.
func CurrentToken(c *gin.Context) string {
	return c.GetString(ctxTokenKey)
}
