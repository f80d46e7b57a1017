package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/ErlanBelekov/todo-api/internal/auth"
	"github.com/ErlanBelekov/todo-api/internal/domain"
	"github.com/ErlanBelekov/todo-api/internal/transport/http/handler"
	"github.com/ErlanBelekov/todo-api/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

const testKey = "handler-test-secret-32-chars-long!!!"

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// fakeUserUsecase implements the unexported userUsecaser interface via method matching.
type fakeUserUsecase struct {
	register func(ctx context.Context, email, password string) (*domain.User, string, error)
	login    func(ctx context.Context, email, password string) (*domain.User, string, error)
	logout   func(ctx context.Context, userID, token string) error
}

func (f *fakeUserUsecase) Register(ctx context.Context, email, password string) (*domain.User, string, error) {
	return f.register(ctx, email, password)
}

func (f *fakeUserUsecase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	return f.login(ctx, email, password)
}

func (f *fakeUserUsecase) Logout(ctx context.Context, userID, token string) error {
	return f.logout(ctx, userID, token)
}

// tokenStore doubles as the middleware's user resolver, so logout can be
// exercised end to end: removing a token makes the next request 401.
type tokenStore struct {
	users map[string]*domain.User // token -> user
}

func (s *tokenStore) FindByToken(_ context.Context, userID, token, purpose string) (*domain.User, error) {
	u, ok := s.users[token]
	if !ok || u.ID != userID || purpose != domain.TokenPurposeAuth {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func newUserEngine(uc *fakeUserUsecase, store *tokenStore) *gin.Engine {
	h := handler.NewUserHandler(uc, testLogger())
	authMW := middleware.Auth(auth.NewTokenService([]byte(testKey)), store)

	r := gin.New()
	r.POST("/users", h.Register)
	r.POST("/users/login", h.Login)
	r.GET("/users/me", authMW, h.Me)
	r.DELETE("/users/me/token", authMW, h.Logout)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

// ---- Register ----

func TestRegister_Success_ReturnsTokenHeaderAndSanitizedUser(t *testing.T) {
	uc := &fakeUserUsecase{
		register: func(_ context.Context, email, _ string) (*domain.User, string, error) {
			return &domain.User{ID: "user-1", Email: email, PasswordHash: "$2a$10$notyourbusiness"}, "tok-123", nil
		},
	}

	w := postJSON(newUserEngine(uc, nil), "/users", `{"email":"a@example.com","password":"secret123"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Header().Get(middleware.AuthHeader); got != "tok-123" {
		t.Errorf("x-auth header = %q, want tok-123", got)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body["id"] != "user-1" || body["email"] != "a@example.com" {
		t.Errorf("body = %v, want id and email", body)
	}
	raw := w.Body.String()
	for _, forbidden := range []string{"password", "tokens", "notyourbusiness"} {
		if strings.Contains(raw, forbidden) {
			t.Errorf("response leaks %q: %s", forbidden, raw)
		}
	}
}

func TestRegister_DuplicateEmail_Returns400(t *testing.T) {
	uc := &fakeUserUsecase{
		register: func(_ context.Context, _, _ string) (*domain.User, string, error) {
			return nil, "", domain.ErrEmailTaken
		},
	}

	w := postJSON(newUserEngine(uc, nil), "/users", `{"email":"a@example.com","password":"secret123"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRegister_InvalidEmail_Returns400(t *testing.T) {
	called := false
	uc := &fakeUserUsecase{
		register: func(_ context.Context, _, _ string) (*domain.User, string, error) {
			called = true
			return nil, "", nil
		},
	}

	w := postJSON(newUserEngine(uc, nil), "/users", `{"email":"not-an-email","password":"secret123"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if called {
		t.Error("usecase must not run on a binding failure")
	}
}

func TestRegister_ShortPassword_Returns400(t *testing.T) {
	uc := &fakeUserUsecase{}
	w := postJSON(newUserEngine(uc, nil), "/users", `{"email":"a@example.com","password":"five5"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

// ---- Login ----

func TestLogin_Success_SetsTokenHeader(t *testing.T) {
	uc := &fakeUserUsecase{
		login: func(_ context.Context, email, _ string) (*domain.User, string, error) {
			return &domain.User{ID: "user-1", Email: email}, "tok-456", nil
		},
	}

	w := postJSON(newUserEngine(uc, nil), "/users/login", `{"email":"a@example.com","password":"secret123"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Header().Get(middleware.AuthHeader); got != "tok-456" {
		t.Errorf("x-auth header = %q, want tok-456", got)
	}
}

func TestLogin_BadCredentials_Returns400WithoutHeader(t *testing.T) {
	uc := &fakeUserUsecase{
		login: func(_ context.Context, _, _ string) (*domain.User, string, error) {
			return nil, "", domain.ErrInvalidCredentials
		},
	}

	w := postJSON(newUserEngine(uc, nil), "/users/login", `{"email":"a@example.com","password":"wrong-pass"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if got := w.Header().Get(middleware.AuthHeader); got != "" {
		t.Errorf("x-auth header = %q, want empty on failure", got)
	}
	if w.Body.Len() != 0 {
		t.Errorf("body = %q, want empty (no hint at which field was wrong)", w.Body.String())
	}
}

func TestLogin_StoreError_Returns400WithoutHeader(t *testing.T) {
	uc := &fakeUserUsecase{
		login: func(_ context.Context, _, _ string) (*domain.User, string, error) {
			return nil, "", errors.New("find user: connection refused")
		},
	}

	w := postJSON(newUserEngine(uc, nil), "/users/login", `{"email":"a@example.com","password":"secret123"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 (outages must look like bad credentials)", w.Code)
	}
	if got := w.Header().Get(middleware.AuthHeader); got != "" {
		t.Errorf("x-auth header = %q, want empty", got)
	}
}

// ---- Me / Logout ----

func authedEngine(t *testing.T, uc *fakeUserUsecase) (*gin.Engine, *tokenStore, string) {
	t.Helper()
	user := &domain.User{ID: "user-1", Email: "a@example.com"}
	token, err := auth.NewTokenService([]byte(testKey)).Issue(user.ID, domain.TokenPurposeAuth)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	store := &tokenStore{users: map[string]*domain.User{token: user}}
	return newUserEngine(uc, store), store, token
}

func TestMe_ReturnsSanitizedCaller(t *testing.T) {
	engine, _, token := authedEngine(t, &fakeUserUsecase{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set(middleware.AuthHeader, token)
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body["id"] != "user-1" || body["email"] != "a@example.com" {
		t.Errorf("body = %v", body)
	}
}

func TestMe_WithoutToken_Returns401(t *testing.T) {
	engine, _, _ := authedEngine(t, &fakeUserUsecase{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestLogout_ThenReuse_Returns401(t *testing.T) {
	var store *tokenStore
	uc := &fakeUserUsecase{
		logout: func(_ context.Context, _, token string) error {
			delete(store.users, token)
			return nil
		},
	}
	engine, s, token := authedEngine(t, uc)
	store = s

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/users/me/token", nil)
	req.Header.Set(middleware.AuthHeader, token)
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("logout status = %d, want 200", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("logout body = %q, want empty", w.Body.String())
	}

	// The same token must now be dead.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set(middleware.AuthHeader, token)
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status after logout = %d, want 401", w.Code)
	}
}

func TestLogout_UsecaseError_Returns400(t *testing.T) {
	uc := &fakeUserUsecase{
		logout: func(_ context.Context, _, _ string) error {
			return errors.New("db down")
		},
	}
	engine, _, token := authedEngine(t, uc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/users/me/token", nil)
	req.Header.Set(middleware.AuthHeader, token)
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
