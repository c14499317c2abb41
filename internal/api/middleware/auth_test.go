package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/frcparts/components-api/internal/core/domain"
)

type stubAuthenticator struct {
	users map[string]*domain.User
	err   error
	calls int
}

func (a *stubAuthenticator) Authenticate(_ context.Context, token string) (*domain.User, error) {
	a.calls++
	if a.err != nil {
		return nil, a.err
	}
	u, ok := a.users[token]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return u, nil
}

func teamPtr(s string) *string { return &s }

func newAuthStub() *stubAuthenticator {
	return &stubAuthenticator{users: map[string]*domain.User{
		"good-token": {ID: 1, Username: "alice", TeamID: teamPtr("teamA"), IsActive: true},
	}}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(newAuthStub())(func(c echo.Context) error {
		called = true
		user, ok := CurrentUser(c)
		if !ok || user.Username != "alice" {
			t.Fatalf("user not set: %+v", user)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_LowercaseScheme(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer good-token")
	c := e.NewContext(req, httptest.NewRecorder())

	handler := Auth(newAuthStub())(func(c echo.Context) error { return nil })
	if err := handler(c); err != nil {
		t.Fatalf("expected lowercase scheme to be accepted, got %v", err)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Token good-token"},
		{"no token", "Bearer "},
		{"no separator", "Bearergood-token"},
		{"unknown token", "Bearer not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			c := e.NewContext(req, httptest.NewRecorder())

			handler := Auth(newAuthStub())(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})

			if err := handler(c); !errors.Is(err, domain.ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
		})
	}
}

func TestAuthMiddleware_MalformedHeaderSkipsAuthenticator(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic YWxpY2U6cHc=")
	c := e.NewContext(req, httptest.NewRecorder())

	stub := newAuthStub()
	_ = Auth(stub)(func(c echo.Context) error { return nil })(c)
	if stub.calls != 0 {
		t.Fatalf("authenticator must not be called, got %d calls", stub.calls)
	}
}

func TestAuthMiddleware_StoreErrorPropagates(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	c := e.NewContext(req, httptest.NewRecorder())

	storeErr := errors.New("mongo down")
	stub := newAuthStub()
	stub.err = storeErr

	err := Auth(stub)(func(c echo.Context) error { return nil })(c)
	if !errors.Is(err, storeErr) || errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected store error, got %v", err)
	}
}
