package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldops/internal/domain"
)

type stubResolver struct {
	principals map[string]*domain.Principal
}

func (s *stubResolver) GetByExternalID(_ context.Context, externalID string) (*domain.Principal, error) {
	p, ok := s.principals[externalID]
	if !ok {
		return nil, domain.ErrNotFound("principal %q not found", externalID)
	}
	return p, nil
}

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func newAuth(t *testing.T, resolver PrincipalResolver) *Authenticator {
	t.Helper()
	a, err := NewAuthenticator(testSecret, resolver, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return a
}

func TestAuthenticator_ValidToken(t *testing.T) {
	resolver := &stubResolver{principals: map[string]*domain.Principal{
		"auth0|tess": {ID: 10, Name: "tess", Role: domain.RoleTechnician},
	}}
	var seen *domain.Principal
	handler := newAuth(t, resolver).Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = domain.PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/work-orders", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{
		"sub": "auth0|tess",
		"exp": time.Now().Add(time.Hour).Unix(),
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, int64(10), seen.ID)
	assert.Equal(t, domain.RoleTechnician, seen.Role)
}

func TestAuthenticator_Rejections(t *testing.T) {
	resolver := &stubResolver{principals: map[string]*domain.Principal{}}
	handler := newAuth(t, resolver).Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler must not run without a principal")
	}))

	cases := map[string]string{
		"no header":     "",
		"not bearer":    "Basic dXNlcjpwYXNz",
		"garbage token": "Bearer not-a-jwt",
		"wrong key": "Bearer " + func() string {
			tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "x"})
			s, _ := tok.SignedString([]byte("other-secret"))
			return s
		}(),
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuthenticator_UnknownSubject(t *testing.T) {
	handler := newAuth(t, &stubResolver{principals: map[string]*domain.Principal{}}).
		Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("handler must not run for an unknown subject")
		}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{
		"sub": "auth0|nobody",
		"exp": time.Now().Add(time.Hour).Unix(),
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticator_ExpiredToken(t *testing.T) {
	resolver := &stubResolver{principals: map[string]*domain.Principal{
		"auth0|tess": {ID: 10},
	}}
	handler := newAuth(t, resolver).Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run for an expired token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{
		"sub": "auth0|tess",
		"exp": time.Now().Add(-time.Hour).Unix(),
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticator_RequiresSecret(t *testing.T) {
	_, err := NewAuthenticator("", &stubResolver{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
}
