// Package middleware provides the HTTP middleware chain: authentication,
// request IDs, and rate limiting.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"fieldops/internal/domain"
)

// PrincipalResolver turns a token subject into a full principal record.
type PrincipalResolver interface {
	GetByExternalID(ctx context.Context, externalID string) (*domain.Principal, error)
}

// Authenticator validates HS256 Bearer tokens and resolves the subject claim
// to a principal, which is stored on the request context for the service
// layer to read. Requests without a valid token and known subject get 401.
type Authenticator struct {
	secret   []byte
	resolver PrincipalResolver
	log      *slog.Logger
}

func NewAuthenticator(secret string, resolver PrincipalResolver, log *slog.Logger) (*Authenticator, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret is required")
	}
	return &Authenticator{secret: []byte(secret), resolver: resolver, log: log}, nil
}

func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			writeUnauthorized(w, "provide a Bearer token")
			return
		}

		sub, err := a.subject(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			a.log.Debug("token rejected", "error", err)
			writeUnauthorized(w, "invalid token")
			return
		}

		p, err := a.resolver.GetByExternalID(r.Context(), sub)
		if err != nil {
			var nf *domain.NotFoundError
			if errors.As(err, &nf) {
				a.log.Warn("token subject has no principal", "sub", sub)
				writeUnauthorized(w, "unknown principal")
				return
			}
			a.log.Error("principal lookup failed", "error", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]any{"code": 500, "message": "internal error"})
			return
		}

		next.ServeHTTP(w, r.WithContext(domain.WithPrincipal(r.Context(), p)))
	})
}

// subject verifies the token signature and returns its sub claim.
func (a *Authenticator) subject(tokenStr string) (string, error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("token verification failed: %w", err)
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("unsupported claim type %T", tok.Claims)
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", fmt.Errorf("token has no sub claim")
	}
	return sub, nil
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"code":    401,
		"message": "unauthorized: " + msg,
	})
}
