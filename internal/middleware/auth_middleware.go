package middleware

import (
	"context"
	"crypto/rsa"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/poofware/rental-service/internal/utils"
)

type contextKey string

const ContextKeyPrincipal = contextKey("principal")

// AuthMiddleware rejects requests without a valid Bearer token with 401.
func AuthMiddleware(pub *rsa.PublicKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, err := extractAccessToken(r)
			if err != nil {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, err.Error(), nil,
				)
				return
			}
			p, ok := authenticate(w, tokenStr, pub)
			if !ok {
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ContextKeyPrincipal, p)))
		})
	}
}

// OptionalAuthMiddleware lets requests without a token through
// anonymously. A token that is present must still be valid.
func OptionalAuthMiddleware(pub *rsa.PublicKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, _ := extractAccessToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}
			p, ok := authenticate(w, tokenStr, pub)
			if !ok {
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ContextKeyPrincipal, p)))
		})
	}
}

// PrincipalFromContext returns the caller set by one of the auth
// middlewares, or nil for anonymous requests.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(ContextKeyPrincipal).(*Principal)
	return p
}

func authenticate(w http.ResponseWriter, tokenStr string, pub *rsa.PublicKey) (*Principal, bool) {
	p, err := ValidateToken(tokenStr, pub)
	if err == nil {
		return p, true
	}
	if errors.Is(err, jwt.ErrTokenExpired) {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeTokenExpired, "Token expired", nil, err,
		)
		return nil, false
	}
	utils.RespondErrorWithCode(
		w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid token", nil, err,
	)
	return nil, false
}

// Accepts both "Bearer <jwt>" and the "Token <jwt>" scheme older clients send.
func extractAccessToken(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	for _, scheme := range []string{"Bearer ", "Token "} {
		if strings.HasPrefix(h, scheme) {
			if tok := strings.TrimSpace(strings.TrimPrefix(h, scheme)); tok != "" {
				return tok, nil
			}
		}
	}
	return "", errors.New("missing Authorization header")
}
