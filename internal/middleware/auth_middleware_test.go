package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/poofware/rental-service/internal/utils"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func validClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"iss":      TokenIssuer,
		"sub":      "7",
		"iat":      now.Unix(),
		"exp":      now.Add(time.Hour).Unix(),
		"is_staff": true,
	}
}

func serve(t *testing.T, mw func(http.Handler) http.Handler, authHeader string) (*httptest.ResponseRecorder, *Principal) {
	t.Helper()
	var seen *Principal
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/apartments/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, seen
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body utils.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Code
}

func TestAuthMiddleware(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	other, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	mw := AuthMiddleware(&key.PublicKey)

	t.Run("ValidBearer", func(t *testing.T) {
		rec, p := serve(t, mw, "Bearer "+signedToken(t, key, validClaims()))
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, p)
		require.Equal(t, int64(7), p.UserID)
		require.True(t, p.IsStaff)
	})

	t.Run("TokenScheme", func(t *testing.T) {
		rec, p := serve(t, mw, "Token "+signedToken(t, key, validClaims()))
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, p)
	})

	t.Run("MissingHeader", func(t *testing.T) {
		rec, _ := serve(t, mw, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, utils.ErrCodeUnauthorized, errorCode(t, rec))
	})

	t.Run("Expired", func(t *testing.T) {
		c := validClaims()
		c["exp"] = time.Now().Add(-time.Minute).Unix()
		rec, _ := serve(t, mw, "Bearer "+signedToken(t, key, c))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, utils.ErrCodeTokenExpired, errorCode(t, rec))
	})

	t.Run("WrongKey", func(t *testing.T) {
		rec, _ := serve(t, mw, "Bearer "+signedToken(t, other, validClaims()))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, utils.ErrCodeUnauthorized, errorCode(t, rec))
	})

	t.Run("WrongIssuer", func(t *testing.T) {
		c := validClaims()
		c["iss"] = "someone-else"
		rec, _ := serve(t, mw, "Bearer "+signedToken(t, key, c))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("NonNumericSubject", func(t *testing.T) {
		c := validClaims()
		c["sub"] = "alice"
		rec, _ := serve(t, mw, "Bearer "+signedToken(t, key, c))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestOptionalAuthMiddleware(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	mw := OptionalAuthMiddleware(&key.PublicKey)

	rec, p := serve(t, mw, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, p, "anonymous request carries no principal")

	rec, p = serve(t, mw, "Bearer "+signedToken(t, key, validClaims()))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, p)

	rec, _ = serve(t, mw, "Bearer not-a-jwt")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
