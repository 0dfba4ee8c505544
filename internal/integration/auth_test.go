package integration

import (
	"net/http"
	"testing"

	"github.com/poofware/rental-service/internal/dtos"
	"github.com/poofware/rental-service/internal/utils"
	"github.com/stretchr/testify/require"
)

func login(t *testing.T, s *testServer, username, password string) dtos.LoginResponse {
	t.Helper()
	var resp dtos.LoginResponse
	s.mustDo(t, http.MethodPost, "/auth/token/login/", "", map[string]any{
		"username": username, "password": password,
	}, http.StatusOK, &resp)
	return resp
}

func TestWritesRequireToken(t *testing.T) {
	s := newTestServer(t, authPolicy{writes: true})
	apartment := map[string]any{"apartment_id": 1, "number": 1, "square": 30, "cost": 100}

	var body errorBody
	s.mustDo(t, http.MethodPost, "/apartment/create/", "", apartment, http.StatusUnauthorized, &body)
	require.Equal(t, utils.ErrCodeUnauthorized, body.Code)

	s.mustDo(t, http.MethodGet, "/apartments/", "", nil, http.StatusOK, nil)

	var registered dtos.User
	s.mustDo(t, http.MethodPost, "/auth/users/", "", map[string]any{
		"username": "new.client", "password": "long-enough-pass",
	}, http.StatusCreated, &registered)
	require.False(t, registered.IsStaff, "registration creates client accounts")

	resp := login(t, s, "new.client", "long-enough-pass")
	require.Equal(t, "Bearer", resp.TokenType)
	require.NotEmpty(t, resp.AccessToken)

	s.mustDo(t, http.MethodPost, "/apartment/create/", resp.AccessToken, apartment, http.StatusCreated, nil)

	var me dtos.User
	s.mustDo(t, http.MethodGet, "/auth/users/me/", resp.AccessToken, nil, http.StatusOK, &me)
	require.Equal(t, registered.ID, me.ID)

	s.mustDo(t, http.MethodPost, "/apartment/create/", "not-a-token", apartment, http.StatusUnauthorized, nil)
}

func TestReadsRequireTokenWhenConfigured(t *testing.T) {
	s := newTestServer(t, authPolicy{reads: true, writes: true})
	s.mustDo(t, http.MethodGet, "/apartments/", "", nil, http.StatusUnauthorized, nil)
	s.mustDo(t, http.MethodGet, "/health", "", nil, http.StatusOK, nil)
}

func TestLogin(t *testing.T) {
	s := newTestServer(t, open)
	s.mustDo(t, http.MethodPost, "/auth/users/", "", map[string]any{
		"username": "kate", "password": "correct-horse",
	}, http.StatusCreated, nil)

	t.Run("CorrectPassword", func(t *testing.T) {
		resp := login(t, s, "kate", "correct-horse")
		require.Equal(t, "kate", resp.User.Username)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		var body errorBody
		s.mustDo(t, http.MethodPost, "/auth/token/", "", map[string]any{
			"username": "kate", "password": "wrong-horse",
		}, http.StatusUnauthorized, &body)
		require.Equal(t, utils.ErrCodeInvalidCredentials, body.Code)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		s.mustDo(t, http.MethodPost, "/auth/token/", "", map[string]any{
			"username": "nobody", "password": "correct-horse",
		}, http.StatusUnauthorized, nil)
	})

	t.Run("Logout", func(t *testing.T) {
		resp := login(t, s, "kate", "correct-horse")
		s.mustDo(t, http.MethodPost, "/auth/token/logout/", resp.AccessToken, nil, http.StatusNoContent, nil)
		s.mustDo(t, http.MethodPost, "/auth/token/logout/", "", nil, http.StatusUnauthorized, nil)
	})

	t.Run("MeWithoutToken", func(t *testing.T) {
		s.mustDo(t, http.MethodGet, "/auth/users/me/", "", nil, http.StatusUnauthorized, nil)
	})

	t.Run("ShortPasswordRejected", func(t *testing.T) {
		var body errorBody
		s.mustDo(t, http.MethodPost, "/auth/users/", "", map[string]any{
			"username": "short", "password": "abc",
		}, http.StatusBadRequest, &body)
		require.Equal(t, []string{"password"}, body.fields())
	})
}
