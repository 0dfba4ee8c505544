package integration

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/poofware/rental-service/internal/app"
	"github.com/poofware/rental-service/internal/config"
	"github.com/poofware/rental-service/internal/utils"
	"github.com/stretchr/testify/require"
)

type authPolicy struct {
	reads  bool
	writes bool
}

type testServer struct {
	*httptest.Server
	app *app.App
}

// newTestServer serves the real router over a private in-memory sqlite store.
func newTestServer(t *testing.T, policy authPolicy) *testServer {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	cfg := &config.Config{
		OrganizationName:            utils.OrganizationName,
		AppName:                     "rental-service-test",
		Env:                         config.EnvDev,
		DBDriver:                    config.DBDriverSQLite,
		DBUrl:                       ":memory:",
		RSAPrivateKey:               key,
		RSAPublicKey:                &key.PublicKey,
		TokenExpiry:                 time.Hour,
		LDFlag_RequireAuthForReads:  policy.reads,
		LDFlag_RequireAuthForWrites: policy.writes,
		LDFlag_CORSHighSecurity:     true,
	}

	a, err := app.NewApp(cfg)
	require.NoError(t, err, "Failed to open sqlite store")
	t.Cleanup(a.Close)
	require.NoError(t, a.Migrate(context.Background()), "Failed to migrate sqlite store")

	srv := httptest.NewServer(app.NewRouter(a))
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, app: a}
}

// do sends body as JSON and returns the status and raw response body.
func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, s.URL+path, reader)
	require.NoError(t, err)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

// mustDo asserts the status and decodes the response into out when non-nil.
func (s *testServer) mustDo(t *testing.T, method, path, token string, body any, wantStatus int, out any) {
	t.Helper()
	status, raw := s.do(t, method, path, token, body)
	require.Equal(t, wantStatus, status, "%s %s: unexpected status, body=%s", method, path, raw)
	if out != nil {
		require.NoError(t, json.Unmarshal(raw, out), "%s %s: undecodable body %s", method, path, raw)
	}
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details []struct {
		Field string `json:"field"`
		Code  string `json:"code"`
	} `json:"details"`
}

func (e errorBody) fields() []string {
	out := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		out = append(out, d.Field)
	}
	return out
}
