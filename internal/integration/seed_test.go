package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/poofware/rental-service/internal/app"
	"github.com/poofware/rental-service/internal/dtos"
	"github.com/stretchr/testify/require"
)

func TestSeedDataIsIdempotent(t *testing.T) {
	s := newTestServer(t, open)
	ctx := context.Background()
	require.NoError(t, app.SeedTestData(ctx, s.app.Store))
	require.NoError(t, app.SeedTestData(ctx, s.app.Store))

	var contracts []dtos.Contract
	s.mustDo(t, http.MethodGet, "/contracts/", "", nil, http.StatusOK, &contracts)
	require.Len(t, contracts, 1)
	require.Equal(t, "Pending", contracts[0].Status)

	resp := login(t, s, app.SeedAgentUsername, app.SeedPassword)
	require.True(t, resp.User.IsStaff)
}
