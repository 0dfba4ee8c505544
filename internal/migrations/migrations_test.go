package migrations

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListIsOrderedAndComplete(t *testing.T) {
	ms, err := List()
	require.NoError(t, err)
	require.NotEmpty(t, ms)
	require.Equal(t, "0001", ms[0].Version)
	require.Equal(t, "init", ms[0].Name)

	for i := 1; i < len(ms); i++ {
		require.Less(t, ms[i-1].Version, ms[i].Version)
	}
	for _, table := range []string{"users", "apartments", "buildings", "building_apartments", "contracts"} {
		require.Contains(t, ms[0].SQL, "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
	require.Contains(t, ms[0].SQL, "ON DELETE CASCADE")
}
