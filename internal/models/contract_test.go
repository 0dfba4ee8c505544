package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContractStatusLabels(t *testing.T) {
	cases := []struct {
		code  string
		label string
	}{
		{"v", "Pending"},
		{"l", "Active"},
		{"f", "Completed"},
	}
	for _, tc := range cases {
		s, err := ParseContractStatus(tc.code)
		require.NoError(t, err)
		require.Equal(t, tc.label, s.Label())
	}
}

func TestParseContractStatusRejectsUnknown(t *testing.T) {
	for _, code := range []string{"", "x", "Pending", "V"} {
		_, err := ParseContractStatus(code)
		require.Error(t, err, code)
	}
	require.Equal(t, "x", ContractStatus("x").Label())
}

func TestBuildingHasApartment(t *testing.T) {
	b := Building{ApartmentIDs: []int64{2001, 2002}}
	require.True(t, b.HasApartment(2002))
	require.False(t, b.HasApartment(2003))
}
