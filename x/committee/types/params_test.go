package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/attest-chain/attest/x/committee/types"
)

func TestParamsValidate(t *testing.T) {
	require.NoError(t, types.DefaultParams().Validate())

	p := types.DefaultParams()
	p.UpdateInterval = 0
	require.Error(t, p.Validate())

	p = types.DefaultParams()
	p.ApprovalThresholdPercent = 0
	require.Error(t, p.Validate())

	p = types.DefaultParams()
	p.ApprovalThresholdPercent = 101
	require.Error(t, p.Validate())
}

func TestCommitteeSizeCurve(t *testing.T) {
	tests := []struct {
		registrySize int
		want         int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{4, 2},
		{5, 3},
		{9, 3},
		{10, 5},
		{100, 5},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, types.CommitteeSize(tt.registrySize), "registry size %d", tt.registrySize)
	}
}

func TestRequiredVotes(t *testing.T) {
	tests := []struct {
		committee int
		threshold uint64
		want      uint64
	}{
		{1, 51, 1},
		{2, 51, 2}, // three-validator registry: committee of 2, both must vote
		{3, 51, 2},
		{5, 51, 3},
		{5, 100, 5},
		{4, 50, 2},
		{0, 51, 1},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, types.RequiredVotes(tt.committee, tt.threshold),
			"committee %d threshold %d", tt.committee, tt.threshold)
	}
}
