package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	testkeeper "github.com/attest-chain/attest/testutil/keeper"
	"github.com/attest-chain/attest/x/committee/types"
)

func TestSelectCommitteeEmptyRegistry(t *testing.T) {
	f := testkeeper.Setup(t)

	_, err := f.Committee.SelectCommittee(f.Ctx, nil)
	require.ErrorIs(t, err, types.ErrInsufficientValidators)
}

func TestSelectCommitteeSizeCurve(t *testing.T) {
	tests := []struct {
		registrySize int
		want         int
	}{
		{1, 1},
		{3, 2},
		{6, 3},
		{12, 5},
	}

	for _, tc := range tests {
		f := testkeeper.Setup(t)
		addrs := registerValidators(t, f, tc.registrySize)

		committee, err := f.Committee.SelectCommittee(f.Ctx, nil)
		require.NoError(t, err)
		require.Len(t, committee, tc.want, "registry of %d", tc.registrySize)

		registered := make(map[string]struct{}, len(addrs))
		for _, a := range addrs {
			registered[a] = struct{}{}
		}
		seen := make(map[string]struct{}, len(committee))
		for _, member := range committee {
			_, ok := registered[member]
			require.True(t, ok, "member %s not in registry", member)
			_, dup := seen[member]
			require.False(t, dup, "member %s selected twice", member)
			seen[member] = struct{}{}
		}

		require.Equal(t, committee, f.Committee.GetCommittee(f.Ctx))
	}
}

func TestSelectCommitteeDeterministic(t *testing.T) {
	f := testkeeper.Setup(t)
	registerValidators(t, f, 8)

	material := []byte("revealed proposal hash")

	ctxA, _ := f.Ctx.CacheContext()
	a, err := f.Committee.SelectCommittee(ctxA, material)
	require.NoError(t, err)

	ctxB, _ := f.Ctx.CacheContext()
	b, err := f.Committee.SelectCommittee(ctxB, material)
	require.NoError(t, err)

	require.Equal(t, a, b, "same seed inputs must select the same committee")
}

func TestSelectCommitteeRollsSeed(t *testing.T) {
	f := testkeeper.Setup(t)
	registerValidators(t, f, 4)

	_, err := f.Committee.SelectCommittee(f.Ctx, nil)
	require.NoError(t, err)
	first := f.Committee.GetRound(f.Ctx).Seed
	require.Len(t, first, 32)

	_, err = f.Committee.SelectCommittee(f.Ctx, nil)
	require.NoError(t, err)
	require.NotEqual(t, first, f.Committee.GetRound(f.Ctx).Seed)
}

func TestSelectCommitteeFavorsActiveValidators(t *testing.T) {
	f := testkeeper.Setup(t)
	addrs := registerValidators(t, f, 6)

	round := f.Committee.GetRound(f.Ctx)
	round.Number = 10
	f.Committee.SetRoundForTest(f.Ctx, round)

	// Activity window of 3 makes rounds >= 7 recent. Two validators
	// have shown up recently, the rest have been silent since
	// registration.
	active := addrs[:2]
	for _, addr := range addrs {
		info, found := f.Committee.GetValidator(f.Ctx, addr)
		require.True(t, found)
		info.LastActiveRound = 1
		f.Committee.SetValidatorForTest(f.Ctx, info)
	}
	for _, addr := range active {
		info, _ := f.Committee.GetValidator(f.Ctx, addr)
		info.LastActiveRound = 9
		f.Committee.SetValidatorForTest(f.Ctx, info)
	}

	committee, err := f.Committee.SelectCommittee(f.Ctx, nil)
	require.NoError(t, err)
	require.Len(t, committee, 3)

	// Both recently active validators take seats before any inactive
	// one is drawn.
	require.Contains(t, committee, active[0])
	require.Contains(t, committee, active[1])
}
