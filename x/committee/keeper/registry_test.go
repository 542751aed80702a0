package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	testkeeper "github.com/attest-chain/attest/testutil/keeper"
	"github.com/attest-chain/attest/x/committee/keeper"
	"github.com/attest-chain/attest/x/committee/types"
)

// registerValidators funds collateral for and registers n fresh
// validators.
func registerValidators(t testing.TB, f *testkeeper.Fixture, n int) []string {
	t.Helper()
	addrs := make([]string, n)
	for i := range addrs {
		addrs[i] = testkeeper.TestAddr()
		f.Collateral.Allow(addrs[i])
		require.NoError(t, f.Committee.RegisterValidator(f.Ctx, &types.MsgRegisterValidator{Candidate: addrs[i]}))
	}
	return addrs
}

func TestRegisterValidator(t *testing.T) {
	f := testkeeper.Setup(t)
	addr := testkeeper.TestAddr()

	err := f.Committee.RegisterValidator(f.Ctx, &types.MsgRegisterValidator{Candidate: addr})
	require.ErrorIs(t, err, types.ErrNotEligible)

	f.Collateral.Allow(addr)
	require.NoError(t, f.Committee.RegisterValidator(f.Ctx, &types.MsgRegisterValidator{Candidate: addr}))
	require.True(t, f.Committee.IsRegistered(f.Ctx, addr))

	info, found := f.Committee.GetValidator(f.Ctx, addr)
	require.True(t, found)
	require.Equal(t, addr, info.Address)
	require.Zero(t, info.Index)
	require.Equal(t, testkeeper.GenesisTime.Unix(), info.RegisteredAt)

	err = f.Committee.RegisterValidator(f.Ctx, &types.MsgRegisterValidator{Candidate: addr})
	require.ErrorIs(t, err, types.ErrAlreadyRegistered)
}

func TestDeregisterValidator(t *testing.T) {
	f := testkeeper.Setup(t)

	err := f.Committee.DeregisterValidator(f.Ctx, &types.MsgDeregisterValidator{Candidate: testkeeper.TestAddr()})
	require.ErrorIs(t, err, types.ErrNotRegistered)

	addrs := registerValidators(t, f, 3)

	// Removing the first entry swaps the last one into its slot.
	require.NoError(t, f.Committee.DeregisterValidator(f.Ctx, &types.MsgDeregisterValidator{Candidate: addrs[0]}))
	require.False(t, f.Committee.IsRegistered(f.Ctx, addrs[0]))

	registry := f.Committee.GetRegistry(f.Ctx)
	require.Equal(t, []string{addrs[2], addrs[1]}, registry.Addresses)

	moved, found := f.Committee.GetValidator(f.Ctx, addrs[2])
	require.True(t, found)
	require.Zero(t, moved.Index)
}

func TestDeregisterKeepsCommitteeSubset(t *testing.T) {
	f := testkeeper.Setup(t)
	addrs := registerValidators(t, f, 5)

	f.Committee.SetRoundForTest(f.Ctx, types.Round{
		Number:            2,
		LastExecutionTime: testkeeper.GenesisTime.Unix(),
		UpdateInterval:    types.DefaultUpdateInterval,
		Committee:         []string{addrs[0], addrs[1], addrs[2]},
	})

	require.NoError(t, f.Committee.DeregisterValidator(f.Ctx, &types.MsgDeregisterValidator{Candidate: addrs[1]}))
	require.Equal(t, []string{addrs[0], addrs[2]}, f.Committee.GetCommittee(f.Ctx))
}

func TestRegistryConsistencyProperty(t *testing.T) {
	f := testkeeper.Setup(t)
	indexInvariant := keeper.RegistryIndexInvariant(*f.Committee)
	subsetInvariant := keeper.CommitteeSubsetInvariant(*f.Committee)

	var members []string
	rapid.Check(t, func(rt *rapid.T) {
		if len(members) == 0 || rapid.Bool().Draw(rt, "register") {
			addr := testkeeper.TestAddr()
			f.Collateral.Allow(addr)
			require.NoError(rt, f.Committee.RegisterValidator(f.Ctx, &types.MsgRegisterValidator{Candidate: addr}))
			members = append(members, addr)
		} else {
			i := rapid.IntRange(0, len(members)-1).Draw(rt, "victim")
			require.NoError(rt, f.Committee.DeregisterValidator(f.Ctx, &types.MsgDeregisterValidator{Candidate: members[i]}))
			members = append(members[:i], members[i+1:]...)
		}

		registry := f.Committee.GetRegistry(f.Ctx)
		require.Len(rt, registry.Addresses, len(members))
		for _, addr := range members {
			require.True(rt, f.Committee.IsRegistered(f.Ctx, addr))
		}

		msg, broken := indexInvariant(f.Ctx)
		require.False(rt, broken, msg)
		msg, broken = subsetInvariant(f.Ctx)
		require.False(rt, broken, msg)
	})
}
