package keeper_test

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	testkeeper "github.com/attest-chain/attest/testutil/keeper"
	"github.com/attest-chain/attest/x/rewards/types"
)

func balanceOf(t testing.TB, f *testkeeper.Fixture, ctx sdk.Context, addr, denom string) math.Int {
	t.Helper()
	acc, err := sdk.AccAddressFromBech32(addr)
	require.NoError(t, err)
	return f.Bank.GetBalance(ctx, acc, denom).Amount
}

// singleWorkerRoot commits a one-worker batch under the id the next
// distribution will take.
func singleWorkerRoot(t testing.TB, f *testkeeper.Fixture, ctx sdk.Context, worker string, capacity uint64) []byte {
	t.Helper()
	root, err := types.BuildClaimRoot([]string{worker}, []uint64{capacity}, f.Rewards.NextDistributionID(ctx))
	require.NoError(t, err)
	return root
}

func TestCreateDistributionSplitsPool(t *testing.T) {
	f := testkeeper.Setup(t)
	ctx := f.Ctx

	validators := []string{testkeeper.TestAddr(), testkeeper.TestAddr(), testkeeper.TestAddr()}
	worker := testkeeper.TestAddr()
	root := singleWorkerRoot(t, f, ctx, worker, 100)

	id, err := f.Rewards.CreateDistribution(ctx, root, 100, validators, math.ZeroInt(), math.ZeroInt(), validators[0])
	require.NoError(t, err)
	require.EqualValues(t, 1, id)

	// Minted emission: 10/sec over a day = 864000. 15% dao, 25%
	// validators, 60% worker pool.
	require.Equal(t, math.NewInt(129_600), balanceOf(t, f, ctx, f.Treasury.String(), types.DefaultPrimaryDenom))
	for _, v := range validators {
		require.Equal(t, math.NewInt(72_000), balanceOf(t, f, ctx, v, types.DefaultPrimaryDenom))
	}

	dist, found := f.Rewards.GetDistribution(ctx, id)
	require.True(t, found)
	require.Equal(t, math.NewInt(518_400), dist.WorkerPrimary)
	require.True(t, dist.WorkerSecondary.IsZero())
	require.EqualValues(t, 100, dist.TotalCapacity)
	require.Equal(t, root, dist.MerkleRoot)
}

func TestCreateDistributionDustGoesToRecipient(t *testing.T) {
	f := testkeeper.Setup(t)
	ctx := f.Ctx

	// 216000 does not divide by 7: per share 30857, dust 1.
	validators := make([]string, 7)
	for i := range validators {
		validators[i] = testkeeper.TestAddr()
	}
	executor := testkeeper.TestAddr()

	_, err := f.Rewards.CreateDistribution(ctx, nil, 0, validators, math.ZeroInt(), math.ZeroInt(), executor)
	require.NoError(t, err)

	total := math.ZeroInt()
	for _, v := range validators {
		bal := balanceOf(t, f, ctx, v, types.DefaultPrimaryDenom)
		require.Equal(t, math.NewInt(30_857), bal)
		total = total.Add(bal)
	}
	dust := balanceOf(t, f, ctx, executor, types.DefaultPrimaryDenom)
	require.Equal(t, math.NewInt(1), dust)
	require.Equal(t, math.NewInt(216_000), total.Add(dust))
}

func TestCreateDistributionRateLimit(t *testing.T) {
	f := testkeeper.Setup(t)
	worker := testkeeper.TestAddr()

	root := singleWorkerRoot(t, f, f.Ctx, worker, 50)
	_, err := f.Rewards.CreateDistribution(f.Ctx, root, 50, nil, math.ZeroInt(), math.ZeroInt(), "")
	require.NoError(t, err)

	_, err = f.Rewards.CreateDistribution(f.Ctx, root, 50, nil, math.ZeroInt(), math.ZeroInt(), "")
	require.ErrorIs(t, err, types.ErrTooEarly)

	later := f.AtTime(testkeeper.GenesisTime.Add(time.Duration(types.DefaultIntervalSeconds) * time.Second))
	root = singleWorkerRoot(t, f, later, worker, 50)
	id, err := f.Rewards.CreateDistribution(later, root, 50, nil, math.ZeroInt(), math.ZeroInt(), "")
	require.NoError(t, err)
	require.EqualValues(t, 2, id)
}

func TestCreateDistributionZeroCapacity(t *testing.T) {
	f := testkeeper.Setup(t)

	id, err := f.Rewards.CreateDistribution(f.Ctx, nil, 0, nil, math.ZeroInt(), math.ZeroInt(), "")
	require.NoError(t, err)
	require.Zero(t, id)
	require.Zero(t, f.Rewards.GetLatestDistributionID(f.Ctx))

	// The empty round still consumes the interval slot.
	_, err = f.Rewards.CreateDistribution(f.Ctx, nil, 0, nil, math.ZeroInt(), math.ZeroInt(), "")
	require.ErrorIs(t, err, types.ErrTooEarly)
}

func TestCreateDistributionRejectsBadRoot(t *testing.T) {
	f := testkeeper.Setup(t)

	_, err := f.Rewards.CreateDistribution(f.Ctx, []byte{0x01, 0x02}, 100, nil, math.ZeroInt(), math.ZeroInt(), "")
	require.ErrorIs(t, err, types.ErrInvalidRoot)
}

func TestCreateDistributionEviction(t *testing.T) {
	f := testkeeper.Setup(t)

	params := f.Rewards.GetParams(f.Ctx)
	params.RetentionWindow = 2
	require.NoError(t, f.Rewards.SetParams(f.Ctx, params))

	worker := testkeeper.TestAddr()
	interval := time.Duration(types.DefaultIntervalSeconds) * time.Second
	for i := 0; i < 3; i++ {
		ctx := f.AtTime(testkeeper.GenesisTime.Add(time.Duration(i) * interval))
		root := singleWorkerRoot(t, f, ctx, worker, 10)
		id, err := f.Rewards.CreateDistribution(ctx, root, 10, nil, math.ZeroInt(), math.ZeroInt(), "")
		require.NoError(t, err)
		require.EqualValues(t, i+1, id)
	}

	_, found := f.Rewards.GetDistribution(f.Ctx, 1)
	require.False(t, found, "distribution 1 should have been evicted")
	_, found = f.Rewards.GetDistribution(f.Ctx, 2)
	require.True(t, found)
	_, found = f.Rewards.GetDistribution(f.Ctx, 3)
	require.True(t, found)
}

func TestValidatorShareSplitProperty(t *testing.T) {
	f := testkeeper.Setup(t)

	// Only escrowed extras enter the pool, so the split is exact and
	// easy to account for.
	params := f.Rewards.GetParams(f.Ctx)
	params.BaseEmissionRate = math.LegacyZeroDec()
	params.TailEmissionRate = math.LegacyZeroDec()
	require.NoError(t, f.Rewards.SetParams(f.Ctx, params))

	cursor := testkeeper.GenesisTime
	interval := time.Duration(types.DefaultIntervalSeconds) * time.Second

	rapid.Check(t, func(rt *rapid.T) {
		pool := rapid.Int64Range(1, 1_000_000_000).Draw(rt, "pool")
		n := rapid.IntRange(1, 10).Draw(rt, "validators")

		validators := make([]string, n)
		for i := range validators {
			validators[i] = testkeeper.TestAddr()
		}
		executor := testkeeper.TestAddr()

		cursor = cursor.Add(interval)
		ctx := f.AtTime(cursor)
		f.FundModule(t, ctx, sdk.NewCoins(testkeeper.Coin(params.PrimaryDenom, pool)))

		treasuryBefore := balanceOf(t, f, ctx, f.Treasury.String(), params.PrimaryDenom)

		_, err := f.Rewards.CreateDistribution(ctx, nil, 0, validators, math.NewInt(pool), math.ZeroInt(), executor)
		require.NoError(rt, err)

		daoShare := math.NewInt(pool).MulRaw(int64(params.DaoSharePercent)).QuoRaw(100)
		validatorShare := math.NewInt(pool).MulRaw(int64(params.ValidatorSharePercent)).QuoRaw(100)

		treasuryDelta := balanceOf(t, f, ctx, f.Treasury.String(), params.PrimaryDenom).Sub(treasuryBefore)
		require.True(rt, daoShare.Equal(treasuryDelta), "dao share %s != treasury delta %s", daoShare, treasuryDelta)

		paid := balanceOf(t, f, ctx, executor, params.PrimaryDenom)
		for _, v := range validators {
			share := balanceOf(t, f, ctx, v, params.PrimaryDenom)
			require.True(rt, validatorShare.QuoRaw(int64(n)).Equal(share), "even share %s != balance %s", validatorShare.QuoRaw(int64(n)), share)
			paid = paid.Add(share)
		}
		require.True(rt, validatorShare.Equal(paid), "even shares plus dust must equal the validator share: %s != %s", validatorShare, paid)
	})
}
