package keeper_test

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	testkeeper "github.com/attest-chain/attest/testutil/keeper"
	"github.com/attest-chain/attest/x/rewards/types"
)

func eraTime(era int64) time.Time {
	return testkeeper.GenesisTime.Add(time.Duration(era*types.DefaultEraSeconds) * time.Second)
}

func TestCurrentEra(t *testing.T) {
	f := testkeeper.Setup(t)

	require.EqualValues(t, 0, f.Rewards.CurrentEra(f.Ctx))
	require.EqualValues(t, 0, f.Rewards.CurrentEra(f.AtTime(eraTime(1).Add(-time.Second))))
	require.EqualValues(t, 1, f.Rewards.CurrentEra(f.AtTime(eraTime(1))))
	require.EqualValues(t, 4, f.Rewards.CurrentEra(f.AtTime(eraTime(4).Add(time.Hour))))
}

func TestEmissionRateDecay(t *testing.T) {
	f := testkeeper.Setup(t)

	tests := []struct {
		era  int64
		want math.LegacyDec
	}{
		{0, math.LegacyNewDec(10)},
		{1, math.LegacyNewDec(6)},
		{2, math.LegacyNewDecWithPrec(36, 1)},   // 3.6
		{3, math.LegacyNewDecWithPrec(216, 2)},  // 2.16
		{6, math.LegacyNewDecWithPrec(5, 1)},    // 0.46656 floors at the tail
		{50, math.LegacyNewDecWithPrec(5, 1)},   // stays at the tail forever
	}

	for _, tc := range tests {
		got := f.Rewards.EmissionRate(f.AtTime(eraTime(tc.era)))
		require.True(t, tc.want.Equal(got), "era %d: want %s, got %s", tc.era, tc.want, got)
	}
}

func TestEmissionRateMonotone(t *testing.T) {
	f := testkeeper.Setup(t)

	prev := f.Rewards.EmissionRate(f.Ctx)
	for era := int64(1); era <= 12; era++ {
		rate := f.Rewards.EmissionRate(f.AtTime(eraTime(era)))
		require.True(t, rate.LTE(prev), "rate increased at era %d: %s > %s", era, rate, prev)
		prev = rate
	}
}

func TestCurrentEmissionScalesWithInterval(t *testing.T) {
	f := testkeeper.Setup(t)

	// rate 10/sec over a day
	require.Equal(t, math.NewInt(864_000), f.Rewards.CurrentEmission(f.Ctx))

	err := f.Rewards.SetInterval(f.Ctx, &types.MsgSetInterval{
		Authority:       f.Authority,
		IntervalSeconds: 3600,
	})
	require.NoError(t, err)

	// per-second emission is unchanged, so a day of hourly
	// distributions emits the same total as one daily distribution
	require.Equal(t, math.NewInt(36_000), f.Rewards.CurrentEmission(f.Ctx))
}

func TestSetInterval(t *testing.T) {
	f := testkeeper.Setup(t)

	t.Run("rejects non-authority", func(t *testing.T) {
		err := f.Rewards.SetInterval(f.Ctx, &types.MsgSetInterval{
			Authority:       testkeeper.TestAddr(),
			IntervalSeconds: 3600,
		})
		require.ErrorIs(t, err, types.ErrUnauthorized)
	})

	t.Run("rejects out-of-bounds interval", func(t *testing.T) {
		err := f.Rewards.SetInterval(f.Ctx, &types.MsgSetInterval{
			Authority:       f.Authority,
			IntervalSeconds: types.DefaultMaxIntervalSeconds + 1,
		})
		require.ErrorIs(t, err, types.ErrInvalidInterval)

		err = f.Rewards.SetInterval(f.Ctx, &types.MsgSetInterval{
			Authority:       f.Authority,
			IntervalSeconds: types.DefaultMinIntervalSeconds - 1,
		})
		require.ErrorIs(t, err, types.ErrInvalidInterval)
	})

	t.Run("updates state and round spacing", func(t *testing.T) {
		err := f.Rewards.SetInterval(f.Ctx, &types.MsgSetInterval{
			Authority:       f.Authority,
			IntervalSeconds: 7200,
		})
		require.NoError(t, err)

		require.EqualValues(t, 7200, f.Rewards.GetInterval(f.Ctx))
		require.EqualValues(t, 7200, f.Committee.GetParams(f.Ctx).UpdateInterval)
		require.EqualValues(t, 7200, f.Committee.GetRound(f.Ctx).UpdateInterval)
	})
}
