package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/attest-chain/attest/x/rewards/types"
)

// CurrentEra returns the zero-based emission era for the current block
// time.
func (k Keeper) CurrentEra(ctx context.Context) uint64 {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	state := k.GetEmissionState(ctx)
	params := k.GetParams(ctx)

	elapsed := sdkCtx.BlockTime().Unix() - state.DeployedAt
	if elapsed <= 0 {
		return 0
	}
	return uint64(elapsed / params.EraSeconds)
}

// EmissionRate returns the per-second emission rate for the current era.
// The rate decays geometrically per era and is floored at the tail
// constant, so it is monotonically non-increasing over time.
func (k Keeper) EmissionRate(ctx context.Context) math.LegacyDec {
	return emissionRateForEra(k.GetParams(ctx), k.CurrentEra(ctx))
}

func emissionRateForEra(params types.Params, era uint64) math.LegacyDec {
	rate := params.BaseEmissionRate
	num := math.LegacyNewDec(int64(params.DecayNumerator))
	den := math.LegacyNewDec(int64(params.DecayDenominator))

	for i := uint64(0); i < era; i++ {
		rate = rate.Mul(num).Quo(den)
		if rate.LTE(params.TailEmissionRate) {
			return params.TailEmissionRate
		}
	}

	if rate.LT(params.TailEmissionRate) {
		return params.TailEmissionRate
	}
	return rate
}

// CurrentEmission returns the amount of the primary asset emitted per
// distribution: rate(era) * intervalSeconds, truncated. Scaling by the
// interval is what keeps the annualized emission invariant under
// interval changes.
func (k Keeper) CurrentEmission(ctx context.Context) math.Int {
	state := k.GetEmissionState(ctx)
	rate := k.EmissionRate(ctx)
	return rate.MulInt64(state.IntervalSeconds).TruncateInt()
}

// GetInterval returns the current distribution interval in seconds.
func (k Keeper) GetInterval(ctx context.Context) int64 {
	return k.GetEmissionState(ctx).IntervalSeconds
}

// SetInterval adjusts the distribution interval within the parameter
// bounds. Governance-only. The new interval is propagated to the round
// state machine so proposal spacing stays synchronized.
func (k Keeper) SetInterval(ctx context.Context, msg *types.MsgSetInterval) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	if msg.Authority != k.authority {
		return types.ErrUnauthorized.Wrapf("expected %s, got %s", k.authority, msg.Authority)
	}

	params := k.GetParams(ctx)
	if msg.IntervalSeconds < params.MinIntervalSeconds || msg.IntervalSeconds > params.MaxIntervalSeconds {
		return types.ErrInvalidInterval.Wrapf("interval %d outside bounds [%d, %d]",
			msg.IntervalSeconds, params.MinIntervalSeconds, params.MaxIntervalSeconds)
	}

	state := k.GetEmissionState(ctx)
	state.IntervalSeconds = msg.IntervalSeconds
	k.setEmissionState(ctx, state)

	if k.committeeKeeper != nil {
		if err := k.committeeKeeper.SetUpdateInterval(ctx, msg.IntervalSeconds); err != nil {
			return err
		}
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeIntervalUpdated,
			sdk.NewAttribute(types.AttributeKeyInterval, fmt.Sprintf("%d", msg.IntervalSeconds)),
		),
	)

	return nil
}
