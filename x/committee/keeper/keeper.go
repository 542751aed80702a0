package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/attest-chain/attest/x/committee/types"
)

// Keeper maintains the state of the committee module: the validator
// registry, the current round and committee, open proposals and votes.
type Keeper struct {
	storeKey         storetypes.StoreKey
	collateralKeeper types.CollateralKeeper
	rewardsKeeper    types.RewardsKeeper
	authority        string // module authority (usually governance module account)
}

// NewKeeper creates a new committee Keeper instance
func NewKeeper(
	key storetypes.StoreKey,
	collateralKeeper types.CollateralKeeper,
	rewardsKeeper types.RewardsKeeper,
	authority string,
) *Keeper {
	return &Keeper{
		storeKey:         key,
		collateralKeeper: collateralKeeper,
		rewardsKeeper:    rewardsKeeper,
		authority:        authority,
	}
}

// GetAuthority returns the module's authority (governance account)
func (k Keeper) GetAuthority() string {
	return k.authority
}

// Logger returns a module-specific logger
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// getStore returns the KVStore for the committee module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// GetParams gets all parameters from the store
func (k Keeper) GetParams(ctx context.Context) types.Params {
	store := k.getStore(ctx)
	bz := store.Get(types.ParamsKey)
	if bz == nil {
		return types.DefaultParams()
	}

	var params types.Params
	if err := json.Unmarshal(bz, &params); err != nil {
		return types.DefaultParams()
	}
	return params
}

// SetParams sets the module parameters
func (k Keeper) SetParams(ctx context.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return types.ErrInvalidParams.Wrap(err.Error())
	}

	bz, err := json.Marshal(params)
	if err != nil {
		return err
	}
	k.getStore(ctx).Set(types.ParamsKey, bz)
	return nil
}

// GetRound returns the current round state
func (k Keeper) GetRound(ctx context.Context) types.Round {
	store := k.getStore(ctx)
	bz := store.Get(types.RoundKey)
	if bz == nil {
		return types.Round{Number: 1, UpdateInterval: types.DefaultUpdateInterval}
	}

	var round types.Round
	if err := json.Unmarshal(bz, &round); err != nil {
		return types.Round{Number: 1, UpdateInterval: types.DefaultUpdateInterval}
	}
	return round
}

func (k Keeper) setRound(ctx context.Context, round types.Round) {
	bz, err := json.Marshal(round)
	if err != nil {
		panic(fmt.Sprintf("failed to marshal round: %s", err))
	}
	k.getStore(ctx).Set(types.RoundKey, bz)
}

// GetCommittee returns the committee selected for the current round
func (k Keeper) GetCommittee(ctx context.Context) []string {
	return k.GetRound(ctx).Committee
}

// IsCommitteeMember reports whether addr is in the current committee
func (k Keeper) IsCommitteeMember(ctx context.Context, addr string) bool {
	for _, member := range k.GetRound(ctx).Committee {
		if member == addr {
			return true
		}
	}
	return false
}

// SetUpdateInterval synchronizes the proposal spacing with the rewards
// module's distribution interval. Called by x/rewards on SetInterval.
func (k Keeper) SetUpdateInterval(ctx context.Context, interval int64) error {
	if interval <= 0 {
		return types.ErrInvalidParams.Wrapf("update interval must be positive: %d", interval)
	}

	params := k.GetParams(ctx)
	params.UpdateInterval = interval
	if err := k.SetParams(ctx, params); err != nil {
		return err
	}

	round := k.GetRound(ctx)
	round.UpdateInterval = interval
	k.setRound(ctx, round)
	return nil
}
