package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/attest-chain/attest/x/rewards/types"
)

// Keeper maintains the state of the rewards module: the emission
// schedule, the distribution ledger and per-claimant claim flags.
type Keeper struct {
	storeKey        storetypes.StoreKey
	bankKeeper      types.BankKeeper
	committeeKeeper types.CommitteeKeeper
	authority       string // module authority (usually governance module account)
}

// NewKeeper creates a new rewards Keeper instance. The committee keeper
// is attached afterwards via SetCommitteeKeeper because the two modules
// reference each other.
func NewKeeper(
	key storetypes.StoreKey,
	bankKeeper types.BankKeeper,
	authority string,
) *Keeper {
	return &Keeper{
		storeKey:   key,
		bankKeeper: bankKeeper,
		authority:  authority,
	}
}

// SetCommitteeKeeper wires the round state machine for interval
// propagation. Must be called once during app construction.
func (k *Keeper) SetCommitteeKeeper(ck types.CommitteeKeeper) {
	if k.committeeKeeper != nil {
		panic("committee keeper already set")
	}
	k.committeeKeeper = ck
}

// GetAuthority returns the module's authority (governance account)
func (k Keeper) GetAuthority() string {
	return k.authority
}

// Logger returns a module-specific logger
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// getStore returns the KVStore for the rewards module
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

// GetEmissionState returns the emission schedule state
func (k Keeper) GetEmissionState(ctx context.Context) types.EmissionState {
	store := k.getStore(ctx)
	bz := store.Get(types.EmissionStateKey)
	if bz == nil {
		return types.EmissionState{IntervalSeconds: types.DefaultIntervalSeconds}
	}

	var state types.EmissionState
	if err := json.Unmarshal(bz, &state); err != nil {
		return types.EmissionState{IntervalSeconds: types.DefaultIntervalSeconds}
	}
	return state
}

func (k Keeper) setEmissionState(ctx context.Context, state types.EmissionState) {
	bz, err := json.Marshal(state)
	if err != nil {
		panic(fmt.Sprintf("failed to marshal emission state: %s", err))
	}
	k.getStore(ctx).Set(types.EmissionStateKey, bz)
}
