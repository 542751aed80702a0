package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/attest-chain/attest/x/rewards/types"
)

// InitGenesis initializes the module's state from a provided genesis
// state. A zero DeployedAt is stamped with the current block time, fixing
// the emission schedule's origin forever.
func (k Keeper) InitGenesis(ctx sdk.Context, genState types.GenesisState) {
	if err := k.SetParams(ctx, genState.Params); err != nil {
		panic(fmt.Sprintf("failed to set rewards params: %s", err))
	}

	state := genState.Emission
	if state.DeployedAt == 0 {
		state.DeployedAt = ctx.BlockTime().Unix()
	}
	k.setEmissionState(ctx, state)

	for _, dist := range genState.Distributions {
		k.setDistribution(ctx, dist)
	}
	if genState.LatestId > 0 {
		k.setLatestDistributionID(ctx, genState.LatestId)
	}

	k.Logger(ctx).Info("rewards module genesis initialized",
		"distributions", len(genState.Distributions),
		"interval", state.IntervalSeconds,
	)
}

// ExportGenesis returns the module's exported genesis state.
func (k Keeper) ExportGenesis(ctx sdk.Context) *types.GenesisState {
	return &types.GenesisState{
		Params:        k.GetParams(ctx),
		Emission:      k.GetEmissionState(ctx),
		Distributions: k.GetAllDistributions(ctx),
		LatestId:      k.GetLatestDistributionID(ctx),
	}
}
