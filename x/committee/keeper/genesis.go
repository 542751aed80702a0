package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/attest-chain/attest/x/committee/types"
)

// InitGenesis initializes the module's state from a provided genesis
// state.
func (k Keeper) InitGenesis(ctx sdk.Context, genState types.GenesisState) {
	if err := k.SetParams(ctx, genState.Params); err != nil {
		panic(fmt.Sprintf("failed to set committee params: %s", err))
	}

	registry := types.Registry{Addresses: make([]string, 0, len(genState.Validators))}
	for i, v := range genState.Validators {
		v.Index = uint64(i)
		registry.Addresses = append(registry.Addresses, v.Address)
		k.setValidator(ctx, v)
	}
	k.setRegistry(ctx, registry)

	round := genState.Round
	if round.Number == 0 {
		round.Number = 1
	}
	if round.UpdateInterval == 0 {
		round.UpdateInterval = genState.Params.UpdateInterval
	}
	k.setRound(ctx, round)

	k.Logger(ctx).Info("committee module genesis initialized",
		"validators", len(genState.Validators),
		"round", round.Number,
	)
}

// ExportGenesis returns the module's exported genesis state.
func (k Keeper) ExportGenesis(ctx sdk.Context) *types.GenesisState {
	registry := k.GetRegistry(ctx)
	validators := make([]types.ValidatorInfo, 0, len(registry.Addresses))
	for _, addr := range registry.Addresses {
		if info, found := k.GetValidator(ctx, addr); found {
			validators = append(validators, info)
		}
	}

	return &types.GenesisState{
		Params:     k.GetParams(ctx),
		Validators: validators,
		Round:      k.GetRound(ctx),
	}
}
