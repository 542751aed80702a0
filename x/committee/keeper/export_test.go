package keeper

import (
	"context"

	"github.com/attest-chain/attest/x/committee/types"
)

// Test-only accessors for state normally mutated through operations.

func (k Keeper) SetValidatorForTest(ctx context.Context, info types.ValidatorInfo) {
	k.setValidator(ctx, info)
}

func (k Keeper) SetRoundForTest(ctx context.Context, round types.Round) {
	k.setRound(ctx, round)
}
