package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/attest-chain/attest/x/rewards/types"
)

// IsClaimed reports whether the claimant has already consumed the given
// distribution.
func (k Keeper) IsClaimed(ctx context.Context, id uint64, claimant string) bool {
	return k.getStore(ctx).Has(types.ClaimKey(id, claimant))
}

// Claim redeems a single distribution entry.
func (k Keeper) Claim(ctx context.Context, msg *types.MsgClaim) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	return k.processClaims(ctx, msg.Claimant, []types.ClaimItem{{
		DistributionId: msg.DistributionId,
		Capacity:       msg.Capacity,
		Proof:          msg.Proof,
	}})
}

// ClaimBatch redeems several distribution entries atomically: every item
// is validated before any claim flag is written, and the payout is one
// aggregated transfer per asset.
func (k Keeper) ClaimBatch(ctx context.Context, msg *types.MsgClaimBatch) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	return k.processClaims(ctx, msg.Claimant, msg.Items)
}

func (k Keeper) processClaims(ctx context.Context, claimant string, items []types.ClaimItem) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	params := k.GetParams(ctx)
	latest := k.GetLatestDistributionID(ctx)
	window := params.RetentionWindow

	recipient, err := sdk.AccAddressFromBech32(claimant)
	if err != nil {
		return types.ErrInvalidProof.Wrapf("invalid claimant address: %s", err)
	}

	totalPrimary := math.ZeroInt()
	totalSecondary := math.ZeroInt()
	seen := make(map[uint64]struct{}, len(items))

	// Validate every item up front; a single bad item fails the batch
	// before any state is touched.
	for i, item := range items {
		id := item.DistributionId

		if latest > window && id <= latest-window {
			return types.ErrTooOld.Wrapf("item %d: distribution %d is older than window %d (latest %d)",
				i, id, window, latest)
		}

		dist, found := k.GetDistribution(ctx, id)
		if !found {
			return types.ErrDistributionNotFound.Wrapf("item %d: distribution %d", i, id)
		}

		if _, dup := seen[id]; dup {
			return types.ErrAlreadyClaimed.Wrapf("item %d: distribution %d appears twice in batch", i, id)
		}
		if k.IsClaimed(ctx, id, claimant) {
			return types.ErrAlreadyClaimed.Wrapf("item %d: distribution %d", i, id)
		}

		leaf := types.ClaimLeaf(claimant, item.Capacity, id)
		if !types.VerifyMerkleProof(dist.MerkleRoot, leaf, item.Proof) {
			return types.ErrInvalidProof.Wrapf("item %d: distribution %d", i, id)
		}

		capacity := math.NewIntFromUint64(item.Capacity)
		totalCap := math.NewIntFromUint64(dist.TotalCapacity)
		totalPrimary = totalPrimary.Add(dist.WorkerPrimary.Mul(capacity).Quo(totalCap))
		totalSecondary = totalSecondary.Add(dist.WorkerSecondary.Mul(capacity).Quo(totalCap))
		seen[id] = struct{}{}
	}

	// Mark everything consumed before paying out, so a re-entrant call
	// observes the claims as spent.
	store := k.getStore(ctx)
	for _, item := range items {
		store.Set(types.ClaimKey(item.DistributionId, claimant), []byte{1})
	}

	payout := sdk.NewCoins(
		sdk.NewCoin(params.PrimaryDenom, totalPrimary),
		sdk.NewCoin(params.SecondaryDenom, totalSecondary),
	)
	if !payout.IsZero() {
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, recipient, payout); err != nil {
			return err
		}
	}

	metrics().ClaimsProcessed.Add(float64(len(items)))

	for _, item := range items {
		sdkCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeRewardClaimed,
				sdk.NewAttribute(types.AttributeKeyDistributionID, fmt.Sprintf("%d", item.DistributionId)),
				sdk.NewAttribute(types.AttributeKeyClaimant, claimant),
				sdk.NewAttribute(types.AttributeKeyCapacity, fmt.Sprintf("%d", item.Capacity)),
			),
		)
	}

	return nil
}
