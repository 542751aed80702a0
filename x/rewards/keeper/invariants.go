package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/attest-chain/attest/x/rewards/types"
)

// RegisterInvariants registers all rewards module invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "retention-window", RetentionWindowInvariant(k))
	ir.RegisterRoute(types.ModuleName, "distribution-shares", DistributionSharesInvariant(k))
}

// RetentionWindowInvariant checks that no more than RetentionWindow
// distributions are retained and that every retained id is within the
// window of the latest.
func RetentionWindowInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		params := k.GetParams(ctx)
		latest := k.GetLatestDistributionID(ctx)
		dists := k.GetAllDistributions(ctx)

		if uint64(len(dists)) > params.RetentionWindow {
			return sdk.FormatInvariant(types.ModuleName, "retention-window",
				fmt.Sprintf("%d distributions retained, window is %d", len(dists), params.RetentionWindow)), true
		}
		for _, d := range dists {
			if d.Id > latest || (latest > params.RetentionWindow && d.Id <= latest-params.RetentionWindow) {
				return sdk.FormatInvariant(types.ModuleName, "retention-window",
					fmt.Sprintf("distribution %d outside window (latest %d)", d.Id, latest)), true
			}
		}
		return sdk.FormatInvariant(types.ModuleName, "retention-window", "all distributions within window"), false
	}
}

// DistributionSharesInvariant checks that stored worker shares are
// well-formed.
func DistributionSharesInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		for _, d := range k.GetAllDistributions(ctx) {
			if d.WorkerPrimary.IsNil() || d.WorkerPrimary.IsNegative() ||
				d.WorkerSecondary.IsNil() || d.WorkerSecondary.IsNegative() {
				return sdk.FormatInvariant(types.ModuleName, "distribution-shares",
					fmt.Sprintf("distribution %d has malformed worker shares", d.Id)), true
			}
			if d.TotalCapacity == 0 {
				return sdk.FormatInvariant(types.ModuleName, "distribution-shares",
					fmt.Sprintf("distribution %d has zero capacity", d.Id)), true
			}
		}
		return sdk.FormatInvariant(types.ModuleName, "distribution-shares", "all distributions well-formed"), false
	}
}
