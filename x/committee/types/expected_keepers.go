package types

import (
	"context"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// CollateralKeeper is the escrow collaborator that confirms a candidate
// has locked the collateral required for registry membership.
type CollateralKeeper interface {
	IsEligible(ctx context.Context, candidate sdk.AccAddress) bool
}

// RewardsKeeper is the distribution ledger the state machine hands an
// executed proposal to.
type RewardsKeeper interface {
	// NextDistributionID returns the id the next distribution will be
	// stored under; it doubles as the Merkle leaf nonce.
	NextDistributionID(ctx context.Context) uint64

	// CreateDistribution mints the current emission, pays the dao and
	// validator shares and stores the worker batch under the given root.
	CreateDistribution(
		ctx context.Context,
		root []byte,
		totalCapacity uint64,
		approvedValidators []string,
		extraPrimary, extraSecondary sdkmath.Int,
		dustRecipient string,
	) (uint64, error)
}
