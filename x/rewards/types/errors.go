package types

import (
	sdkerrors "cosmossdk.io/errors"
)

// Rewards module sentinel errors
var (
	// Timing errors
	ErrTooEarly = sdkerrors.Register(ModuleName, 2, "distribution interval has not elapsed")

	// State errors
	ErrAlreadyClaimed       = sdkerrors.Register(ModuleName, 3, "distribution already claimed by this claimant")
	ErrTooOld               = sdkerrors.Register(ModuleName, 4, "distribution is outside the retention window")
	ErrDistributionNotFound = sdkerrors.Register(ModuleName, 5, "distribution does not exist")

	// Integrity errors
	ErrInvalidProof = sdkerrors.Register(ModuleName, 6, "merkle proof does not verify against the stored root")
	ErrInvalidRoot  = sdkerrors.Register(ModuleName, 7, "invalid merkle root")

	// Authorization errors
	ErrUnauthorized = sdkerrors.Register(ModuleName, 8, "caller is not the module authority")

	// Parameter errors
	ErrInvalidParams   = sdkerrors.Register(ModuleName, 9, "invalid module parameters")
	ErrInvalidInterval = sdkerrors.Register(ModuleName, 10, "interval outside allowed bounds")

	// Claim errors
	ErrEmptyBatch      = sdkerrors.Register(ModuleName, 11, "claim batch is empty")
	ErrInvalidCapacity = sdkerrors.Register(ModuleName, 12, "claimed capacity exceeds distribution total")
)
