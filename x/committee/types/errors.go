package types

import (
	sdkerrors "cosmossdk.io/errors"
)

// Committee module sentinel errors
var (
	// Eligibility errors
	ErrNotEligible            = sdkerrors.Register(ModuleName, 2, "candidate has not posted the required collateral")
	ErrAlreadyRegistered      = sdkerrors.Register(ModuleName, 3, "validator already registered")
	ErrNotRegistered          = sdkerrors.Register(ModuleName, 4, "validator not registered")
	ErrInsufficientValidators = sdkerrors.Register(ModuleName, 5, "not enough validators to form a committee")

	// Authorization errors
	ErrNotValidator = sdkerrors.Register(ModuleName, 6, "caller is not an eligible validator for this action")
	ErrNotCreator   = sdkerrors.Register(ModuleName, 7, "caller is not the proposal creator")

	// Timing errors
	ErrTooEarly = sdkerrors.Register(ModuleName, 8, "minimum proposal spacing has not elapsed")

	// State errors
	ErrAlreadySubmitted  = sdkerrors.Register(ModuleName, 9, "creator already has an open proposal this round")
	ErrAlreadyVoted      = sdkerrors.Register(ModuleName, 10, "validator already voted this round")
	ErrInvalidProposalID = sdkerrors.Register(ModuleName, 11, "proposal does not exist")
	ErrInsufficientVotes = sdkerrors.Register(ModuleName, 12, "proposal has not reached the required vote count")

	// Integrity errors
	ErrDataMismatch = sdkerrors.Register(ModuleName, 13, "revealed payload does not match the stored commitment")

	// Parameter errors
	ErrInvalidParams = sdkerrors.Register(ModuleName, 14, "invalid module parameters")
	ErrUnauthorized  = sdkerrors.Register(ModuleName, 15, "caller is not the module authority")
)
