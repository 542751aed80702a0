package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MsgSetInterval adjusts the distribution interval. Only the module
// authority (governance) may submit it.
type MsgSetInterval struct {
	Authority       string `json:"authority"`
	IntervalSeconds int64  `json:"interval_seconds"`
}

// ValidateBasic performs stateless validation
func (msg *MsgSetInterval) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return ErrUnauthorized.Wrapf("invalid authority address: %s", err)
	}
	if msg.IntervalSeconds <= 0 {
		return ErrInvalidInterval.Wrapf("interval must be positive: %d", msg.IntervalSeconds)
	}
	return nil
}

// MsgClaim redeems one distribution entry with a Merkle inclusion proof.
type MsgClaim struct {
	Claimant       string   `json:"claimant"`
	DistributionId uint64   `json:"distribution_id"`
	Capacity       uint64   `json:"capacity"`
	Proof          [][]byte `json:"proof"`
}

// ValidateBasic performs stateless validation
func (msg *MsgClaim) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Claimant); err != nil {
		return ErrInvalidProof.Wrapf("invalid claimant address: %s", err)
	}
	if msg.DistributionId == 0 {
		return ErrDistributionNotFound.Wrap("distribution id cannot be zero")
	}
	if msg.Capacity == 0 {
		return ErrInvalidCapacity.Wrap("capacity must be positive")
	}
	return nil
}

// MsgClaimBatch redeems several distribution entries for one claimant in
// a single call, with one aggregated transfer per asset.
type MsgClaimBatch struct {
	Claimant string      `json:"claimant"`
	Items    []ClaimItem `json:"items"`
}

// ValidateBasic performs stateless validation
func (msg *MsgClaimBatch) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Claimant); err != nil {
		return ErrInvalidProof.Wrapf("invalid claimant address: %s", err)
	}
	if len(msg.Items) == 0 {
		return ErrEmptyBatch
	}
	for i, item := range msg.Items {
		if item.DistributionId == 0 {
			return ErrDistributionNotFound.Wrapf("item %d: distribution id cannot be zero", i)
		}
		if item.Capacity == 0 {
			return ErrInvalidCapacity.Wrapf("item %d: capacity must be positive", i)
		}
	}
	return nil
}
