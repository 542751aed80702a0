package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MsgRegisterValidator requests registry membership for a candidate that
// has posted collateral with the escrow collaborator.
type MsgRegisterValidator struct {
	Candidate string `json:"candidate"`
}

// ValidateBasic performs stateless validation
func (msg *MsgRegisterValidator) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Candidate); err != nil {
		return ErrNotValidator.Wrapf("invalid candidate address: %s", err)
	}
	return nil
}

// MsgDeregisterValidator removes a validator from the registry.
type MsgDeregisterValidator struct {
	Candidate string `json:"candidate"`
}

// ValidateBasic performs stateless validation
func (msg *MsgDeregisterValidator) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Candidate); err != nil {
		return ErrNotValidator.Wrapf("invalid candidate address: %s", err)
	}
	return nil
}

// MsgCreateProposal submits a hash commitment for the current round.
type MsgCreateProposal struct {
	Creator string `json:"creator"`
	Hash    []byte `json:"hash"`
}

// ValidateBasic performs stateless validation
func (msg *MsgCreateProposal) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return ErrNotValidator.Wrapf("invalid creator address: %s", err)
	}
	if len(msg.Hash) != CommitmentHashSize {
		return ErrDataMismatch.Wrapf("commitment hash must be %d bytes, got %d", CommitmentHashSize, len(msg.Hash))
	}
	return nil
}

// MsgVote records a validator's vote for an open proposal.
type MsgVote struct {
	Voter      string `json:"voter"`
	ProposalId uint64 `json:"proposal_id"`
}

// ValidateBasic performs stateless validation
func (msg *MsgVote) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Voter); err != nil {
		return ErrNotValidator.Wrapf("invalid voter address: %s", err)
	}
	if msg.ProposalId == 0 {
		return ErrInvalidProposalID.Wrap("proposal id cannot be zero")
	}
	return nil
}

// MsgExecute reveals the full payload behind a commitment and executes
// the proposal once it has enough votes.
type MsgExecute struct {
	Executor   string          `json:"executor"`
	ProposalId uint64          `json:"proposal_id"`
	Payload    ProposalPayload `json:"payload"`
}

// ValidateBasic performs stateless validation
func (msg *MsgExecute) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Executor); err != nil {
		return ErrNotValidator.Wrapf("invalid executor address: %s", err)
	}
	if msg.ProposalId == 0 {
		return ErrInvalidProposalID.Wrap("proposal id cannot be zero")
	}
	return msg.Payload.Validate()
}
