package types

// Event types for the committee module
const (
	EventTypeValidatorRegistered   = "validator_registered"
	EventTypeValidatorDeregistered = "validator_deregistered"
	EventTypeCommitteeSelected     = "committee_selected"
	EventTypeProposalCreated       = "proposal_created"
	EventTypeProposalVoted         = "proposal_voted"
	EventTypeProposalExecuted      = "proposal_executed"
	EventTypeRoundAdvanced         = "round_advanced"
	EventTypeRoundReset            = "round_reset"
	EventTypeValidatorRemoved      = "validator_removed"

	AttributeKeyValidator     = "validator"
	AttributeKeyCreator       = "creator"
	AttributeKeyVoter         = "voter"
	AttributeKeyProposalID    = "proposal_id"
	AttributeKeyRound         = "round"
	AttributeKeyCommitteeSize = "committee_size"
	AttributeKeyRegistrySize  = "registry_size"
	AttributeKeyVotes         = "votes"
	AttributeKeyRequiredVotes = "required_votes"
	AttributeKeyApprovedCount = "approved_count"
	AttributeKeyRemovedCount  = "removed_count"
)
