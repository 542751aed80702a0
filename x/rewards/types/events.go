package types

// Event types for the rewards module
const (
	EventTypeDistributionCreated = "distribution_created"
	EventTypeDistributionEvicted = "distribution_evicted"
	EventTypeRewardClaimed       = "reward_claimed"
	EventTypeIntervalUpdated     = "interval_updated"
	EventTypeDaoSharePaid        = "dao_share_paid"
	EventTypeValidatorSharePaid  = "validator_share_paid"

	AttributeKeyDistributionID = "distribution_id"
	AttributeKeyMerkleRoot     = "merkle_root"
	AttributeKeyTotalCapacity  = "total_capacity"
	AttributeKeyWorkerPrimary  = "worker_primary"
	AttributeKeyWorkerSecondary = "worker_secondary"
	AttributeKeyClaimant       = "claimant"
	AttributeKeyCapacity       = "capacity"
	AttributeKeyAmount         = "amount"
	AttributeKeyRecipient      = "recipient"
	AttributeKeyInterval       = "interval"
	AttributeKeyEra            = "era"
	AttributeKeyEvictedID      = "evicted_id"
)
