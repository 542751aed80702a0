package types

import (
	"cosmossdk.io/math"
)

// Distribution is one claimable reward batch. WorkerPrimary and
// WorkerSecondary are the two components of the worker reward pool; a
// claimant with capacity c receives floor(component * c / TotalCapacity)
// of each. Only the most recent RetentionWindow distributions stay
// claimable; evicted ones have their record deleted outright.
type Distribution struct {
	Id              uint64   `json:"id"`
	MerkleRoot      []byte   `json:"merkle_root"`
	WorkerPrimary   math.Int `json:"worker_primary"`
	WorkerSecondary math.Int `json:"worker_secondary"`
	TotalCapacity   uint64   `json:"total_capacity"`
	CreatedAt       int64    `json:"created_at"`
}

// EmissionState tracks the decaying emission schedule. DeployedAt is set
// once at genesis and never changes; IntervalSeconds is adjustable by
// governance within the parameter bounds.
type EmissionState struct {
	DeployedAt         int64 `json:"deployed_at"`
	IntervalSeconds    int64 `json:"interval_seconds"`
	LastDistributionAt int64 `json:"last_distribution_at"`
}

// ClaimItem is one entry of a batched claim.
type ClaimItem struct {
	DistributionId uint64   `json:"distribution_id"`
	Capacity       uint64   `json:"capacity"`
	Proof          [][]byte `json:"proof"`
}
