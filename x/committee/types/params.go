package types

import (
	"fmt"
)

// Default parameter values
const (
	DefaultUpdateInterval           = int64(86400) // 1 day, kept in sync with x/rewards
	DefaultApprovalThresholdPercent = uint64(51)
	DefaultActivityWindowRounds     = uint64(3)
)

// Params defines the committee module parameters
type Params struct {
	// UpdateInterval is the minimum spacing between proposal executions,
	// in seconds. A round is expired after twice this interval.
	UpdateInterval int64 `json:"update_interval"`

	// ApprovalThresholdPercent is the fraction of the committee whose
	// votes a proposal needs before it can be executed.
	ApprovalThresholdPercent uint64 `json:"approval_threshold_percent"`

	// ActivityWindowRounds is how many recent rounds count as "active"
	// when committee selection favors available validators.
	ActivityWindowRounds uint64 `json:"activity_window_rounds"`
}

// DefaultParams returns a default set of parameters
func DefaultParams() Params {
	return Params{
		UpdateInterval:           DefaultUpdateInterval,
		ApprovalThresholdPercent: DefaultApprovalThresholdPercent,
		ActivityWindowRounds:     DefaultActivityWindowRounds,
	}
}

// Validate validates the set of params
func (p Params) Validate() error {
	if p.UpdateInterval <= 0 {
		return fmt.Errorf("update interval must be positive: %d", p.UpdateInterval)
	}
	if p.ApprovalThresholdPercent == 0 || p.ApprovalThresholdPercent > 100 {
		return fmt.Errorf("approval threshold must be in (0, 100]: %d", p.ApprovalThresholdPercent)
	}
	return nil
}

// CommitteeSize returns the target committee size for a registry of the
// given size. The curve favors small committees for small registries.
func CommitteeSize(registrySize int) int {
	switch {
	case registrySize < 2:
		return 1
	case registrySize < 5:
		return 2
	case registrySize < 10:
		return 3
	default:
		return 5
	}
}

// RequiredVotes returns ceil(committeeSize * thresholdPercent / 100).
func RequiredVotes(committeeSize int, thresholdPercent uint64) uint64 {
	if committeeSize <= 0 {
		return 1
	}
	return (uint64(committeeSize)*thresholdPercent + 99) / 100
}
