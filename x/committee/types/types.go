package types

import (
	"fmt"
)

// ValidatorInfo is the per-validator registry record. Index is the
// validator's slot in the registry arena; it is updated when another
// validator is swap-removed into that slot.
type ValidatorInfo struct {
	Address         string `json:"address"`
	Index           uint64 `json:"index"`
	RegisteredAt    int64  `json:"registered_at"`
	LastActiveRound uint64 `json:"last_active_round"`
}

// Registry is the ordered arena of registered validator addresses.
// Removal swaps the last entry into the freed slot and truncates, so
// ordering is not preserved.
type Registry struct {
	Addresses []string `json:"addresses"`
}

// Round tracks the current proposal round and the selected committee.
type Round struct {
	Number            uint64   `json:"number"`
	LastExecutionTime int64    `json:"last_execution_time"`
	UpdateInterval    int64    `json:"update_interval"`
	Committee         []string `json:"committee"`
	Seed              []byte   `json:"seed"`
}

// Expired reports whether the round has gone a full grace period past
// its expected execution time.
func (r Round) Expired(now int64) bool {
	return now > r.LastExecutionTime+2*r.UpdateInterval
}

// Proposal is a hash commitment awaiting votes and reveal.
type Proposal struct {
	Id        uint64 `json:"id"`
	Creator   string `json:"creator"`
	Hash      []byte `json:"hash"`
	Votes     uint64 `json:"votes"`
	CreatedAt int64  `json:"created_at"`
	Executed  bool   `json:"executed"`
}

// ProposalPayload is the full content revealed at execution time. The
// commitment submitted with CreateProposal must be the hash of exactly
// this struct, timestamp included. Workers and Capacities are parallel
// slices.
type ProposalPayload struct {
	JobIDs           []uint64 `json:"job_ids"`
	Workers          []string `json:"workers"`
	Capacities       []uint64 `json:"capacities"`
	RemoveValidators []string `json:"remove_validators"`
	Timestamp        int64    `json:"timestamp"`
}

// Validate checks structural well-formedness of a revealed payload.
func (p ProposalPayload) Validate() error {
	if len(p.Workers) != len(p.Capacities) {
		return fmt.Errorf("workers and capacities length mismatch: %d != %d", len(p.Workers), len(p.Capacities))
	}
	for i, w := range p.Workers {
		if w == "" {
			return fmt.Errorf("empty worker at index %d", i)
		}
	}
	var total uint64
	for i, c := range p.Capacities {
		if total+c < total {
			return fmt.Errorf("total capacity overflows at index %d", i)
		}
		total += c
	}
	return nil
}

// TotalCapacity sums the declared worker capacities. Callers validate
// the payload first, so the sum cannot wrap.
func (p ProposalPayload) TotalCapacity() uint64 {
	var total uint64
	for _, c := range p.Capacities {
		total += c
	}
	return total
}
