package types

import (
	"fmt"
)

// GenesisState defines the rewards module's genesis state
type GenesisState struct {
	Params        Params         `json:"params"`
	Emission      EmissionState  `json:"emission"`
	Distributions []Distribution `json:"distributions"`
	LatestId      uint64         `json:"latest_id"`
}

// DefaultGenesis returns the default genesis state. DeployedAt zero means
// "stamp with block time on init".
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params: DefaultParams(),
		Emission: EmissionState{
			IntervalSeconds: DefaultIntervalSeconds,
		},
	}
}

// Validate performs basic genesis state validation
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}

	if gs.Emission.IntervalSeconds < gs.Params.MinIntervalSeconds ||
		gs.Emission.IntervalSeconds > gs.Params.MaxIntervalSeconds {
		return fmt.Errorf("interval %d outside bounds [%d, %d]",
			gs.Emission.IntervalSeconds, gs.Params.MinIntervalSeconds, gs.Params.MaxIntervalSeconds)
	}

	if uint64(len(gs.Distributions)) > gs.Params.RetentionWindow {
		return fmt.Errorf("%d distributions exceed retention window %d",
			len(gs.Distributions), gs.Params.RetentionWindow)
	}

	seen := make(map[uint64]struct{}, len(gs.Distributions))
	for _, d := range gs.Distributions {
		if d.Id == 0 || d.Id > gs.LatestId {
			return fmt.Errorf("distribution id %d outside (0, %d]", d.Id, gs.LatestId)
		}
		if _, ok := seen[d.Id]; ok {
			return fmt.Errorf("duplicate distribution id %d", d.Id)
		}
		seen[d.Id] = struct{}{}
		if len(d.MerkleRoot) != MerkleRootSize {
			return fmt.Errorf("distribution %d has malformed merkle root", d.Id)
		}
		if d.TotalCapacity == 0 {
			return fmt.Errorf("distribution %d has zero capacity", d.Id)
		}
		if d.WorkerPrimary.IsNil() || d.WorkerPrimary.IsNegative() ||
			d.WorkerSecondary.IsNil() || d.WorkerSecondary.IsNegative() {
			return fmt.Errorf("distribution %d has malformed worker shares", d.Id)
		}
	}

	return nil
}
