package types

import (
	"fmt"
)

// GenesisState defines the committee module's genesis state
type GenesisState struct {
	Params     Params          `json:"params"`
	Validators []ValidatorInfo `json:"validators"`
	Round      Round           `json:"round"`
}

// DefaultGenesis returns the default genesis state
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:     DefaultParams(),
		Validators: nil,
		Round: Round{
			Number:         1,
			UpdateInterval: DefaultUpdateInterval,
		},
	}
}

// Validate performs basic genesis state validation
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(gs.Validators))
	for _, v := range gs.Validators {
		if v.Address == "" {
			return fmt.Errorf("validator with empty address")
		}
		if _, ok := seen[v.Address]; ok {
			return fmt.Errorf("duplicate validator %s", v.Address)
		}
		seen[v.Address] = struct{}{}
	}

	// Committee members must come from the registry
	for _, member := range gs.Round.Committee {
		if _, ok := seen[member]; !ok {
			return fmt.Errorf("committee member %s is not a registered validator", member)
		}
	}

	if gs.Round.Number == 0 {
		return fmt.Errorf("round number must start at 1")
	}

	return nil
}
