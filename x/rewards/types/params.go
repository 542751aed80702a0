package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Default parameter values
const (
	DefaultPrimaryDenom   = "uatt"
	DefaultSecondaryDenom = "ugov"

	DefaultDaoSharePercent       = uint64(15)
	DefaultValidatorSharePercent = uint64(25)

	DefaultRetentionWindow = uint64(500)

	DefaultEraSeconds         = int64(31_536_000) // one year
	DefaultIntervalSeconds    = int64(86_400)     // one day
	DefaultMinIntervalSeconds = int64(3_600)
	DefaultMaxIntervalSeconds = int64(604_800)

	DefaultDecayNumerator   = uint64(3)
	DefaultDecayDenominator = uint64(5)
)

// Params defines the rewards module parameters
type Params struct {
	// PrimaryDenom is the emitted utility asset; SecondaryDenom enters
	// pools only through extra payments escrowed by the job intake.
	PrimaryDenom   string `json:"primary_denom"`
	SecondaryDenom string `json:"secondary_denom"`

	// TreasuryAddress receives the dao share of every pool.
	TreasuryAddress string `json:"treasury_address"`

	DaoSharePercent       uint64 `json:"dao_share_percent"`
	ValidatorSharePercent uint64 `json:"validator_share_percent"`

	// RetentionWindow is the number of most-recent distributions kept
	// claimable.
	RetentionWindow uint64 `json:"retention_window"`

	// Emission schedule: rate(0) = BaseEmissionRate tokens/second, each
	// era multiplies by DecayNumerator/DecayDenominator, floored at
	// TailEmissionRate.
	EraSeconds       int64          `json:"era_seconds"`
	BaseEmissionRate math.LegacyDec `json:"base_emission_rate"`
	DecayNumerator   uint64         `json:"decay_numerator"`
	DecayDenominator uint64         `json:"decay_denominator"`
	TailEmissionRate math.LegacyDec `json:"tail_emission_rate"`

	MinIntervalSeconds int64 `json:"min_interval_seconds"`
	MaxIntervalSeconds int64 `json:"max_interval_seconds"`
}

// DefaultParams returns a default set of parameters
func DefaultParams() Params {
	return Params{
		PrimaryDenom:          DefaultPrimaryDenom,
		SecondaryDenom:        DefaultSecondaryDenom,
		TreasuryAddress:       "",
		DaoSharePercent:       DefaultDaoSharePercent,
		ValidatorSharePercent: DefaultValidatorSharePercent,
		RetentionWindow:       DefaultRetentionWindow,
		EraSeconds:            DefaultEraSeconds,
		BaseEmissionRate:      math.LegacyNewDec(10),
		DecayNumerator:        DefaultDecayNumerator,
		DecayDenominator:      DefaultDecayDenominator,
		TailEmissionRate:      math.LegacyNewDecWithPrec(5, 1), // 0.5/sec
		MinIntervalSeconds:    DefaultMinIntervalSeconds,
		MaxIntervalSeconds:    DefaultMaxIntervalSeconds,
	}
}

// Validate validates the set of params
func (p Params) Validate() error {
	if err := sdk.ValidateDenom(p.PrimaryDenom); err != nil {
		return fmt.Errorf("invalid primary denom: %w", err)
	}
	if err := sdk.ValidateDenom(p.SecondaryDenom); err != nil {
		return fmt.Errorf("invalid secondary denom: %w", err)
	}
	if p.PrimaryDenom == p.SecondaryDenom {
		return fmt.Errorf("primary and secondary denoms must differ")
	}
	if p.TreasuryAddress != "" {
		if _, err := sdk.AccAddressFromBech32(p.TreasuryAddress); err != nil {
			return fmt.Errorf("invalid treasury address: %w", err)
		}
	}
	if p.DaoSharePercent+p.ValidatorSharePercent >= 100 {
		return fmt.Errorf("dao and validator shares leave no worker share: %d%% + %d%%",
			p.DaoSharePercent, p.ValidatorSharePercent)
	}
	if p.RetentionWindow == 0 {
		return fmt.Errorf("retention window must be positive")
	}
	if p.EraSeconds <= 0 {
		return fmt.Errorf("era length must be positive: %d", p.EraSeconds)
	}
	if p.BaseEmissionRate.IsNil() || p.BaseEmissionRate.IsNegative() {
		return fmt.Errorf("base emission rate must be non-negative")
	}
	if p.TailEmissionRate.IsNil() || p.TailEmissionRate.IsNegative() {
		return fmt.Errorf("tail emission rate must be non-negative")
	}
	if p.TailEmissionRate.GT(p.BaseEmissionRate) {
		return fmt.Errorf("tail emission cannot exceed base emission")
	}
	if p.DecayDenominator == 0 || p.DecayNumerator >= p.DecayDenominator {
		return fmt.Errorf("decay ratio must be in (0, 1): %d/%d", p.DecayNumerator, p.DecayDenominator)
	}
	if p.MinIntervalSeconds <= 0 || p.MaxIntervalSeconds < p.MinIntervalSeconds {
		return fmt.Errorf("invalid interval bounds [%d, %d]", p.MinIntervalSeconds, p.MaxIntervalSeconds)
	}
	return nil
}
