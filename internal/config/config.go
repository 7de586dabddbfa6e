package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/rovshanmuradov/gls-tokenomics/internal/pricecurve"
)

// Role keys of the default distribution design.
const (
	RoleValidator      = "validator_rewards"
	RoleInfrastructure = "infrastructure_bandwidth"
	RoleGasSponsorship = "gas_sponsorship"
	RoleEcosystem      = "ecosystem_fund"
	RoleAdminReserve   = "admin_reserve"
)

// Default parameter values.
const (
	DefaultInitialSupply            = 1_000_000_000
	DefaultInitialTokenPrice        = 0.03
	DefaultFinalTokenPrice          = 0.05
	DefaultPricePattern             = pricecurve.Random
	DefaultAnnualInflationRate      = 0.05
	DefaultStakingParticipationRate = 0.6
	DefaultUserStake                = 1_000_000
	DefaultCompoundStaking          = true
	DefaultTxPerMonth               = 20_000_000
	DefaultAvgTokensPerTx           = 0.021
	DefaultValidatorFeeRatio        = 1
)

var (
	ErrNonFinite            = errors.New("non-finite value")
	ErrMalformedNumber      = errors.New("malformed number")
	ErrInvalidValue         = errors.New("invalid value")
	ErrZeroStaked           = errors.New("total staked supply must be positive")
	ErrStakeExceedsStaked   = errors.New("user stake exceeds total staked supply")
	ErrMissingValidatorRole = errors.New("distribution ratios have no validator role")
)

// RoleRatio assigns a share of the monthly inflation pool to a named fund.
type RoleRatio struct {
	Role  string  `mapstructure:"role" json:"role" yaml:"role"`
	Ratio float64 `mapstructure:"ratio" json:"ratio" yaml:"ratio"`
}

// Config is the full parameter set of one projection run. It is passed by
// value; use Clone before handing it to code that may modify the ratios.
type Config struct {
	InitialSupply            float64            `mapstructure:"initial_supply" json:"initial_supply" yaml:"initial_supply"`
	InitialTokenPrice        float64            `mapstructure:"initial_token_price" json:"initial_token_price" yaml:"initial_token_price"`
	FinalTokenPrice          float64            `mapstructure:"final_token_price" json:"final_token_price" yaml:"final_token_price"`
	PricePattern             pricecurve.Pattern `mapstructure:"price_pattern" json:"price_pattern" yaml:"price_pattern"`
	AnnualInflationRate      float64            `mapstructure:"annual_inflation_rate" json:"annual_inflation_rate" yaml:"annual_inflation_rate"`
	StakingParticipationRate float64            `mapstructure:"staking_participation_rate" json:"staking_participation_rate" yaml:"staking_participation_rate"`
	UserStake                float64            `mapstructure:"user_stake" json:"user_stake" yaml:"user_stake"`
	CompoundStaking          bool               `mapstructure:"compound_staking" json:"compound_staking" yaml:"compound_staking"`
	TxPerMonth               float64            `mapstructure:"tx_per_month" json:"tx_per_month" yaml:"tx_per_month"`
	AvgTokensPerTx           float64            `mapstructure:"avg_gls_per_tx" json:"avg_gls_per_tx" yaml:"avg_gls_per_tx"`
	ValidatorFeeRatio        float64            `mapstructure:"gls_to_validator_ratio" json:"gls_to_validator_ratio" yaml:"gls_to_validator_ratio"`
	DistributionRatios       []RoleRatio        `mapstructure:"distribution_ratios" json:"distribution_ratios" yaml:"distribution_ratios"`

	// Seed fixes the random price walk when non-zero.
	Seed uint64 `mapstructure:"seed" json:"seed,omitempty" yaml:"seed,omitempty"`
}

// DefaultDistribution returns the default role ratios in report order.
func DefaultDistribution() []RoleRatio {
	return []RoleRatio{
		{Role: RoleValidator, Ratio: 0.25},
		{Role: RoleInfrastructure, Ratio: 0.20},
		{Role: RoleGasSponsorship, Ratio: 0.15},
		{Role: RoleEcosystem, Ratio: 0.30},
		{Role: RoleAdminReserve, Ratio: 0.10},
	}
}

// Defaults returns the built-in parameter set.
func Defaults() Config {
	return Config{
		InitialSupply:            DefaultInitialSupply,
		InitialTokenPrice:        DefaultInitialTokenPrice,
		FinalTokenPrice:          DefaultFinalTokenPrice,
		PricePattern:             DefaultPricePattern,
		AnnualInflationRate:      DefaultAnnualInflationRate,
		StakingParticipationRate: DefaultStakingParticipationRate,
		UserStake:                DefaultUserStake,
		CompoundStaking:          DefaultCompoundStaking,
		TxPerMonth:               DefaultTxPerMonth,
		AvgTokensPerTx:           DefaultAvgTokensPerTx,
		ValidatorFeeRatio:        DefaultValidatorFeeRatio,
		DistributionRatios:       DefaultDistribution(),
	}
}

// Clone returns a copy that shares no memory with c.
func (c Config) Clone() Config {
	out := c
	out.DistributionRatios = append([]RoleRatio(nil), c.DistributionRatios...)
	return out
}

// TotalStaked is the staked share of the initial supply. It is fixed for
// the whole run even when the tracked stake compounds.
func (c Config) TotalStaked() float64 {
	return c.InitialSupply * c.StakingParticipationRate
}

// MonthlyInflationPool is the flat monthly slice of the annual issuance.
func (c Config) MonthlyInflationPool() float64 {
	return c.InitialSupply * c.AnnualInflationRate / 12
}

// Ratio returns the ratio configured for role.
func (c Config) Ratio(role string) (float64, bool) {
	for _, rr := range c.DistributionRatios {
		if rr.Role == role {
			return rr.Ratio, true
		}
	}
	return 0, false
}

// Validate checks the parameters for values that would produce non-finite
// or meaningless results. It does not judge the economics: ratios may sum
// to anything.
func (c Config) Validate() error {
	if err := c.validateFinite(); err != nil {
		return err
	}
	if err := c.validateNumericParams(); err != nil {
		return err
	}

	if _, ok := c.Ratio(RoleValidator); !ok {
		return fmt.Errorf("%w: %q missing", ErrMissingValidatorRole, RoleValidator)
	}
	if c.TotalStaked() <= 0 {
		return fmt.Errorf("%w: initial_supply=%g staking_participation_rate=%g",
			ErrZeroStaked, c.InitialSupply, c.StakingParticipationRate)
	}
	if c.UserStake > c.TotalStaked() {
		return fmt.Errorf("%w: user_stake=%g total_staked=%g",
			ErrStakeExceedsStaked, c.UserStake, c.TotalStaked())
	}
	return nil
}

func (c Config) validateFinite() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"initial_supply", c.InitialSupply},
		{"initial_token_price", c.InitialTokenPrice},
		{"final_token_price", c.FinalTokenPrice},
		{"annual_inflation_rate", c.AnnualInflationRate},
		{"staking_participation_rate", c.StakingParticipationRate},
		{"user_stake", c.UserStake},
		{"tx_per_month", c.TxPerMonth},
		{"avg_gls_per_tx", c.AvgTokensPerTx},
		{"gls_to_validator_ratio", c.ValidatorFeeRatio},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s", ErrNonFinite, f.name)
		}
	}
	for _, rr := range c.DistributionRatios {
		if math.IsNaN(rr.Ratio) || math.IsInf(rr.Ratio, 0) {
			return fmt.Errorf("%w: distribution ratio %s", ErrNonFinite, rr.Role)
		}
	}
	return nil
}

func (c Config) validateNumericParams() error {
	switch {
	case c.InitialSupply <= 0:
		return fmt.Errorf("%w: initial_supply must be positive", ErrInvalidValue)
	case c.InitialTokenPrice <= 0:
		return fmt.Errorf("%w: initial_token_price must be positive", ErrInvalidValue)
	case c.FinalTokenPrice <= 0:
		return fmt.Errorf("%w: final_token_price must be positive", ErrInvalidValue)
	case c.StakingParticipationRate < 0 || c.StakingParticipationRate > 1:
		return fmt.Errorf("%w: staking_participation_rate must be within [0,1]", ErrInvalidValue)
	case c.UserStake <= 0:
		return fmt.Errorf("%w: user_stake must be positive", ErrInvalidValue)
	case c.TxPerMonth < 0:
		return fmt.Errorf("%w: tx_per_month must not be negative", ErrInvalidValue)
	case c.AvgTokensPerTx < 0:
		return fmt.Errorf("%w: avg_gls_per_tx must not be negative", ErrInvalidValue)
	}
	for _, rr := range c.DistributionRatios {
		if rr.Role == "" {
			return fmt.Errorf("%w: distribution role name is empty", ErrInvalidValue)
		}
	}
	return nil
}
