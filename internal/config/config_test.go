package config

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rovshanmuradov/gls-tokenomics/internal/pricecurve"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, 1_000_000_000.0, cfg.InitialSupply)
	assert.Equal(t, 0.03, cfg.InitialTokenPrice)
	assert.Equal(t, 0.05, cfg.FinalTokenPrice)
	assert.Equal(t, pricecurve.Random, cfg.PricePattern)
	assert.Equal(t, 0.05, cfg.AnnualInflationRate)
	assert.Equal(t, 0.6, cfg.StakingParticipationRate)
	assert.Equal(t, 1_000_000.0, cfg.UserStake)
	assert.True(t, cfg.CompoundStaking)
	assert.Equal(t, 20_000_000.0, cfg.TxPerMonth)
	assert.Equal(t, 0.021, cfg.AvgTokensPerTx)
	assert.Equal(t, 1.0, cfg.ValidatorFeeRatio)
	assert.Equal(t, []RoleRatio{
		{RoleValidator, 0.25},
		{RoleInfrastructure, 0.20},
		{RoleGasSponsorship, 0.15},
		{RoleEcosystem, 0.30},
		{RoleAdminReserve, 0.10},
	}, cfg.DistributionRatios)
	assert.Zero(t, cfg.Seed)

	require.NoError(t, cfg.Validate())
}

func TestDerivedQuantities(t *testing.T) {
	cfg := Defaults()

	assert.InDelta(t, 600_000_000, cfg.TotalStaked(), 1e-6)
	assert.InDelta(t, 4_166_666.666666667, cfg.MonthlyInflationPool(), 1e-6)

	ratio, ok := cfg.Ratio(RoleEcosystem)
	assert.True(t, ok)
	assert.Equal(t, 0.30, ratio)

	_, ok = cfg.Ratio("marketing")
	assert.False(t, ok)
}

func TestCloneIsIndependent(t *testing.T) {
	cfg := Defaults()
	clone := cfg.Clone()
	clone.DistributionRatios[0].Ratio = 0.9

	assert.Equal(t, 0.25, cfg.DistributionRatios[0].Ratio)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "nan supply",
			mutate:  func(c *Config) { c.InitialSupply = math.NaN() },
			wantErr: ErrNonFinite,
		},
		{
			name:    "infinite ratio",
			mutate:  func(c *Config) { c.DistributionRatios[2].Ratio = math.Inf(1) },
			wantErr: ErrNonFinite,
		},
		{
			name:    "zero price",
			mutate:  func(c *Config) { c.FinalTokenPrice = 0 },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "negative tx count",
			mutate:  func(c *Config) { c.TxPerMonth = -1 },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "participation above one",
			mutate:  func(c *Config) { c.StakingParticipationRate = 1.5 },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "zero participation",
			mutate:  func(c *Config) { c.StakingParticipationRate = 0 },
			wantErr: ErrZeroStaked,
		},
		{
			name:    "stake above total staked",
			mutate:  func(c *Config) { c.UserStake = 700_000_000 },
			wantErr: ErrStakeExceedsStaked,
		},
		{
			name:    "validator role missing",
			mutate:  func(c *Config) { c.DistributionRatios = c.DistributionRatios[1:] },
			wantErr: ErrMissingValidatorRole,
		},
		{
			name:    "ratios need not sum to one",
			mutate:  func(c *Config) { c.DistributionRatios[0].Ratio = 2 },
			wantErr: nil,
		},
		{
			name:    "unknown pattern is allowed",
			mutate:  func(c *Config) { c.PricePattern = "sideways" },
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestValidateNamesNonFiniteField(t *testing.T) {
	cfg := Defaults()
	cfg.AvgTokensPerTx = math.NaN()

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrNonFinite)
	assert.Contains(t, err.Error(), "avg_gls_per_tx")
}
