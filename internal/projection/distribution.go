package projection

import (
	"fmt"

	"github.com/rovshanmuradov/gls-tokenomics/internal/config"
	"github.com/rovshanmuradov/gls-tokenomics/internal/mathutil"
	"github.com/rovshanmuradov/gls-tokenomics/internal/pricecurve"
)

// RoleReward is the monthly token allocation of one fund.
type RoleReward struct {
	Role    string
	Ratio   float64
	Monthly []float64
}

// RoleRewards splits the flat monthly inflation pool by the configured
// ratios, keeping the configured role order.
func RoleRewards(cfg config.Config) []RoleReward {
	pool := cfg.MonthlyInflationPool()
	out := make([]RoleReward, 0, len(cfg.DistributionRatios))
	for _, rr := range cfg.DistributionRatios {
		out = append(out, RoleReward{
			Role:    rr.Role,
			Ratio:   rr.Ratio,
			Monthly: mathutil.Filled(pricecurve.Months, pool*rr.Ratio),
		})
	}
	return out
}

// RoleTotal is a fund's yearly allocation.
type RoleTotal struct {
	Role         string
	Ratio        float64
	Monthly      []float64
	AnnualTokens float64
	AnnualUSD    float64
}

// Distribution is the protocol-wide fund outflow. Figures are rounded to
// 2 decimals at the same points the sheet reports round them: role totals
// before their USD valuation and monthly token totals before theirs.
type Distribution struct {
	Roles []RoleTotal

	MonthlyTokens []float64
	MonthlyUSD    []float64

	TotalTokens float64
	TotalUSD    float64

	// ValuationPrice is the final month's price used for every role's
	// annual USD figure.
	ValuationPrice float64
}

// Distribute aggregates role rewards per role and per month.
func Distribute(roles []RoleReward, prices []float64) (Distribution, error) {
	if len(prices) != pricecurve.Months {
		return Distribution{}, fmt.Errorf("price curve has %d months, want %d", len(prices), pricecurve.Months)
	}

	d := Distribution{
		Roles:          make([]RoleTotal, 0, len(roles)),
		MonthlyTokens:  make([]float64, pricecurve.Months),
		MonthlyUSD:     make([]float64, pricecurve.Months),
		ValuationPrice: prices[len(prices)-1],
	}

	var annualTokens, annualUSD []float64
	for _, r := range roles {
		if len(r.Monthly) != pricecurve.Months {
			return Distribution{}, fmt.Errorf("role %s has %d months, want %d", r.Role, len(r.Monthly), pricecurve.Months)
		}
		tokens := mathutil.Round(mathutil.Sum(r.Monthly), 2)
		usd := mathutil.Round(tokens*d.ValuationPrice, 2)
		d.Roles = append(d.Roles, RoleTotal{
			Role:         r.Role,
			Ratio:        r.Ratio,
			Monthly:      r.Monthly,
			AnnualTokens: tokens,
			AnnualUSD:    usd,
		})
		annualTokens = append(annualTokens, tokens)
		annualUSD = append(annualUSD, usd)
	}

	for i := 0; i < pricecurve.Months; i++ {
		var total float64
		for _, r := range roles {
			total += r.Monthly[i]
		}
		d.MonthlyTokens[i] = mathutil.Round(total, 2)
		d.MonthlyUSD[i] = mathutil.Round(d.MonthlyTokens[i]*prices[i], 2)
	}

	d.TotalTokens = mathutil.Round(mathutil.Sum(annualTokens), 2)
	d.TotalUSD = mathutil.Round(mathutil.Sum(annualUSD), 2)
	return d, nil
}

// Role returns the totals of the named fund.
func (d Distribution) Role(name string) (RoleTotal, bool) {
	for _, r := range d.Roles {
		if r.Role == name {
			return r, true
		}
	}
	return RoleTotal{}, false
}
