package projection

import (
	"fmt"

	"github.com/rovshanmuradov/gls-tokenomics/internal/config"
	"github.com/rovshanmuradov/gls-tokenomics/internal/mathutil"
	"github.com/rovshanmuradov/gls-tokenomics/internal/pricecurve"
)

// Accrual is the month-by-month reward history of the tracked staker.
// Rates are annualized percentages of the initial stake.
type Accrual struct {
	// Stakes holds the tracked stake at the start of each month and Shares
	// that stake's fraction of the total staked supply.
	Stakes []float64
	Shares []float64

	Inflation []float64
	Tx        []float64
	Total     []float64

	RateInflation []float64
	RateTx        []float64
	RateTotal     []float64

	// Annual reward figures are plain sums; annual rates are means.
	AnnualInflation float64
	AnnualTx        float64
	AnnualTotal     float64

	MeanRateInflation float64
	MeanRateTx        float64
	MeanRateTotal     float64
}

// Accrue walks the months in order, carrying the tracked stake forward.
// The total staked supply stays at its initial value for the whole year,
// even when the tracked stake compounds. cfg is not modified.
func Accrue(cfg config.Config, prices []float64) (Accrual, error) {
	if len(prices) != pricecurve.Months {
		return Accrual{}, fmt.Errorf("price curve has %d months, want %d", len(prices), pricecurve.Months)
	}
	validatorRatio, ok := cfg.Ratio(config.RoleValidator)
	if !ok {
		return Accrual{}, fmt.Errorf("%w: %q missing", config.ErrMissingValidatorRole, config.RoleValidator)
	}
	totalStaked := cfg.TotalStaked()
	if totalStaked <= 0 {
		return Accrual{}, config.ErrZeroStaked
	}

	validatorMonthly := cfg.MonthlyInflationPool() * validatorRatio
	txVolume := cfg.TxPerMonth * cfg.AvgTokensPerTx * cfg.ValidatorFeeRatio

	a := Accrual{
		Stakes:    make([]float64, pricecurve.Months),
		Shares:    make([]float64, pricecurve.Months),
		Inflation: make([]float64, pricecurve.Months),
		Tx:        make([]float64, pricecurve.Months),
		Total:     make([]float64, pricecurve.Months),
	}

	stake := cfg.UserStake
	for i := 0; i < pricecurve.Months; i++ {
		share := stake / totalStaked
		inflation := share * validatorMonthly

		// Fee tokens are valued in USD and converted back at the same
		// month's price. The round trip is kept so results match the
		// sheet reports bit for bit.
		tx := share * txVolume
		txUSD := tx * prices[i]
		txTokens := txUSD / prices[i]

		a.Stakes[i] = stake
		a.Shares[i] = share
		a.Inflation[i] = inflation
		a.Tx[i] = txTokens
		a.Total[i] = inflation + txTokens

		if cfg.CompoundStaking {
			stake += inflation + txTokens
		}
	}

	a.RateInflation = annualizedRates(a.Inflation, cfg.UserStake)
	a.RateTx = annualizedRates(a.Tx, cfg.UserStake)
	a.RateTotal = annualizedRates(a.Total, cfg.UserStake)

	a.AnnualInflation = mathutil.Sum(a.Inflation)
	a.AnnualTx = mathutil.Sum(a.Tx)
	a.AnnualTotal = mathutil.Sum(a.Total)

	a.MeanRateInflation = mathutil.Mean(a.RateInflation)
	a.MeanRateTx = mathutil.Mean(a.RateTx)
	a.MeanRateTotal = mathutil.Mean(a.RateTotal)

	return a, nil
}

// annualizedRates scales monthly rewards to a yearly percentage of the
// initial stake.
func annualizedRates(rewards []float64, initialStake float64) []float64 {
	out := make([]float64, len(rewards))
	for i, r := range rewards {
		out[i] = r / initialStake * 12 * 100
	}
	return out
}
