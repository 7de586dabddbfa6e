// Package report turns a projection result into the parameter echo block
// and the monthly table handed to report sinks.
package report

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/rovshanmuradov/gls-tokenomics/internal/config"
	"github.com/rovshanmuradov/gls-tokenomics/internal/locale"
	"github.com/rovshanmuradov/gls-tokenomics/internal/mathutil"
	"github.com/rovshanmuradov/gls-tokenomics/internal/pricecurve"
	"github.com/rovshanmuradov/gls-tokenomics/internal/projection"
)

const (
	moneyPlaces = 2
	pricePlaces = 4
	placeholder = "-"
)

// Report is the formatted output of one run.
type Report struct {
	RunID       string
	GeneratedAt time.Time
	Locale      locale.Locale
	Pattern     pricecurve.Pattern
	Prices      []float64

	Params  Rows
	Table   Rows
	Summary Summary
}

// Summary holds the headline figures of a run, unrounded.
type Summary struct {
	AnnualReward         float64 `json:"annual_reward" yaml:"annual_reward"`
	MeanRate             float64 `json:"mean_arp" yaml:"mean_arp"`
	FinalStake           float64 `json:"final_stake" yaml:"final_stake"`
	DistributedTokens    float64 `json:"distributed_tokens" yaml:"distributed_tokens"`
	DistributedUSD       float64 `json:"distributed_usd" yaml:"distributed_usd"`
	ValuationPrice       float64 `json:"valuation_price" yaml:"valuation_price"`
	MonthlyInflationPool float64 `json:"monthly_inflation_pool" yaml:"monthly_inflation_pool"`
	MonthlyInflationRate float64 `json:"monthly_inflation_rate" yaml:"monthly_inflation_rate"`
}

// Build formats res using the labels of loc.
func Build(res *projection.Result, loc locale.Locale) Report {
	text := locale.For(loc)
	return Report{
		RunID:       res.RunID,
		GeneratedAt: res.GeneratedAt,
		Locale:      loc,
		Pattern:     res.Config.PricePattern,
		Prices:      append([]float64(nil), res.Prices...),
		Params:      BuildParams(res.Config, text),
		Table:       BuildTable(res, text),
		Summary:     Summarize(res),
	}
}

// Summarize extracts the headline figures of res.
func Summarize(res *projection.Result) Summary {
	a := res.Accrual
	finalStake := res.Config.UserStake
	if n := len(a.Stakes); n > 0 && res.Config.CompoundStaking {
		finalStake = a.Stakes[n-1] + a.Total[n-1]
	}
	return Summary{
		AnnualReward:         a.AnnualTotal,
		MeanRate:             a.MeanRateTotal,
		FinalStake:           finalStake,
		DistributedTokens:    res.Distribution.TotalTokens,
		DistributedUSD:       res.Distribution.TotalUSD,
		ValuationPrice:       res.Distribution.ValuationPrice,
		MonthlyInflationPool: res.MonthlyInflationPool,
		MonthlyInflationRate: res.MonthlyInflationRate,
	}
}

// BuildParams echoes every parameter, then each distribution ratio as a
// percentage.
func BuildParams(cfg config.Config, text locale.Text) Rows {
	values := map[string]Cell{
		locale.FieldInitialSupply:            Number(cfg.InitialSupply),
		locale.FieldInitialTokenPrice:        Number(cfg.InitialTokenPrice),
		locale.FieldFinalTokenPrice:          Number(cfg.FinalTokenPrice),
		locale.FieldPricePattern:             Text(string(cfg.PricePattern)),
		locale.FieldAnnualInflationRate:      Number(cfg.AnnualInflationRate),
		locale.FieldStakingParticipationRate: Number(cfg.StakingParticipationRate),
		locale.FieldUserStake:                Number(cfg.UserStake),
		locale.FieldCompoundStaking:          Bool(cfg.CompoundStaking),
		locale.FieldTxPerMonth:               Number(cfg.TxPerMonth),
		locale.FieldAvgTokensPerTx:           Number(cfg.AvgTokensPerTx),
		locale.FieldValidatorFeeRatio:        Number(cfg.ValidatorFeeRatio),
	}

	rows := Rows{{Text(text.ParamsTitle)}}
	for _, key := range locale.Fields() {
		rows = append(rows, Row{Text(text.Field(key) + ":"), values[key]})
	}
	rows = append(rows, Row{Text("")}, Row{Text(text.DistributionTitle)})
	for _, rr := range cfg.DistributionRatios {
		rows = append(rows, Row{
			Text(text.Role(rr.Role) + " (%):"),
			Text(percentText(rr.Ratio)),
		})
	}
	rows = append(rows, Row{Text("")})
	return rows
}

// percentText renders a ratio as a percentage with at least one decimal
// place: 0.25 is "25.0%", 0.1225 is "12.25%".
func percentText(ratio float64) string {
	pct := mathutil.Round(ratio*100, moneyPlaces)
	if pct == math.Trunc(pct) {
		return strconv.FormatFloat(pct, 'f', 1, 64) + "%"
	}
	return strconv.FormatFloat(pct, 'f', -1, 64) + "%"
}

// BuildTable lays out the header, the personal reward rows, the price row,
// a blank separator and the fund distribution rows.
func BuildTable(res *projection.Result, text locale.Text) Rows {
	a := res.Accrual
	d := res.Distribution

	header := Row{Text(text.Item)}
	for m := 1; m <= pricecurve.Months; m++ {
		header = append(header, Text(text.Month(m)))
	}
	header = append(header, Text(text.AnnualTotal))

	rows := Rows{
		header,
		moneyRow(text.PersonalInflation, a.Inflation, a.AnnualInflation),
		moneyRow(text.PersonalTx, a.Tx, a.AnnualTx),
		moneyRow(text.PersonalTotal, a.Total, a.AnnualTotal),
		moneyRow(text.RateInflation, a.RateInflation, a.MeanRateInflation),
		moneyRow(text.RateTx, a.RateTx, a.MeanRateTx),
		moneyRow(text.RateTotal, a.RateTotal, a.MeanRateTotal),
		priceRow(text.Price, res.Prices),
		blankRow(pricecurve.Months + 2),
	}

	if validator, ok := d.Role(config.RoleValidator); ok {
		rows = append(rows, moneyRow(text.ValidatorTotal, validator.Monthly, validator.AnnualTokens))
	}
	for _, r := range d.Roles {
		if r.Role == config.RoleValidator {
			continue
		}
		label := fmt.Sprintf("%s %s", text.Role(r.Role), text.TokenUnit)
		rows = append(rows, moneyRow(label, r.Monthly, r.AnnualTokens))
	}

	rows = append(rows,
		moneyRow(text.TotalTokens, d.MonthlyTokens, d.TotalTokens),
		moneyRow(text.TotalUSD, d.MonthlyUSD, d.TotalUSD),
	)
	return rows
}

func moneyRow(label string, monthly []float64, annual float64) Row {
	row := make(Row, 0, len(monthly)+2)
	row = append(row, Text(label))
	for _, v := range monthly {
		row = append(row, Number(mathutil.Round(v, moneyPlaces)))
	}
	return append(row, Number(mathutil.Round(annual, moneyPlaces)))
}

func priceRow(label string, prices []float64) Row {
	row := make(Row, 0, len(prices)+2)
	row = append(row, Text(label))
	for _, p := range prices {
		row = append(row, Number(mathutil.Round(p, pricePlaces)))
	}
	return append(row, Text(placeholder))
}

func blankRow(n int) Row {
	row := make(Row, n)
	for i := range row {
		row[i] = Text("")
	}
	return row
}
