package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/rovshanmuradov/gls-tokenomics/internal/config"
	"github.com/rovshanmuradov/gls-tokenomics/internal/locale"
	"github.com/rovshanmuradov/gls-tokenomics/internal/mathutil"
	"github.com/rovshanmuradov/gls-tokenomics/internal/pricecurve"
	"github.com/rovshanmuradov/gls-tokenomics/internal/projection"
)

func runLinear(t *testing.T, mutate func(*config.Config)) *projection.Result {
	t.Helper()
	cfg := config.Defaults()
	cfg.PricePattern = pricecurve.Linear
	cfg.CompoundStaking = false
	if mutate != nil {
		mutate(&cfg)
	}
	res, err := projection.NewEngine(zap.NewNop()).Run(cfg)
	require.NoError(t, err)
	return res
}

func TestCell(t *testing.T) {
	assert.Equal(t, "1000000000", Number(1_000_000_000).String())
	assert.Equal(t, "0.021", Number(0.021).String())
	assert.Equal(t, "true", Bool(true).String())
	assert.False(t, Text("x").IsNumber())
	assert.True(t, Number(2).IsNumber())

	data, err := json.Marshal(Row{Text("a"), Number(1.5)})
	require.NoError(t, err)
	assert.JSONEq(t, `["a", 1.5]`, string(data))

	out, err := yaml.Marshal(Row{Text("a"), Number(2)})
	require.NoError(t, err)
	assert.Equal(t, "- a\n- 2\n", string(out))
}

func TestBuildTableShape(t *testing.T) {
	res := runLinear(t, nil)
	rep := Build(res, locale.English)

	roles := len(res.Config.DistributionRatios)
	require.Len(t, rep.Table, 1+10+roles)
	for i, row := range rep.Table {
		assert.Len(t, row, pricecurve.Months+2, "row %d", i)
	}

	header := rep.Table[0]
	assert.Equal(t, "item", header[0].String())
	assert.Equal(t, "Month 1", header[1].String())
	assert.Equal(t, "annual total", header[pricecurve.Months+1].String())

	text := locale.For(locale.English)
	labels := []string{
		text.PersonalInflation, text.PersonalTx, text.PersonalTotal,
		text.RateInflation, text.RateTx, text.RateTotal, text.Price, "",
		text.ValidatorTotal,
		"Infrastructure & bandwidth (GLS)",
		"Gas fee sponsorship (GLS)",
		"Ecosystem development fund (GLS)",
		"Administration & reserve (GLS)",
		text.TotalTokens, text.TotalUSD,
	}
	for i, want := range labels {
		assert.Equal(t, want, rep.Table[i+1].Label(), "row %d", i+1)
	}
}

func TestBuildTableWorkedExample(t *testing.T) {
	rep := Build(runLinear(t, nil), locale.English)
	text := locale.For(locale.English)

	inflation, ok := rep.Table.Find(text.PersonalInflation)
	require.True(t, ok)
	assert.Equal(t, 1736.11, inflation[1].Float())

	tx, _ := rep.Table.Find(text.PersonalTx)
	assert.Equal(t, 700.0, tx[1].Float())
	assert.Equal(t, 8400.0, tx[pricecurve.Months+1].Float())

	price, _ := rep.Table.Find(text.Price)
	assert.Equal(t, 0.03, price[1].Float())
	assert.Equal(t, 0.05, price[pricecurve.Months].Float())
	assert.Equal(t, "-", price[pricecurve.Months+1].String())

	validator, _ := rep.Table.Find(text.ValidatorTotal)
	assert.Equal(t, 1_041_666.67, validator[1].Float())
	assert.Equal(t, 12_500_000.0, validator[pricecurve.Months+1].Float())

	tokens, _ := rep.Table.Find(text.TotalTokens)
	assert.Equal(t, 50_000_000.0, tokens[pricecurve.Months+1].Float())
	usd, _ := rep.Table.Find(text.TotalUSD)
	assert.Equal(t, 2_500_000.0, usd[pricecurve.Months+1].Float())
}

func TestBuildTableAnnualAggregates(t *testing.T) {
	res := runLinear(t, func(c *config.Config) {
		c.CompoundStaking = true
		c.PricePattern = pricecurve.U
	})
	rep := Build(res, locale.English)
	text := locale.For(locale.English)

	total, _ := rep.Table.Find(text.PersonalTotal)
	vals := total.Values()
	require.Len(t, vals, pricecurve.Months+1)
	assert.InDelta(t, mathutil.Sum(vals[:pricecurve.Months]), vals[pricecurve.Months], 0.06)

	rate, _ := rep.Table.Find(text.RateTotal)
	rvals := rate.Values()
	assert.InDelta(t, mathutil.Mean(rvals[:pricecurve.Months]), rvals[pricecurve.Months], 0.01)

	var roleSum float64
	for _, r := range res.Distribution.Roles {
		roleSum += r.AnnualTokens
	}
	tokens, _ := rep.Table.Find(text.TotalTokens)
	assert.InDelta(t, roleSum, tokens[pricecurve.Months+1].Float(), 0.005)
}

func TestPercentText(t *testing.T) {
	assert.Equal(t, "25.0%", percentText(0.25))
	assert.Equal(t, "12.5%", percentText(0.125))
	assert.Equal(t, "12.25%", percentText(0.1225))
	assert.Equal(t, "0.0%", percentText(0))
	assert.Equal(t, "100.0%", percentText(1))
}

func TestBuildParams(t *testing.T) {
	res := runLinear(t, nil)
	params := BuildParams(res.Config, locale.For(locale.Japanese))

	// title + 11 fields + blank + heading + 5 roles + blank
	require.Len(t, params, 1+11+1+1+5+1)
	assert.Equal(t, "=== 入力パラメータ ===", params[0].Label())
	assert.Equal(t, Row{Text("初期発行量 (GLS):"), Number(1_000_000_000)}, params[1])
	assert.Equal(t, Row{Text("価格変化パターン:"), Text("linear")}, params[4])
	assert.Equal(t, Row{Text("複利ステーキング:"), Text("false")}, params[8])
	assert.Equal(t, "分配設計", params[13].Label())
	assert.Equal(t, Row{Text("バリデータ報酬 (%):"), Text("25.0%")}, params[14])
	assert.Equal(t, "", params[len(params)-1].Label())
}

func TestParamsRoundTripThroughSheet(t *testing.T) {
	res := runLinear(t, func(c *config.Config) {
		c.DistributionRatios[1].Ratio = 0.125
		c.UserStake = 2_000_000
	})

	for _, loc := range locale.All() {
		params := BuildParams(res.Config, locale.For(loc))
		cells := map[string]string{}
		for _, row := range params {
			if len(row) == 2 {
				cells[row[0].String()[:len(row[0].String())-1]] = row[1].String()
			}
		}

		cfg, err := config.ConfigFromSheet(config.Defaults(), cells)
		require.NoError(t, err, "locale %s", loc)
		cfg.Seed = res.Config.Seed
		assert.Equal(t, res.Config, cfg, "locale %s", loc)
	}
}

func TestBuildCustomRoleUsesKey(t *testing.T) {
	res := runLinear(t, func(c *config.Config) {
		c.DistributionRatios = append(c.DistributionRatios, config.RoleRatio{Role: "marketing", Ratio: 0.05})
	})
	rep := Build(res, locale.English)

	_, ok := rep.Table.Find("marketing (GLS)")
	assert.True(t, ok)
	_, ok = rep.Params.Find("marketing (%):")
	assert.True(t, ok)
}

func TestSummarize(t *testing.T) {
	flat := runLinear(t, nil)
	s := Summarize(flat)
	assert.Equal(t, flat.Config.UserStake, s.FinalStake)
	assert.Equal(t, flat.Accrual.AnnualTotal, s.AnnualReward)
	assert.Equal(t, 0.05, s.ValuationPrice)
	assert.InDelta(t, 0.004074, s.MonthlyInflationRate, 1e-6)

	compounded := runLinear(t, func(c *config.Config) { c.CompoundStaking = true })
	s = Summarize(compounded)
	assert.InDelta(t, compounded.Config.UserStake+compounded.Accrual.AnnualTotal, s.FinalStake, 1e-6)
}
