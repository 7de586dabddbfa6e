// Package locale holds the human-readable labels used by the parameter
// sheet and the rendered report.
package locale

import (
	"fmt"
	"strings"
)

// Locale selects a label set.
type Locale string

const (
	English  Locale = "en"
	Japanese Locale = "ja"
)

// Parameter keys, shared with the config file keys.
const (
	FieldInitialSupply            = "initial_supply"
	FieldInitialTokenPrice        = "initial_token_price"
	FieldFinalTokenPrice          = "final_token_price"
	FieldPricePattern             = "price_pattern"
	FieldAnnualInflationRate      = "annual_inflation_rate"
	FieldStakingParticipationRate = "staking_participation_rate"
	FieldUserStake                = "user_stake"
	FieldCompoundStaking          = "compound_staking"
	FieldTxPerMonth               = "tx_per_month"
	FieldAvgTokensPerTx           = "avg_gls_per_tx"
	FieldValidatorFeeRatio        = "gls_to_validator_ratio"
)

// Fields lists the parameter keys in echo order.
func Fields() []string {
	return []string{
		FieldInitialSupply,
		FieldInitialTokenPrice,
		FieldFinalTokenPrice,
		FieldPricePattern,
		FieldAnnualInflationRate,
		FieldStakingParticipationRate,
		FieldUserStake,
		FieldCompoundStaking,
		FieldTxPerMonth,
		FieldAvgTokensPerTx,
		FieldValidatorFeeRatio,
	}
}

// Text is one complete label set.
type Text struct {
	ParamsTitle       string
	DistributionTitle string
	Fields            map[string]string
	Roles             map[string]string

	Item        string
	AnnualTotal string
	MonthFormat string

	PersonalInflation string
	PersonalTx        string
	PersonalTotal     string
	RateInflation     string
	RateTx            string
	RateTotal         string
	Price             string
	ValidatorTotal    string
	TotalTokens       string
	TotalUSD          string
	TokenUnit         string
}

var texts = map[Locale]Text{
	English: {
		ParamsTitle:       "=== Input parameters ===",
		DistributionTitle: "Distribution design",
		Fields: map[string]string{
			FieldInitialSupply:            "Initial supply (GLS)",
			FieldInitialTokenPrice:        "Initial price (USD)",
			FieldFinalTokenPrice:          "Final price (USD)",
			FieldPricePattern:             "Price pattern",
			FieldAnnualInflationRate:      "Annual inflation rate",
			FieldStakingParticipationRate: "Staking participation rate",
			FieldUserStake:                "Initial stake",
			FieldCompoundStaking:          "Compound staking",
			FieldTxPerMonth:               "Transactions per month",
			FieldAvgTokensPerTx:           "Average GLS per tx",
			FieldValidatorFeeRatio:        "Validator fee share",
		},
		Roles: map[string]string{
			"validator_rewards":        "Validator rewards",
			"infrastructure_bandwidth": "Infrastructure & bandwidth",
			"gas_sponsorship":          "Gas fee sponsorship",
			"ecosystem_fund":           "Ecosystem development fund",
			"admin_reserve":            "Administration & reserve",
		},
		Item:              "item",
		AnnualTotal:       "annual total",
		MonthFormat:       "Month %d",
		PersonalInflation: "Personal inflation reward (GLS)",
		PersonalTx:        "Personal tx fee reward (GLS)",
		PersonalTotal:     "Personal total reward (GLS)",
		RateInflation:     "Personal ARP (inflation %)",
		RateTx:            "Personal ARP (tx fee %)",
		RateTotal:         "Personal ARP (total %)",
		Price:             "Monthly price (USD)",
		ValidatorTotal:    "Validator total reward (GLS)",
		TotalTokens:       "Distribution total (GLS)",
		TotalUSD:          "Distribution total (USD)",
		TokenUnit:         "(GLS)",
	},
	Japanese: {
		ParamsTitle:       "=== 入力パラメータ ===",
		DistributionTitle: "分配設計",
		Fields: map[string]string{
			FieldInitialSupply:            "初期発行量 (GLS)",
			FieldInitialTokenPrice:        "初期価格 (USD)",
			FieldFinalTokenPrice:          "終端価格 (USD)",
			FieldPricePattern:             "価格変化パターン",
			FieldAnnualInflationRate:      "年間インフレ率",
			FieldStakingParticipationRate: "ステーキング参加率",
			FieldUserStake:                "初期ステーキング量",
			FieldCompoundStaking:          "複利ステーキング",
			FieldTxPerMonth:               "tx数/月",
			FieldAvgTokensPerTx:           "平均GLS/tx",
			FieldValidatorFeeRatio:        "tx手数料バリデータ分配率",
		},
		Roles: map[string]string{
			"validator_rewards":        "バリデータ報酬",
			"infrastructure_bandwidth": "インフラ協力・帯域負担",
			"gas_sponsorship":          "ガス代スポンサー補填",
			"ecosystem_fund":           "エコシステム整備基金",
			"admin_reserve":            "管理・予備費",
		},
		Item:              "項目",
		AnnualTotal:       "年間合計",
		MonthFormat:       "%d月",
		PersonalInflation: "個人インフレ報酬 (GLS)",
		PersonalTx:        "個人tx手数料報酬 (GLS)",
		PersonalTotal:     "個人合計報酬 (GLS)",
		RateInflation:     "個人ARP (インフレ%)",
		RateTx:            "個人ARP (tx手数料%)",
		RateTotal:         "個人ARP (合計%)",
		Price:             "月次価格 (USD)",
		ValidatorTotal:    "バリデータ全体報酬 (GLS)",
		TotalTokens:       "分配合計 (GLS)",
		TotalUSD:          "分配合計 (USD)",
		TokenUnit:         "(GLS)",
	},
}

// Parse maps a user-supplied locale name to a Locale, defaulting to English.
func Parse(s string) Locale {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ja", "jp", "japanese":
		return Japanese
	default:
		return English
	}
}

// All returns every supported locale.
func All() []Locale {
	return []Locale{English, Japanese}
}

// Next returns the locale following l, wrapping around.
func Next(l Locale) Locale {
	if l == English {
		return Japanese
	}
	return English
}

// For returns the label set for l.
func For(l Locale) Text {
	if t, ok := texts[l]; ok {
		return t
	}
	return texts[English]
}

// Month returns the label of the 1-based month m.
func (t Text) Month(m int) string {
	return fmt.Sprintf(t.MonthFormat, m)
}

// Field returns the label of a parameter key, or the key itself.
func (t Text) Field(key string) string {
	if label, ok := t.Fields[key]; ok {
		return label
	}
	return key
}

// Role returns the display name of a role key, or the key itself for
// roles outside the default design.
func (t Text) Role(role string) string {
	if label, ok := t.Roles[role]; ok {
		return label
	}
	return role
}
