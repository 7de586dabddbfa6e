package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/rovshanmuradov/gls-tokenomics/internal/locale"
)

// EnvPrefix is prepended to every environment override, e.g.
// TOKENOMICS_PRICE_PATTERN=linear.
const EnvPrefix = "TOKENOMICS"

// Output styles of the console runner.
const (
	StyleTSV   = "tsv"
	StyleTable = "table"
)

const (
	DefaultRetries = 3
	DefaultLogFile = "logs/tokenomics.log"
)

// Settings wraps the simulation parameters with the runner options that
// decide where parameters come from and where the report goes.
type Settings struct {
	Config `mapstructure:",squash"`

	Locale       string   `mapstructure:"locale"`
	Style        string   `mapstructure:"style"`
	OutputDir    string   `mapstructure:"output_dir"`
	Formats      []string `mapstructure:"formats"`
	SheetPath    string   `mapstructure:"sheet_path"`
	SheetURL     string   `mapstructure:"sheet_url"`
	Retries      int      `mapstructure:"retries"`
	DebugLogging bool     `mapstructure:"debug_logging"`
	LogFile      string   `mapstructure:"log_file"`
}

// flagKeys maps command line flag names onto configuration keys.
var flagKeys = map[string]string{
	"initial-supply":      "initial_supply",
	"initial-price":       "initial_token_price",
	"final-price":         "final_token_price",
	"pattern":             "price_pattern",
	"inflation":           "annual_inflation_rate",
	"participation":       "staking_participation_rate",
	"stake":               "user_stake",
	"compound":            "compound_staking",
	"tx-per-month":        "tx_per_month",
	"avg-per-tx":          "avg_gls_per_tx",
	"validator-fee-ratio": "gls_to_validator_ratio",
	"seed":                "seed",
	"locale":              "locale",
	"style":               "style",
	"output-dir":          "output_dir",
	"format":              "formats",
	"sheet":               "sheet_path",
	"sheet-url":           "sheet_url",
	"retries":             "retries",
	"debug":               "debug_logging",
	"log-file":            "log_file",
}

// RegisterFlags adds the parameter and runner flags to fs. Flags that are
// not set on the command line never override file or env values.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Defaults()
	fs.Float64("initial-supply", d.InitialSupply, "initial token supply (GLS)")
	fs.Float64("initial-price", d.InitialTokenPrice, "token price in month 1 (USD)")
	fs.Float64("final-price", d.FinalTokenPrice, "token price in month 12 (USD)")
	fs.String("pattern", string(d.PricePattern), "price pattern: linear, u, inverse_u, random")
	fs.Float64("inflation", d.AnnualInflationRate, "annual inflation rate (fraction)")
	fs.Float64("participation", d.StakingParticipationRate, "staking participation rate (fraction)")
	fs.Float64("stake", d.UserStake, "tracked staker's initial stake (GLS)")
	fs.Bool("compound", d.CompoundStaking, "reinvest monthly rewards into the stake")
	fs.Float64("tx-per-month", d.TxPerMonth, "transactions per month")
	fs.Float64("avg-per-tx", d.AvgTokensPerTx, "average GLS per transaction")
	fs.Float64("validator-fee-ratio", d.ValidatorFeeRatio, "validator share of transaction fees")
	fs.Uint64("seed", 0, "seed for the random price pattern (0 = unseeded)")
	fs.String("locale", string(locale.English), "report labels: en or ja")
	fs.String("style", StyleTSV, "console output style: tsv or table")
	fs.String("output-dir", "", "directory for exported report files")
	fs.StringSlice("format", nil, "export formats: csv, json, yaml")
	fs.String("sheet", "", "two-column parameter sheet (csv or tsv)")
	fs.String("sheet-url", "", "URL of a published two-column parameter sheet")
	fs.Int("retries", DefaultRetries, "fetch attempts for --sheet-url")
	fs.Bool("debug", false, "enable debug logging")
	fs.String("log-file", "", "write JSON logs to this file (rotated)")
}

// LoadSettings reads settings from an optional config file (json, yaml or
// toml), environment variables and flags, in increasing precedence.
func LoadSettings(path string, fs *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := bindFlags(v, fs); err != nil {
			return nil, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config error: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("%w: unmarshal error: %w", ErrMalformedNumber, err)
	}
	s.normalize()

	return &s, nil
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	ratios := make([]map[string]interface{}, 0, len(d.DistributionRatios))
	for _, rr := range d.DistributionRatios {
		ratios = append(ratios, map[string]interface{}{"role": rr.Role, "ratio": rr.Ratio})
	}

	defaults := map[string]interface{}{
		"initial_supply":             d.InitialSupply,
		"initial_token_price":        d.InitialTokenPrice,
		"final_token_price":          d.FinalTokenPrice,
		"price_pattern":              string(d.PricePattern),
		"annual_inflation_rate":      d.AnnualInflationRate,
		"staking_participation_rate": d.StakingParticipationRate,
		"user_stake":                 d.UserStake,
		"compound_staking":           d.CompoundStaking,
		"tx_per_month":               d.TxPerMonth,
		"avg_gls_per_tx":             d.AvgTokensPerTx,
		"gls_to_validator_ratio":     d.ValidatorFeeRatio,
		"distribution_ratios":        ratios,
		"seed":                       0,
		"locale":                     string(locale.English),
		"style":                      StyleTSV,
		"output_dir":                 "",
		"formats":                    []string{},
		"sheet_path":                 "",
		"sheet_url":                  "",
		"retries":                    DefaultRetries,
		"debug_logging":              false,
		"log_file":                   "",
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

func (s *Settings) normalize() {
	s.Locale = string(locale.Parse(s.Locale))
	s.Style = strings.ToLower(strings.TrimSpace(s.Style))
	if s.Style != StyleTable {
		s.Style = StyleTSV
	}
	if s.Retries <= 0 {
		s.Retries = DefaultRetries
	}
	formats := s.Formats[:0]
	for _, f := range s.Formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			formats = append(formats, f)
		}
	}
	s.Formats = formats
}

// Validate checks runner options that would otherwise fail late.
func (s *Settings) Validate() error {
	if s.SheetPath != "" && s.SheetURL != "" {
		return errors.New("sheet_path and sheet_url are mutually exclusive")
	}
	if len(s.Formats) > 0 && s.OutputDir == "" {
		return errors.New("output_dir is required when export formats are set")
	}
	return nil
}
