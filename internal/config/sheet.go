package config

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rovshanmuradov/gls-tokenomics/internal/locale"
	"github.com/rovshanmuradov/gls-tokenomics/internal/pricecurve"
)

// ReadSheet parses a two-column label/value table. Comma and tab separated
// input are both accepted; rows with an empty label are skipped and later
// rows win over earlier ones.
func ReadSheet(r io.Reader) (map[string]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	if sniffTab(data) {
		reader.Comma = '\t'
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse sheet: %w", err)
	}

	cells := make(map[string]string, len(records))
	for _, record := range records {
		if len(record) == 0 {
			continue
		}
		label := normalizeLabel(record[0])
		if label == "" {
			continue
		}
		value := ""
		if len(record) > 1 {
			value = strings.TrimSpace(record[1])
		}
		cells[label] = value
	}
	return cells, nil
}

func sniffTab(data []byte) bool {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	return bytes.Count(line, []byte("\t")) > bytes.Count(line, []byte(","))
}

// normalizeLabel trims whitespace and the trailing colon the report's
// parameter block puts after every label, so an exported block can be fed
// back in as a sheet.
func normalizeLabel(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ":")
	return strings.TrimSpace(s)
}

// sheetField applies one labelled value to a Config.
type sheetField func(cfg *Config, label, raw string) error

var sheetFields = map[string]sheetField{
	locale.FieldInitialSupply:            numberField(func(c *Config) *float64 { return &c.InitialSupply }),
	locale.FieldInitialTokenPrice:        numberField(func(c *Config) *float64 { return &c.InitialTokenPrice }),
	locale.FieldFinalTokenPrice:          numberField(func(c *Config) *float64 { return &c.FinalTokenPrice }),
	locale.FieldAnnualInflationRate:      numberField(func(c *Config) *float64 { return &c.AnnualInflationRate }),
	locale.FieldStakingParticipationRate: numberField(func(c *Config) *float64 { return &c.StakingParticipationRate }),
	locale.FieldUserStake:                numberField(func(c *Config) *float64 { return &c.UserStake }),
	locale.FieldTxPerMonth:               numberField(func(c *Config) *float64 { return &c.TxPerMonth }),
	locale.FieldAvgTokensPerTx:           numberField(func(c *Config) *float64 { return &c.AvgTokensPerTx }),
	locale.FieldValidatorFeeRatio:        numberField(func(c *Config) *float64 { return &c.ValidatorFeeRatio }),
	locale.FieldPricePattern: func(c *Config, _ string, raw string) error {
		c.PricePattern = pricecurve.Pattern(raw)
		return nil
	},
	locale.FieldCompoundStaking: func(c *Config, _ string, raw string) error {
		c.CompoundStaking = ParseBool(raw)
		return nil
	},
}

func numberField(target func(*Config) *float64) sheetField {
	return func(c *Config, label, raw string) error {
		v, err := ParseNumber(raw)
		if err != nil {
			return fmt.Errorf("%w: %s = %q", ErrMalformedNumber, label, raw)
		}
		*target(c) = v
		return nil
	}
}

// ConfigFromSheet applies labelled cells on top of base. Labels are matched
// in every locale and as raw config keys. Missing or blank cells keep the
// base value, and fields the sheet has no label for (the seed) always do.
// Only the roles already in base are recognised as distribution rows.
func ConfigFromSheet(base Config, cells map[string]string) (Config, error) {
	cfg := base.Clone()

	for _, key := range locale.Fields() {
		label, raw, ok := lookupCell(cells, fieldLabels(key))
		if !ok {
			continue
		}
		if err := sheetFields[key](&cfg, label, raw); err != nil {
			return Config{}, err
		}
	}

	for i, rr := range cfg.DistributionRatios {
		label, raw, ok := lookupCell(cells, roleLabels(rr.Role))
		if !ok {
			continue
		}
		v, err := parseRatio(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s = %q", ErrMalformedNumber, label, raw)
		}
		cfg.DistributionRatios[i].Ratio = v
	}

	return cfg, nil
}

// ParseSheet reads a sheet and applies it on top of base.
func ParseSheet(r io.Reader, base Config) (Config, error) {
	cells, err := ReadSheet(r)
	if err != nil {
		return Config{}, err
	}
	return ConfigFromSheet(base, cells)
}

// sheetBase returns base, or the defaults when base was never set.
func sheetBase(base Config) Config {
	if base.InitialSupply == 0 && len(base.DistributionRatios) == 0 {
		return Defaults()
	}
	return base
}

func lookupCell(cells map[string]string, labels []string) (string, string, bool) {
	for _, label := range labels {
		if raw, ok := cells[label]; ok && raw != "" {
			return label, raw, true
		}
	}
	return "", "", false
}

func fieldLabels(key string) []string {
	labels := []string{key}
	for _, l := range locale.All() {
		labels = append(labels, locale.For(l).Field(key))
	}
	return labels
}

// roleLabels accepts the plain role name and the "name (%)" form used in
// the report's parameter block.
func roleLabels(role string) []string {
	names := []string{role}
	for _, l := range locale.All() {
		names = append(names, locale.For(l).Role(role))
	}
	labels := make([]string, 0, len(names)*2)
	for _, n := range names {
		labels = append(labels, n, n+" (%)")
	}
	return labels
}

// ParseNumber parses a numeric cell. Underscores and spaces are ignored.
// Commas are accepted only as thousands separators in the integer part, so
// a decimal comma such as "0,03" is rejected instead of read as 3.
func ParseNumber(raw string) (float64, error) {
	clean := strings.NewReplacer("_", "", " ", "").Replace(strings.TrimSpace(raw))
	if strings.Contains(clean, ",") {
		if !validGrouping(clean) {
			return 0, fmt.Errorf("comma is not a thousands separator in %q", raw)
		}
		clean = strings.ReplaceAll(clean, ",", "")
	}
	return strconv.ParseFloat(clean, 64)
}

// validGrouping reports whether every comma in s separates groups of three
// digits before the decimal point.
func validGrouping(s string) bool {
	s = strings.TrimLeft(s, "+-")
	intPart, _, _ := strings.Cut(s, ".")
	if strings.Contains(s[len(intPart):], ",") {
		return false
	}
	groups := strings.Split(intPart, ",")
	if len(groups[0]) == 0 || len(groups[0]) > 3 {
		return false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return false
		}
	}
	return true
}

// parseRatio accepts either a fraction (0.25) or a percentage (25%).
func parseRatio(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.HasSuffix(trimmed, "%") {
		v, err := ParseNumber(strings.TrimSuffix(trimmed, "%"))
		if err != nil {
			return 0, err
		}
		return v / 100, nil
	}
	return ParseNumber(trimmed)
}

// ParseBool treats only a case-insensitive "true" as true.
func ParseBool(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), "true")
}
