package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// Source supplies the parameters of one projection run.
type Source interface {
	Load(ctx context.Context) (Config, error)
}

// StaticSource returns a fixed parameter set, such as the built-in
// defaults or a config already resolved by LoadSettings.
type StaticSource struct {
	Config Config
}

// DefaultsSource returns the built-in parameter set.
func DefaultsSource() StaticSource {
	return StaticSource{Config: Defaults()}
}

func (s StaticSource) Load(context.Context) (Config, error) {
	return s.Config.Clone(), nil
}

// FileSource resolves parameters from a config file, the environment and
// command line flags.
type FileSource struct {
	Path  string
	Flags *pflag.FlagSet
}

func (s FileSource) Load(context.Context) (Config, error) {
	settings, err := LoadSettings(s.Path, s.Flags)
	if err != nil {
		return Config{}, err
	}
	return settings.Config, nil
}

// SheetSource reads a labelled two-column sheet exported as CSV or TSV.
// Cells the sheet leaves blank fall back to Base, or to the defaults when
// Base is unset.
type SheetSource struct {
	Path   string
	Base   Config
	Logger *zap.Logger
}

func (s SheetSource) Load(context.Context) (Config, error) {
	file, err := os.Open(filepath.Clean(s.Path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to open sheet: %w", err)
	}
	defer file.Close()

	cfg, err := ParseSheet(file, sheetBase(s.Base))
	if err != nil {
		return Config{}, err
	}

	if s.Logger != nil {
		s.Logger.Debug("Parameters loaded from sheet",
			zap.String("path", s.Path),
			zap.Int("roles", len(cfg.DistributionRatios)))
	}
	return cfg, nil
}

// NewSource picks the parameter source the settings ask for: a remote
// sheet, a local sheet, or the already resolved file/env/flag values.
// Sheets are applied on top of the resolved values.
func NewSource(s *Settings, logger *zap.Logger) Source {
	switch {
	case s.SheetURL != "":
		return &RemoteSheetSource{
			URL:     s.SheetURL,
			Base:    s.Config.Clone(),
			Retries: s.Retries,
			Logger:  logger,
		}
	case s.SheetPath != "":
		return SheetSource{Path: s.SheetPath, Base: s.Config.Clone(), Logger: logger}
	default:
		return StaticSource{Config: s.Config}
	}
}
