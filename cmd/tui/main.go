package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/gls-tokenomics/internal/config"
	"github.com/rovshanmuradov/gls-tokenomics/internal/export"
	"github.com/rovshanmuradov/gls-tokenomics/internal/locale"
	"github.com/rovshanmuradov/gls-tokenomics/internal/logger"
	"github.com/rovshanmuradov/gls-tokenomics/internal/projection"
	"github.com/rovshanmuradov/gls-tokenomics/internal/ui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	_ = godotenv.Load()

	fs := pflag.NewFlagSet("tokenomics-tui", pflag.ContinueOnError)
	configPath := fs.String("config", "", "config file (json, yaml or toml)")
	config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	settings, err := config.LoadSettings(*configPath, fs)
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	formats, err := export.ParseFormats(settings.Formats)
	if err != nil {
		return err
	}

	// The screen belongs to the viewer, so logs only go to a file.
	logCfg := logger.DefaultConfig()
	logCfg.Debug = settings.DebugLogging
	logCfg.LogFile = settings.LogFile
	if logCfg.LogFile == "" {
		logCfg.LogFile = config.DefaultLogFile
	}
	appLogger, err := logger.NewFileOnly(logCfg)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer func() {
		_ = logger.Sync(appLogger)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	cfg, err := config.NewSource(settings, appLogger).Load(ctx)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to load parameters: %w", err)
	}

	appLogger.Info("Starting tokenomics viewer", zap.String("pattern", string(cfg.PricePattern)))

	engine := projection.NewEngine(appLogger)
	opts := ui.Options{
		Locale:   locale.Parse(settings.Locale),
		Exporter: export.NewFileExporter(appLogger),
		Export:   export.Options{Formats: formats, OutputDir: settings.OutputDir},
		Logger:   appLogger,
	}

	handler := ui.NewRecoveryHandler(appLogger, func() (tea.Model, []tea.ProgramOption) {
		return ui.NewModel(engine, cfg, opts), []tea.ProgramOption{
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
		}
	})
	if err := handler.RunWithRecovery(); err != nil {
		appLogger.Error("Viewer stopped with error", zap.Error(err))
		return err
	}

	appLogger.Info("Viewer closed")
	return nil
}
