package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/gls-tokenomics/internal/config"
	"github.com/rovshanmuradov/gls-tokenomics/internal/export"
	"github.com/rovshanmuradov/gls-tokenomics/internal/locale"
	"github.com/rovshanmuradov/gls-tokenomics/internal/logger"
	"github.com/rovshanmuradov/gls-tokenomics/internal/projection"
	"github.com/rovshanmuradov/gls-tokenomics/internal/report"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	// .env is optional
	_ = godotenv.Load()

	fs := pflag.NewFlagSet("tokenomics", pflag.ContinueOnError)
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

	logCfg := logger.DefaultConfig()
	logCfg.Debug = settings.DebugLogging
	logCfg.LogFile = settings.LogFile
	appLogger, err := logger.New(logCfg)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer func() {
		_ = logger.Sync(appLogger)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewSource(settings, appLogger).Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load parameters: %w", err)
	}

	res, err := projection.NewEngine(appLogger).Run(cfg)
	if err != nil {
		return err
	}
	rep := report.Build(res, locale.Parse(settings.Locale))

	var writer export.Writer = export.NewTSVWriter(os.Stdout)
	if settings.Style == config.StyleTable {
		writer = export.NewStyledWriter(os.Stdout).WithPrices(rep.Prices)
	}
	if err := writer.WriteReport(rep.Params, rep.Table); err != nil {
		return err
	}

	if len(formats) == 0 {
		return nil
	}
	paths, err := export.NewFileExporter(appLogger).Export(ctx, rep, export.Options{
		Formats:   formats,
		OutputDir: settings.OutputDir,
	})
	if err != nil {
		appLogger.Error("Export failed", zap.Error(err))
		return err
	}
	for _, p := range paths {
		appLogger.Debug("Wrote report file", zap.String("path", p))
	}
	return nil
}
