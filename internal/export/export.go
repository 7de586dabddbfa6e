// Package export writes projection reports to the console and to files.
package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rovshanmuradov/gls-tokenomics/internal/report"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Format represents the export file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// ParseFormats validates format names. Duplicates are dropped and "yml" is
// accepted for YAML.
func ParseFormats(names []string) ([]Format, error) {
	seen := make(map[Format]bool, len(names))
	var formats []Format
	for _, name := range names {
		f := Format(strings.ToLower(strings.TrimSpace(name)))
		if f == "yml" {
			f = FormatYAML
		}
		switch f {
		case FormatCSV, FormatJSON, FormatYAML:
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
		}
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	return formats, nil
}

// Options configures the export behavior
type Options struct {
	Formats   []Format
	OutputDir string
}

// FileExporter writes reports to files, one per requested format.
type FileExporter struct {
	logger *zap.Logger
}

// NewFileExporter creates a new file exporter
func NewFileExporter(logger *zap.Logger) *FileExporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileExporter{logger: logger}
}

// Document is the JSON and YAML shape of an exported report.
type Document struct {
	RunID       string         `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time      `json:"generated_at" yaml:"generated_at"`
	Locale      string         `json:"locale" yaml:"locale"`
	Pattern     string         `json:"price_pattern" yaml:"price_pattern"`
	Prices      []float64      `json:"prices" yaml:"prices"`
	Summary     report.Summary `json:"summary" yaml:"summary"`
	Params      report.Rows    `json:"params" yaml:"params"`
	Table       report.Rows    `json:"table" yaml:"table"`
}

// NewDocument wraps rep for serialization.
func NewDocument(rep report.Report) Document {
	return Document{
		RunID:       rep.RunID,
		GeneratedAt: rep.GeneratedAt,
		Locale:      string(rep.Locale),
		Pattern:     string(rep.Pattern),
		Prices:      rep.Prices,
		Summary:     rep.Summary,
		Params:      rep.Params,
		Table:       rep.Table,
	}
}

// Export writes rep in every requested format and returns the written
// paths in the order of opts.Formats.
func (fe *FileExporter) Export(ctx context.Context, rep report.Report, opts Options) ([]string, error) {
	if len(opts.Formats) == 0 {
		return nil, nil
	}
	if opts.OutputDir == "" {
		return nil, errors.New("output directory is required")
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := make([]string, len(opts.Formats))
	g, ctx := errgroup.WithContext(ctx)
	for i, format := range opts.Formats {
		path := filepath.Join(opts.OutputDir, Filename(rep, format))
		paths[i] = path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return writeFile(path, format, rep)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	fe.logger.Info("Report exported",
		zap.String("run_id", rep.RunID),
		zap.Strings("files", paths))

	return paths, nil
}

// Filename builds tokenomics_<pattern>_<timestamp>_<run>.<ext>.
func Filename(rep report.Report, format Format) string {
	pattern := string(rep.Pattern)
	if pattern == "" {
		pattern = "flat"
	}
	name := fmt.Sprintf("tokenomics_%s_%s", pattern, rep.GeneratedAt.Format("20060102_150405"))
	if id := rep.RunID; len(id) >= 8 {
		name += "_" + id[:8]
	}
	return name + "." + string(format)
}

func writeFile(path string, format Format, rep report.Report) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s file: %w", format, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s file: %w", format, cerr)
		}
	}()

	switch format {
	case FormatCSV:
		return writeCSV(file, rep)
	case FormatJSON:
		encoder := json.NewEncoder(file)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(NewDocument(rep)); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
	case FormatYAML:
		encoder := yaml.NewEncoder(file)
		encoder.SetIndent(2)
		if err := encoder.Encode(NewDocument(rep)); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return nil
}

// writeCSV writes the parameter block followed by the table, the same
// layout the report has in a spreadsheet.
func writeCSV(file *os.File, rep report.Report) error {
	writer := csv.NewWriter(file)
	for _, rows := range []report.Rows{rep.Params, rep.Table} {
		if err := writer.WriteAll(rows.Strings()); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
	}
	return nil
}
