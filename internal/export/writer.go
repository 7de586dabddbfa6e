package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/rovshanmuradov/gls-tokenomics/internal/report"
	"github.com/rovshanmuradov/gls-tokenomics/internal/ui/component"
	"github.com/rovshanmuradov/gls-tokenomics/internal/ui/style"
)

// Writer renders the parameter block and the monthly table of a report.
type Writer interface {
	WriteReport(params, table report.Rows) error
}

// TSVWriter prints every row as one tab separated line.
type TSVWriter struct {
	w io.Writer
}

// NewTSVWriter creates a TSV writer on w
func NewTSVWriter(w io.Writer) *TSVWriter {
	return &TSVWriter{w: w}
}

func (t *TSVWriter) WriteReport(params, table report.Rows) error {
	for _, rows := range []report.Rows{params, table} {
		for _, row := range rows {
			if _, err := fmt.Fprintln(t.w, strings.Join(row.Strings(), "\t")); err != nil {
				return fmt.Errorf("failed to write row: %w", err)
			}
		}
	}
	return nil
}

// StyledWriter renders the report for a terminal: the parameter block as
// aligned label/value pairs, an optional price sparkline and the monthly
// table inside a border.
type StyledWriter struct {
	w      io.Writer
	styles style.ReportStyles
	prices []float64
}

// NewStyledWriter creates a styled writer using the default palette
func NewStyledWriter(w io.Writer) *StyledWriter {
	return &StyledWriter{
		w:      w,
		styles: style.NewReportStyles(style.DefaultPalette()),
	}
}

// WithStyles replaces the styles used for rendering
func (s *StyledWriter) WithStyles(st style.ReportStyles) *StyledWriter {
	s.styles = st
	return s
}

// WithPrices adds a sparkline of the monthly price curve above the table
func (s *StyledWriter) WithPrices(prices []float64) *StyledWriter {
	s.prices = append([]float64(nil), prices...)
	return s
}

func (s *StyledWriter) WriteReport(params, table report.Rows) error {
	if _, err := io.WriteString(s.w, RenderStyled(params, table, s.prices, s.styles)+"\n"); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// RenderStyled returns the styled rendering of a report. Single-cell rows
// of the parameter block are rendered as titles and split it into
// sections.
func RenderStyled(params, table report.Rows, prices []float64, st style.ReportStyles) string {
	var sections []string
	var block [][]string

	flush := func() {
		if len(block) == 0 {
			return
		}
		sections = append(sections, component.NewTable().
			SetStyles(st).
			SetShowBorder(false).
			SetHeaderRows(0).
			SetRows(block).
			View())
		block = nil
	}

	for _, row := range params {
		if len(row) == 1 {
			flush()
			if title := row.Label(); title != "" {
				sections = append(sections, st.Title.Render(title))
			}
			continue
		}
		block = append(block, row.Strings())
	}
	flush()

	if len(prices) > 0 {
		spark := component.NewSparkline().
			SetStyle(st.Sparkline).
			ShowText(true).
			SetData(prices)
		sections = append(sections, st.Muted.Render("price ")+spark.View())
	}

	if len(table) > 0 {
		tbl := component.NewTable().
			SetStyles(st).
			SetRows(table.Strings())
		if n := len(table); n >= 3 {
			tbl.Emphasize(n-2, n-1)
		}
		sections = append(sections, tbl.View())
	}

	return strings.Join(sections, "\n")
}
