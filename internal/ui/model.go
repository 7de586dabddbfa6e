// Package ui is an interactive terminal viewer for projection reports.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/gls-tokenomics/internal/config"
	"github.com/rovshanmuradov/gls-tokenomics/internal/export"
	"github.com/rovshanmuradov/gls-tokenomics/internal/locale"
	"github.com/rovshanmuradov/gls-tokenomics/internal/pricecurve"
	"github.com/rovshanmuradov/gls-tokenomics/internal/projection"
	"github.com/rovshanmuradov/gls-tokenomics/internal/report"
	"github.com/rovshanmuradov/gls-tokenomics/internal/ui/style"
)

// Options configures a Model.
type Options struct {
	Locale   locale.Locale
	Exporter *export.FileExporter
	Export   export.Options
	Styles   *style.ReportStyles
	Logger   *zap.Logger
}

// Model shows one projection at a time and re-runs it when the pattern,
// the compounding flag or the random draw changes.
type Model struct {
	engine *projection.Engine
	cfg    config.Config
	loc    locale.Locale

	exporter   *export.FileExporter
	exportOpts export.Options
	logger     *zap.Logger

	keys     KeyMap
	help     help.Model
	viewport viewport.Model
	styles   style.ReportStyles

	result *projection.Result
	report report.Report
	err    error
	status string

	ready  bool
	width  int
	height int
}

// NewModel creates a viewer and runs the first projection for cfg.
func NewModel(engine *projection.Engine, cfg config.Config, opts Options) Model {
	styles := style.NewReportStyles(style.DefaultPalette())
	if opts.Styles != nil {
		styles = *opts.Styles
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	m := Model{
		engine:     engine,
		cfg:        cfg.Clone(),
		loc:        locale.Parse(string(opts.Locale)),
		exporter:   opts.Exporter,
		exportOpts: opts.Export,
		logger:     logger,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		styles:     styles,
	}
	m.run()
	return m
}

// Config returns the configuration of the current projection.
func (m Model) Config() config.Config {
	return m.cfg.Clone()
}

// Locale returns the label language in use.
func (m Model) Locale() locale.Locale {
	return m.loc
}

// Result returns the current projection, or nil after a failed run.
func (m Model) Result() *projection.Result {
	return m.result
}

// Err returns the error of the last run.
func (m Model) Err() error {
	return m.err
}

// Status returns the last status message.
func (m Model) Status() string {
	return m.status
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case ExportedMsg:
		if msg.Err != nil {
			m.status = "export failed: " + msg.Err.Error()
			m.logger.Error("Export failed", zap.Error(msg.Err))
		} else {
			m.status = fmt.Sprintf("exported %d file(s) to %s", len(msg.Paths), m.exportOpts.OutputDir)
		}
		m.layout()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Rerun):
			// a seed only pins the first draw
			m.cfg.Seed = 0
			m.run()
			return m, nil

		case key.Matches(msg, m.keys.Pattern):
			m.cfg.PricePattern = pricecurve.Next(m.cfg.PricePattern)
			m.run()
			return m, nil

		case key.Matches(msg, m.keys.Compound):
			m.cfg.CompoundStaking = !m.cfg.CompoundStaking
			m.run()
			return m, nil

		case key.Matches(msg, m.keys.Locale):
			m.loc = locale.Next(m.loc)
			m.rebuild()
			return m, nil

		case key.Matches(msg, m.keys.Export):
			return m, m.exportCmd()

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.layout()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) run() {
	res, err := m.engine.Run(m.cfg)
	if err != nil {
		m.err = err
		m.result = nil
		m.logger.Warn("Projection failed", zap.Error(err))
	} else {
		m.err = nil
		m.result = res
		m.status = ""
	}
	m.rebuild()
}

func (m *Model) rebuild() {
	if m.result != nil {
		m.report = report.Build(m.result, m.loc)
	}
	if m.ready {
		m.viewport.SetContent(m.content())
	}
}

func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	bodyHeight := max(1, m.height-lipgloss.Height(m.headerView())-lipgloss.Height(m.footerView()))
	if !m.ready {
		m.viewport = viewport.New(m.width, bodyHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = bodyHeight
	}
	m.viewport.SetContent(m.content())
}

func (m Model) content() string {
	if m.err != nil {
		return m.styles.Error.Render("Projection failed: " + m.err.Error())
	}
	if m.result == nil {
		return ""
	}
	return export.RenderStyled(m.report.Params, m.report.Table, m.report.Prices, m.styles)
}

func (m Model) exportCmd() tea.Cmd {
	if m.exporter == nil || len(m.exportOpts.Formats) == 0 || m.result == nil {
		return func() tea.Msg {
			return ExportedMsg{Err: fmt.Errorf("export is not configured")}
		}
	}
	exporter, rep, opts := m.exporter, m.report, m.exportOpts
	return func() tea.Msg {
		paths, err := exporter.Export(context.Background(), rep, opts)
		return ExportedMsg{Paths: paths, Err: err}
	}
}

func (m Model) headerView() string {
	compound := "off"
	if m.cfg.CompoundStaking {
		compound = "on"
	}
	parts := []string{
		"pattern: " + string(m.cfg.PricePattern),
		"compound: " + compound,
		"locale: " + string(m.loc),
	}
	if m.result != nil {
		parts = append(parts, "run: "+shortID(m.result.RunID))
	}
	return m.styles.Title.Render("GLS tokenomics") + "  " + m.styles.Muted.Render(strings.Join(parts, " · "))
}

func (m Model) footerView() string {
	footer := m.help.View(m.keys)
	if m.status != "" {
		footer = m.styles.Status.Render(m.status) + "\n" + footer
	}
	return footer
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), m.viewport.View(), m.footerView())
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
