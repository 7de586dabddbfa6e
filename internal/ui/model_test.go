package ui

import (
	"math/rand/v2"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/gls-tokenomics/internal/config"
	"github.com/rovshanmuradov/gls-tokenomics/internal/export"
	"github.com/rovshanmuradov/gls-tokenomics/internal/locale"
	"github.com/rovshanmuradov/gls-tokenomics/internal/pricecurve"
	"github.com/rovshanmuradov/gls-tokenomics/internal/projection"
	"github.com/rovshanmuradov/gls-tokenomics/internal/ui/style"
)

func newTestModel(t *testing.T, cfg config.Config, opts Options) Model {
	t.Helper()
	engine := projection.NewEngine(zap.NewNop(), projection.WithRand(rand.New(rand.NewPCG(1, 2))))
	plain := style.Plain()
	opts.Styles = &plain
	return NewModel(engine, cfg, opts)
}

func linearConfig() config.Config {
	cfg := config.Defaults()
	cfg.PricePattern = pricecurve.Linear
	return cfg
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestNewModelRunsProjection(t *testing.T) {
	m := newTestModel(t, linearConfig(), Options{})

	require.NoError(t, m.Err())
	require.NotNil(t, m.Result())
	assert.Equal(t, pricecurve.Linear, m.Result().Config.PricePattern)
	assert.Equal(t, locale.English, m.Locale())
	assert.Equal(t, "Initializing...", m.View())
}

func TestViewAfterResize(t *testing.T) {
	m := newTestModel(t, linearConfig(), Options{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 220, Height: 60})

	view := m.View()
	assert.Contains(t, view, "GLS tokenomics")
	assert.Contains(t, view, "pattern: linear")
	assert.Contains(t, view, "compound: on")
	assert.Contains(t, view, locale.For(locale.English).ParamsTitle)
	assert.Contains(t, view, "quit")
}

func TestCyclePattern(t *testing.T) {
	m := newTestModel(t, linearConfig(), Options{})

	for _, want := range []pricecurve.Pattern{pricecurve.U, pricecurve.InverseU, pricecurve.Random, pricecurve.Linear} {
		m, _ = update(t, m, keyPress('p'))
		require.NoError(t, m.Err())
		assert.Equal(t, want, m.Config().PricePattern)
		assert.Equal(t, want, m.Result().Config.PricePattern)
	}
}

func TestToggleCompounding(t *testing.T) {
	m := newTestModel(t, linearConfig(), Options{})
	compounded := m.Result().Accrual.AnnualTotal

	m, _ = update(t, m, keyPress('c'))
	assert.False(t, m.Config().CompoundStaking)
	assert.Less(t, m.Result().Accrual.AnnualTotal, compounded)

	m, _ = update(t, m, keyPress('c'))
	assert.True(t, m.Config().CompoundStaking)
	assert.InDelta(t, compounded, m.Result().Accrual.AnnualTotal, 1e-9)
}

func TestToggleLocaleKeepsRun(t *testing.T) {
	m := newTestModel(t, linearConfig(), Options{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 220, Height: 60})
	runID := m.Result().RunID

	m, _ = update(t, m, keyPress('l'))
	assert.Equal(t, locale.Japanese, m.Locale())
	assert.Equal(t, runID, m.Result().RunID)
	assert.Contains(t, m.View(), locale.For(locale.Japanese).ParamsTitle)
}

func TestRerunClearsSeed(t *testing.T) {
	cfg := config.Defaults()
	cfg.Seed = 42
	m := newTestModel(t, cfg, Options{})
	first := m.Result().RunID

	m, _ = update(t, m, keyPress('r'))
	assert.Zero(t, m.Config().Seed)
	assert.NotEqual(t, first, m.Result().RunID)
}

func TestInvalidConfigShowsError(t *testing.T) {
	cfg := linearConfig()
	cfg.UserStake = -1
	m := newTestModel(t, cfg, Options{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.ErrorIs(t, m.Err(), config.ErrInvalidValue)
	assert.Nil(t, m.Result())
	assert.Contains(t, m.View(), "Projection failed")
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, linearConfig(), Options{})
	_, cmd := update(t, m, keyPress('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel(t, linearConfig(), Options{
		Exporter: export.NewFileExporter(zap.NewNop()),
		Export:   export.Options{Formats: []export.Format{export.FormatJSON}, OutputDir: dir},
	})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 220, Height: 60})

	_, cmd := update(t, m, keyPress('e'))
	require.NotNil(t, cmd)
	msg, ok := cmd().(ExportedMsg)
	require.True(t, ok)
	require.NoError(t, msg.Err)
	require.Len(t, msg.Paths, 1)

	m, _ = update(t, m, msg)
	assert.Equal(t, "exported 1 file(s) to "+dir, m.Status())
}

func TestExportNotConfigured(t *testing.T) {
	m := newTestModel(t, linearConfig(), Options{})

	_, cmd := update(t, m, keyPress('e'))
	require.NotNil(t, cmd)
	msg, ok := cmd().(ExportedMsg)
	require.True(t, ok)
	assert.Error(t, msg.Err)

	m, _ = update(t, m, msg)
	assert.Contains(t, m.Status(), "export failed")
}
