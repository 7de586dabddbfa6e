package component

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/gls-tokenomics/internal/ui/style"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableColumnWidthsCountDoubleWidth(t *testing.T) {
	tbl := NewTable().SetRows([][]string{
		{"項目", "1月"},
		{"Validator", "1736.11"},
	})

	assert.Equal(t, []int{9, 7}, tbl.ColumnWidths())

	tbl = NewTable().SetRows([][]string{{"バリデーター報酬", "1"}})
	assert.Equal(t, []int{16, 1}, tbl.ColumnWidths())
}

func TestTableViewAlignsRows(t *testing.T) {
	tbl := NewTable().
		SetStyles(style.Plain()).
		SetShowBorder(false).
		SetRows([][]string{
			{"項目", "Month 1", "Total"},
			{"Inflation", "1736.11", "20833.33"},
			{"", "", ""},
			{"Tx", "700", "8400"},
		}).
		Emphasize(3)

	view := tbl.View()
	lines := strings.Split(view, "\n")
	require.Len(t, lines, 5, "header, separator and three rows")

	width := lipgloss.Width(lines[0])
	for _, line := range lines {
		assert.Equal(t, width, lipgloss.Width(line), "line %q", line)
	}
	assert.Contains(t, lines[1], "┼")
	assert.Contains(t, lines[2], " Inflation ")
	assert.True(t, strings.HasSuffix(lines[4], " 8400 "), "numbers are right aligned: %q", lines[4])
}

func TestTableEmpty(t *testing.T) {
	assert.Equal(t, "", NewTable().View())
	assert.Nil(t, NewTable().ColumnWidths())
}

func TestSparklineBlocks(t *testing.T) {
	s := NewSparkline().SetData([]float64{1, 2, 3})
	assert.Equal(t, "▁▅█", s.Blocks())
	assert.Equal(t, "↗", s.Trend())
	assert.InDelta(t, 200.0, s.ChangePercent(), 1e-9)

	flat := NewSparkline().SetData([]float64{0.05, 0.05})
	assert.Equal(t, "▄▄", flat.Blocks())
	assert.Equal(t, "→", flat.Trend())

	down := NewSparkline().SetData([]float64{0.1, 0.05})
	assert.Equal(t, "↘", down.Trend())

	assert.Equal(t, "", NewSparkline().Blocks())
}

func TestSparklineText(t *testing.T) {
	s := NewSparkline().
		SetStyle(lipgloss.NewStyle()).
		ShowText(true).
		SetData([]float64{0.05, 0.1})

	assert.Equal(t, "▁█ ↗ 0.0500..0.1000 (+100.00%)", s.View())
}
