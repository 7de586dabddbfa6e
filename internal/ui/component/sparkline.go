package component

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/gls-tokenomics/internal/ui/style"
)

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline represents a mini graph component for showing price trends
type Sparkline struct {
	data     []float64
	style    lipgloss.Style
	showText bool
}

// NewSparkline creates a new sparkline component
func NewSparkline() *Sparkline {
	return &Sparkline{
		style: lipgloss.NewStyle().Foreground(style.DefaultPalette().Primary),
	}
}

// SetData sets the data points for the sparkline
func (s *Sparkline) SetData(data []float64) *Sparkline {
	s.data = append(s.data[:0:0], data...)
	return s
}

// SetStyle sets the lipgloss style for the sparkline
func (s *Sparkline) SetStyle(st lipgloss.Style) *Sparkline {
	s.style = st
	return s
}

// ShowText enables/disables the trend and range suffix
func (s *Sparkline) ShowText(show bool) *Sparkline {
	s.showText = show
	return s
}

// Blocks returns one spark character per data point, unstyled.
func (s *Sparkline) Blocks() string {
	if len(s.data) == 0 {
		return ""
	}

	lo, hi := s.minMax()
	if lo == hi {
		return strings.Repeat("▄", len(s.data))
	}

	var b strings.Builder
	for _, v := range s.data {
		idx := int(math.Round((v - lo) / (hi - lo) * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteRune(sparkChars[idx])
	}
	return b.String()
}

// View renders the sparkline
func (s *Sparkline) View() string {
	out := s.style.Render(s.Blocks())
	if !s.showText || len(s.data) == 0 {
		return out
	}
	lo, hi := s.minMax()
	return fmt.Sprintf("%s %s %.4f..%.4f (%+.2f%%)", out, s.Trend(), lo, hi, s.ChangePercent())
}

// Trend returns an arrow for the overall direction of the data
func (s *Sparkline) Trend() string {
	change := s.ChangePercent()
	switch {
	case len(s.data) < 2 || math.Abs(change) < 0.1:
		return "→"
	case change > 0:
		return "↗"
	default:
		return "↘"
	}
}

// ChangePercent returns the percentage change from first to last data point
func (s *Sparkline) ChangePercent() float64 {
	if len(s.data) < 2 || s.data[0] == 0 {
		return 0
	}
	first, last := s.data[0], s.data[len(s.data)-1]
	return (last - first) / first * 100
}

func (s *Sparkline) minMax() (float64, float64) {
	lo, hi := s.data[0], s.data[0]
	for _, v := range s.data[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
