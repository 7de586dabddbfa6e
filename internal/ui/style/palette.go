package style

import "github.com/charmbracelet/lipgloss"

var (
	Cyan    = lipgloss.Color("#00E5FF")
	Magenta = lipgloss.Color("#FF1B6B")
	Yellow  = lipgloss.Color("#FFB500")
	Green   = lipgloss.Color("#2AFFAA")
	Red     = lipgloss.Color("#FF5555")
	Blue    = lipgloss.Color("#3B82F6")

	Base03 = lipgloss.Color("#1B1D23") // background
	Base01 = lipgloss.Color("#6C7280") // muted text
	Base2  = lipgloss.Color("#ECEFF4") // primary text
	Base1  = lipgloss.Color("#B4BCC8") // secondary text
)

// Palette provides a centralized color management
type Palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Error     lipgloss.Color
	Warning   lipgloss.Color
	Info      lipgloss.Color

	Background    lipgloss.Color
	Text          lipgloss.Color
	TextMuted     lipgloss.Color
	TextSecondary lipgloss.Color
}

// DefaultPalette returns the default color palette
func DefaultPalette() Palette {
	return Palette{
		Primary:   Cyan,
		Secondary: Magenta,
		Success:   Green,
		Error:     Red,
		Warning:   Yellow,
		Info:      Blue,

		Background:    Base03,
		Text:          Base2,
		TextMuted:     Base01,
		TextSecondary: Base1,
	}
}

// ReportStyles groups the styles used to render a projection report.
type ReportStyles struct {
	Title     lipgloss.Style
	Header    lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Total     lipgloss.Style
	Muted     lipgloss.Style
	Border    lipgloss.Style
	Sparkline lipgloss.Style
	Error     lipgloss.Style
	Status    lipgloss.Style
}

// NewReportStyles creates report styles with the given palette
func NewReportStyles(palette Palette) ReportStyles {
	return ReportStyles{
		Title: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true).
			Margin(1, 0, 0, 0),

		Header: lipgloss.NewStyle().
			Foreground(palette.Secondary).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(palette.TextSecondary),

		Value: lipgloss.NewStyle().
			Foreground(palette.Text),

		Total: lipgloss.NewStyle().
			Foreground(palette.Success).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(palette.TextMuted),

		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted).
			Padding(0, 1),

		Sparkline: lipgloss.NewStyle().
			Foreground(palette.Primary),

		Error: lipgloss.NewStyle().
			Foreground(palette.Error).
			Bold(true),

		Status: lipgloss.NewStyle().
			Foreground(palette.Info),
	}
}

// Plain returns styles that render text unchanged.
func Plain() ReportStyles {
	s := lipgloss.NewStyle()
	return ReportStyles{
		Title: s, Header: s, Label: s, Value: s, Total: s,
		Muted: s, Border: s, Sparkline: s, Error: s, Status: s,
	}
}
