package dashboard

import "github.com/charmbracelet/lipgloss"

// Dashboard color palette
const (
	ColorBorder = lipgloss.Color("#2A2A4A")

	// Semantic colors for battery levels
	ColorHealthy  = lipgloss.Color("#39FF14") // Neon green
	ColorWarning  = lipgloss.Color("#FFAA00") // Electric amber
	ColorCritical = lipgloss.Color("#FF0055") // Hot red-pink

	// Text colors
	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")

	// Accent colors
	ColorAccent = lipgloss.Color("#FF2E97") // Neon pink
	ColorGraph  = lipgloss.Color("#00FFFF") // Neon cyan
)

// Battery level thresholds: below WarnBelow the bar turns amber, below
// CriticalBelow it turns red. Power levels run the other way from CPU-style
// metrics: low is bad.
const (
	WarnBelow     = 60.0
	CriticalBelow = 30.0
)

// Base styles for the dashboard
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			MarginRight(1)

	CardTitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	StaleStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	UnavailableStyle = lipgloss.NewStyle().
				Foreground(ColorCritical).
				Bold(true)
)

// Mode badge colors: the faster the poll, the hotter the color.
var modeColors = map[string]lipgloss.Color{
	"PERFORMANCE": ColorCritical,
	"BALANCED":    ColorWarning,
	"ECO":         ColorHealthy,
}

// ModeStyle returns the style for a power mode badge.
func ModeStyle(mode string) lipgloss.Style {
	color, ok := modeColors[mode]
	if !ok {
		color = ColorTextSecondary
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true)
}

// LevelColor returns the color for a battery-style percentage where
// high is good and low is critical.
func LevelColor(percent float64) lipgloss.Color {
	switch {
	case percent < CriticalBelow:
		return ColorCritical
	case percent < WarnBelow:
		return ColorWarning
	default:
		return ColorHealthy
	}
}

// LevelStyle returns a style with the appropriate color for the level.
func LevelStyle(percent float64) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(LevelColor(percent))
}
