package style

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Cyan    = lipgloss.Color("#00E5FF") // Primary highlight
	Magenta = lipgloss.Color("#FF1B6B") // Accent
	Yellow  = lipgloss.Color("#FFB500") // Warnings
	Green   = lipgloss.Color("#2AFFAA") // Success
	Red     = lipgloss.Color("#FF5555") // Errors

	Base01 = lipgloss.Color("#6C7280") // Muted text
	Base2  = lipgloss.Color("#ECEFF4") // Primary text
)

// Palette provides a centralized color management
type Palette struct {
	Primary   lipgloss.Color
	Accent    lipgloss.Color
	Success   lipgloss.Color
	Error     lipgloss.Color
	Warning   lipgloss.Color
	Text      lipgloss.Color
	TextMuted lipgloss.Color
}

// DefaultPalette returns the default color palette
func DefaultPalette() Palette {
	return Palette{
		Primary:   Cyan,
		Accent:    Magenta,
		Success:   Green,
		Error:     Red,
		Warning:   Yellow,
		Text:      Base2,
		TextMuted: Base01,
	}
}

// Styles are the prompt styles derived from a palette.
type Styles struct {
	Title lipgloss.Style
	Label lipgloss.Style
	Value lipgloss.Style
	Help  lipgloss.Style
	Error lipgloss.Style
	Input lipgloss.Style
}

// NewStyles builds the prompt styles for p.
func NewStyles(p Palette) Styles {
	return Styles{
		Title: lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		Label: lipgloss.NewStyle().Foreground(p.TextMuted),
		Value: lipgloss.NewStyle().Foreground(p.Text).Bold(true),
		Help:  lipgloss.NewStyle().Foreground(p.TextMuted).Italic(true),
		Error: lipgloss.NewStyle().Foreground(p.Error),
		Input: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent),
	}
}
