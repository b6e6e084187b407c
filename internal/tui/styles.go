package tui

import "github.com/charmbracelet/lipgloss"

// Color palette for the interactive search screen.
const (
	ColorLime     = "154" // Highlighted match, prompt accent
	ColorWhite    = "255" // Match titles
	ColorGray     = "245" // Match paths, secondary text
	ColorDarkGray = "238" // Separators, hints
	ColorRed      = "196" // Query errors
)

// Styles holds the lipgloss styles the search screen renders with.
type Styles struct {
	Prompt    lipgloss.Style
	Match     lipgloss.Style
	MatchPath lipgloss.Style
	Selected  lipgloss.Style
	Error     lipgloss.Style
	Hint      lipgloss.Style
	Count     lipgloss.Style
}

// DefaultStyles returns the colored style set.
func DefaultStyles() Styles {
	return Styles{
		Prompt:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorLime)),
		Match:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWhite)),
		MatchPath: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorLime)),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)),
		Hint:      lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
		Count:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
	}
}

// NoColorStyles returns an unstyled set for plain terminals.
func NoColorStyles() Styles {
	return Styles{
		Prompt:    lipgloss.NewStyle(),
		Match:     lipgloss.NewStyle(),
		MatchPath: lipgloss.NewStyle(),
		Selected:  lipgloss.NewStyle(),
		Error:     lipgloss.NewStyle(),
		Hint:      lipgloss.NewStyle(),
		Count:     lipgloss.NewStyle(),
	}
}

// GetStyles returns the style set matching the color preference.
func GetStyles(noColor bool) Styles {
	if noColor {
		return NoColorStyles()
	}
	return DefaultStyles()
}
