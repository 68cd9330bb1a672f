package ui

import "github.com/charmbracelet/lipgloss"

// Theme bundles the styles the now-playing view renders with.
type Theme struct {
	Name string

	Header   lipgloss.Style
	Track    lipgloss.Style
	Artist   lipgloss.Style
	Dim      lipgloss.Style
	Gauge    lipgloss.Style
	GaugeOff lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
	Frame    lipgloss.Style
}

// ResolveTheme maps a prefs theme name to a Theme, defaulting to
// midnight for unknown names.
func ResolveTheme(name string) Theme {
	switch name {
	case "paper":
		return paperTheme()
	default:
		return midnightTheme()
	}
}

func midnightTheme() Theme {
	return Theme{
		Name:     "midnight",
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Track:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		Artist:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Gauge:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		GaugeOff: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(1, 2),
	}
}

func paperTheme() Theme {
	return Theme{
		Name:     "paper",
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("25")),
		Track:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("235")),
		Artist:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("246")),
		Gauge:    lipgloss.NewStyle().Foreground(lipgloss.Color("25")),
		GaugeOff: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("124")),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("246")),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("252")).
			Padding(1, 2),
	}
}
