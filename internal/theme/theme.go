package theme

import (
	"github.com/charmbracelet/lipgloss"

	"finterm/internal/scheme"
)

// Theme encapsulates the visual palette for the finterm UI chrome around the chart.
type Theme struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Accent    lipgloss.Style
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Danger    lipgloss.Style
	Faint     lipgloss.Style
	Highlight lipgloss.Style
	Border    lipgloss.Style
	HelpKey   lipgloss.Style
	HelpValue lipgloss.Style
	Dark      bool
}

type palette struct {
	title, subtitle, accent, primary, secondary string
	success, warning, danger, faint, highlight  string
	border, helpKey, helpValue                  string
}

var (
	lightPalette = palette{
		title: "25", subtitle: "31", accent: "130", primary: "24", secondary: "240",
		success: "28", warning: "136", danger: "160", faint: "245", highlight: "127",
		border: "250", helpKey: "25", helpValue: "240",
	}
	sandPalette = palette{
		title: "94", subtitle: "130", accent: "166", primary: "58", secondary: "242",
		success: "64", warning: "172", danger: "124", faint: "246", highlight: "130",
		border: "180", helpKey: "94", helpValue: "242",
	}
	darkPalette = palette{
		title: "213", subtitle: "111", accent: "219", primary: "81", secondary: "249",
		success: "42", warning: "227", danger: "203", faint: "243", highlight: "205",
		border: "240", helpKey: "117", helpValue: "249",
	}
)

// Default returns a high-contrast palette that plays nicely with common terminals.
func Default() Theme {
	return fromPalette(darkPalette, true)
}

// ForScheme returns the UI palette matching a chart theme, so the menus sit
// well next to the chart's plot background.
func ForScheme(t scheme.Theme) Theme {
	switch t {
	case scheme.Classic, scheme.Clearlook:
		return fromPalette(lightPalette, false)
	case scheme.Sand:
		return fromPalette(sandPalette, false)
	}
	return Default()
}

func fromPalette(p palette, dark bool) Theme {
	base := lipgloss.NewStyle()
	return Theme{
		Title:     base.Copy().Foreground(lipgloss.Color(p.title)).Bold(true).Underline(true),
		Subtitle:  base.Copy().Foreground(lipgloss.Color(p.subtitle)).Bold(true),
		Accent:    base.Copy().Foreground(lipgloss.Color(p.accent)).Bold(true),
		Primary:   base.Copy().Foreground(lipgloss.Color(p.primary)),
		Secondary: base.Copy().Foreground(lipgloss.Color(p.secondary)),
		Success:   base.Copy().Foreground(lipgloss.Color(p.success)).Bold(true),
		Warning:   base.Copy().Foreground(lipgloss.Color(p.warning)).Bold(true),
		Danger:    base.Copy().Foreground(lipgloss.Color(p.danger)).Bold(true),
		Faint:     base.Copy().Foreground(lipgloss.Color(p.faint)),
		Highlight: base.Copy().Foreground(lipgloss.Color(p.highlight)).Bold(true),
		Border:    base.Copy().Foreground(lipgloss.Color(p.border)),
		HelpKey:   base.Copy().Foreground(lipgloss.Color(p.helpKey)).Bold(true),
		HelpValue: base.Copy().Foreground(lipgloss.Color(p.helpValue)),
		Dark:      dark,
	}
}
