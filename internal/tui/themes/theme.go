// Package themes defines the color schemes of the terminal UI.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Muted         lipgloss.Style
	Box           lipgloss.Style
	Focused       lipgloss.Style
	Blurred       lipgloss.Style
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	ButtonBusy    lipgloss.Style
	BadgeReal     lipgloss.Style
	BadgeFake     lipgloss.Style
	ResultReal    lipgloss.Style
	ResultFake    lipgloss.Style
	ResultUnknown lipgloss.Style
	StatusError   lipgloss.Style
	Alert         lipgloss.Style
	Primary       lipgloss.Color
	Border        lipgloss.Color
	Dim           lipgloss.Color
	Real          lipgloss.Color
	Fake          lipgloss.Color
}

type palette struct {
	primary, foreground, subtle, border, dim, real, fake, onAccent string
}

func newTheme(p palette) Theme {
	box := func(border string) lipgloss.Style {
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(border)).
			Padding(0, 1)
	}
	badge := func(bg string) lipgloss.Style {
		return lipgloss.NewStyle().
			Background(lipgloss.Color(bg)).
			Foreground(lipgloss.Color(p.onAccent)).
			Padding(0, 1)
	}
	result := func(bg string) lipgloss.Style {
		return badge(bg).Bold(true).Padding(0, 2)
	}

	return Theme{
		Primary: lipgloss.Color(p.primary),
		Border:  lipgloss.Color(p.border),
		Dim:     lipgloss.Color(p.dim),
		Real:    lipgloss.Color(p.real),
		Fake:    lipgloss.Color(p.fake),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.foreground)).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.subtle)),
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.foreground)),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.foreground)),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.dim)),

		Box:     box(p.border),
		Focused: box(p.primary),
		Blurred: box(p.border),

		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.foreground)).
			Background(lipgloss.Color(p.border)).
			Padding(0, 3),
		ButtonFocused: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.onAccent)).
			Background(lipgloss.Color(p.primary)).
			Bold(true).
			Padding(0, 3),
		ButtonBusy: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.dim)).
			Background(lipgloss.Color(p.border)).
			Italic(true).
			Padding(0, 3),

		BadgeReal: badge(p.real),
		BadgeFake: badge(p.fake),

		ResultReal: result(p.real),
		ResultFake: result(p.fake),
		ResultUnknown: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(p.dim)).
			Foreground(lipgloss.Color(p.foreground)).
			Padding(0, 2),

		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.fake)).
			Bold(true),
		Alert: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(p.fake)).
			Foreground(lipgloss.Color(p.foreground)).
			Padding(1, 4),
	}
}

// Default is the default theme.
var Default = newTheme(palette{
	primary:    "#7c3aed",
	foreground: "#fafafa",
	subtle:     "#a3a3a3",
	border:     "#404040",
	dim:        "#737373",
	real:       "#16a34a",
	fake:       "#dc2626",
	onAccent:   "#fafafa",
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(palette{
	primary:    "#cba6f7",
	foreground: "#cdd6f4",
	subtle:     "#a6adc8",
	border:     "#45475a",
	dim:        "#6c7086",
	real:       "#a6e3a1",
	fake:       "#f38ba8",
	onAccent:   "#1e1e2e",
})

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}
