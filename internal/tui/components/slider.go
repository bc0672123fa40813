package components

import (
	"strings"

	"github.com/Veraticus/truelens/internal/model"
	"github.com/Veraticus/truelens/internal/tui/themes"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// SliderModel renders the confidence threshold control. Input handling lives
// in the parent model, which owns the threshold.
type SliderModel struct {
	theme   themes.Theme
	bar     progress.Model
	value   model.ConfidenceThreshold
	width   int
	enabled bool
	focused bool
}

// NewSlider creates a disabled slider at the default threshold.
func NewSlider(theme themes.Theme) SliderModel {
	bar := progress.New(
		progress.WithSolidFill(string(theme.Primary)),
		progress.WithoutPercentage(),
	)
	bar.Full = '━'
	bar.Empty = '─'
	bar.EmptyColor = string(theme.Border)

	m := SliderModel{
		theme: theme,
		bar:   bar,
	}
	m.Resize(40)
	return m
}

// SetValue updates the displayed threshold.
func (m *SliderModel) SetValue(v model.ConfidenceThreshold) {
	m.value = v
}

// SetEnabled toggles the interactive look.
func (m *SliderModel) SetEnabled(enabled bool) {
	m.enabled = enabled
}

// Focus marks the slider as focused.
func (m *SliderModel) Focus() { m.focused = true }

// Blur removes focus.
func (m *SliderModel) Blur() { m.focused = false }

// Resize sets the bar width, leaving room for the end labels.
func (m *SliderModel) Resize(width int) {
	m.width = width
	m.bar.Width = max(width-14, 10)
}

// View renders the slider.
func (m SliderModel) View() string {
	label := m.theme.Bold.Render("Confidence Level: " + m.value.Display())

	realEnd := m.theme.BadgeReal.Render("Real")
	fakeEnd := m.theme.BadgeFake.Render("Fake")
	bar := m.bar.ViewAs(m.value.Fraction())

	if !m.enabled {
		realEnd = m.theme.Muted.Render(" Real ")
		fakeEnd = m.theme.Muted.Render(" Fake ")
		bar = m.theme.Muted.Render(strings.Repeat("─", m.bar.Width))
	}

	track := lipgloss.JoinHorizontal(lipgloss.Center, realEnd, " ", bar, " ", fakeEnd)

	style := m.theme.Blurred
	if m.focused {
		style = m.theme.Focused
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, label, track))
}
