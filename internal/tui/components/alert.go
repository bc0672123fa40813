package components

import (
	"github.com/Veraticus/truelens/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

// RenderAlert renders a blocking message box centered in width x height.
func RenderAlert(message string, theme themes.Theme, width, height int) string {
	hint := theme.Muted.Render("[Enter] OK")
	box := theme.Alert.Render(lipgloss.JoinVertical(lipgloss.Center, theme.Bold.Render(message), "", hint))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
