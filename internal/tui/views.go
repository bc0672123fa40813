package tui

import (
	"fmt"

	"github.com/Veraticus/truelens/internal/tui/components"
	"github.com/Veraticus/truelens/internal/tui/viewmodel"
	"github.com/charmbracelet/lipgloss"
)

const description = "Detects whether a face image is real or fake. Pick an image, adjust the confidence level, then submit it for analysis."

// renderForm renders the upload form.
func (m Model) renderForm() string {
	contentWidth := max(m.width-4, 40)

	title := m.theme.Title.Render("DeepFake Detection Model")
	intro := m.theme.Subtitle.Width(contentWidth).Render(description)

	sections := []string{
		title,
		intro,
		"",
		m.renderSelection(contentWidth),
		m.slider.View(),
		m.renderSubmit(),
	}

	if result, ok := m.widget.Result(); ok {
		sections = append(sections, "", components.RenderResult(viewmodel.NewResultView(result), m.theme))
	}

	sections = append(sections, "", m.help.View(m.keymap))

	return lipgloss.NewStyle().Padding(1, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...),
	)
}

// renderSelection renders the file picker next to the preview.
func (m Model) renderSelection(width int) string {
	pickerStyle := m.theme.Blurred
	if m.focus == FocusPicker {
		pickerStyle = m.theme.Focused
	}

	half := max(width/2-2, 20)
	picker := pickerStyle.Width(half).Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Bold.Render("Upload Image"),
		m.theme.Muted.Render(m.picker.CurrentDirectory),
		m.picker.View(),
	))

	return lipgloss.JoinHorizontal(lipgloss.Top, picker, " ", m.renderPreview(half))
}

func (m Model) renderPreview(width int) string {
	img, ok := m.widget.Image()
	if !ok {
		return m.theme.Box.Width(width).Render(m.theme.Muted.Render("No image selected"))
	}

	name := m.theme.Normal.Render(img.Name)
	thumb := ""
	if m.previews != nil {
		thumb, _ = m.previews.Render(img.PreviewURI)
	}
	return m.theme.Box.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, name, thumb))
}

// renderSubmit renders the submit button.
func (m Model) renderSubmit() string {
	if !m.widget.CanSubmit() {
		return m.theme.ButtonBusy.Render(fmt.Sprintf("%s Analyzing...", m.spinner.View()))
	}
	if m.focus == FocusSubmit {
		return m.theme.ButtonFocused.Render("Submit")
	}
	return m.theme.Button.Render("Submit")
}
