package cli

import (
	"fmt"
	"strings"

	"github.com/Veraticus/truelens/internal/model"
	"github.com/Veraticus/truelens/internal/tui/viewmodel"
	"github.com/charmbracelet/lipgloss"
)

const reportTitle = LensIcon + " DeepFake Detection Model"

// Report describes one completed headless submission.
type Report struct {
	Image     string
	Result    model.PredictionResult
	Threshold model.ConfidenceThreshold
}

// RenderReport renders a submission outcome in a box. Error results show
// only the message.
func RenderReport(r Report) string {
	view := viewmodel.NewResultView(r.Result)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", SubtleStyle.Render("Image:"), r.Image)
	fmt.Fprintf(&b, "%s %s\n", SubtleStyle.Render("Confidence Level:"), r.Threshold.Display())

	if view.IsError() {
		b.WriteString("\n" + FormatError(view.Error))
		return RenderBox(reportTitle, b.String())
	}

	lines := view.Lines()
	b.WriteString("\n" + verdictStyle(view.Variant).Render(lines[0]))
	for _, line := range lines[1:] {
		b.WriteString("\n" + line)
	}
	return RenderBox(reportTitle, b.String())
}

func verdictStyle(v viewmodel.Variant) lipgloss.Style {
	switch v {
	case viewmodel.VariantReal:
		return RealStyle
	case viewmodel.VariantFake:
		return FakeStyle
	default:
		return SubtleStyle
	}
}
