package components

import (
	"strings"

	"github.com/Veraticus/truelens/internal/tui/themes"
	"github.com/Veraticus/truelens/internal/tui/viewmodel"
)

// RenderResult renders a prediction result in its variant's style.
func RenderResult(view viewmodel.ResultView, theme themes.Theme) string {
	text := strings.Join(view.Lines(), "\n")

	switch view.Variant {
	case viewmodel.VariantError:
		return theme.StatusError.Render(text)
	case viewmodel.VariantFake:
		return theme.ResultFake.Render(text)
	case viewmodel.VariantReal:
		return theme.ResultReal.Render(text)
	default:
		return theme.ResultUnknown.Render(text)
	}
}
