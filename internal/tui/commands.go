package tui

import (
	"context"

	"github.com/Veraticus/truelens/internal/model"
	"github.com/Veraticus/truelens/internal/predict"
	tea "github.com/charmbracelet/bubbletea"
)

// loadImage reads a picked file off the event loop.
func loadImage(path string) tea.Cmd {
	return func() tea.Msg {
		img, err := model.LoadImage(path)
		return imageLoadedMsg{
			path:  path,
			image: img,
			err:   err,
		}
	}
}

// submitPrediction sends one request and reports its outcome.
func submitPrediction(ctx context.Context, p predict.Predictor, req predict.Request) tea.Cmd {
	return func() tea.Msg {
		resp, err := p.Predict(ctx, req)
		return predictionDoneMsg{
			response: resp,
			err:      err,
		}
	}
}
