package tui

import (
	"github.com/Veraticus/truelens/internal/model"
	"github.com/Veraticus/truelens/internal/predict"
)

// imageLoadedMsg reports the outcome of reading a picked file.
type imageLoadedMsg struct {
	err   error
	path  string
	image model.SelectedImage
}

// predictionDoneMsg is the continuation of a submission: either a decoded
// reply or a failure.
type predictionDoneMsg struct {
	err      error
	response predict.Response
}
