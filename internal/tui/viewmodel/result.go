// Package viewmodel turns domain state into render-ready text so views stay
// free of formatting rules and can be tested without a terminal.
package viewmodel

import (
	"fmt"

	"github.com/Veraticus/truelens/internal/model"
)

// Placeholder stands in for a missing label or score.
const Placeholder = "N/A"

// Variant selects how a result is highlighted.
type Variant int

const (
	// VariantUnknown is a classification with a missing or unexpected label.
	VariantUnknown Variant = iota
	// VariantReal is a "Real" classification.
	VariantReal
	// VariantFake is a "Fake" classification.
	VariantFake
	// VariantError is an error message.
	VariantError
)

func (v Variant) String() string {
	switch v {
	case VariantReal:
		return "real"
	case VariantFake:
		return "fake"
	case VariantError:
		return "error"
	default:
		return "unknown"
	}
}

// ResultView is a prediction result ready for display.
type ResultView struct {
	Prediction string
	Confidence string
	Threshold  string
	Error      string
	Variant    Variant
}

// NewResultView formats r. Error results carry only the message.
func NewResultView(r model.PredictionResult) ResultView {
	if r.IsError() {
		return ResultView{Variant: VariantError, Error: r.Error}
	}

	view := ResultView{
		Variant:    VariantUnknown,
		Prediction: Placeholder,
		Confidence: Placeholder,
	}

	if v, ok := r.Verdict(); ok {
		view.Prediction = string(v)
		view.Variant = VariantReal
		if v == model.VerdictFake {
			view.Variant = VariantFake
		}
	}
	if r.Score != nil {
		view.Confidence = fmt.Sprintf("%.2f", *r.Score)
	}
	if r.ThresholdUsed != nil {
		view.Threshold = fmt.Sprintf("%.2f", *r.ThresholdUsed)
	}

	return view
}

// IsError reports whether the view shows an error.
func (v ResultView) IsError() bool {
	return v.Variant == VariantError
}

// Lines returns the text rows of the result.
func (v ResultView) Lines() []string {
	if v.IsError() {
		return []string{v.Error}
	}
	lines := []string{
		"Prediction: " + v.Prediction,
		"Confidence: " + v.Confidence,
	}
	if v.Threshold != "" {
		lines = append(lines, "Threshold used: "+v.Threshold)
	}
	return lines
}
