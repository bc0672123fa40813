// Package widget holds the upload/predict state machine. It performs no I/O
// itself: Submit hands back the request to send, and the caller reports the
// outcome through Resolve or Fail.
package widget

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/truelens/internal/common"
	"github.com/Veraticus/truelens/internal/model"
	"github.com/Veraticus/truelens/internal/predict"
	"github.com/Veraticus/truelens/internal/preview"
)

// SubmissionState is whether a request is outstanding.
type SubmissionState int

// Submission states.
const (
	Idle SubmissionState = iota
	InFlight
)

func (s SubmissionState) String() string {
	switch s {
	case Idle:
		return "idle"
	case InFlight:
		return "in-flight"
	default:
		return fmt.Sprintf("SubmissionState(%d)", int(s))
	}
}

// Policy selects behavior that differs between product revisions.
type Policy struct {
	// ClearSelectionOnComplete drops the image and its preview after every
	// terminal outcome.
	ClearSelectionOnComplete bool
}

// Widget is the state of one upload form.
type Widget struct {
	previews   preview.Store
	image      *model.SelectedImage
	result     *model.PredictionResult
	confidence model.ConfidenceThreshold
	policy     Policy
	state      SubmissionState
}

// New creates an idle widget. previews may be nil.
func New(previews preview.Store, policy Policy) *Widget {
	return &Widget{
		previews: previews,
		policy:   policy,
	}
}

// State returns the submission state.
func (w *Widget) State() SubmissionState { return w.state }

// Confidence returns the current threshold.
func (w *Widget) Confidence() model.ConfidenceThreshold { return w.confidence }

// Image returns the selected image, if any.
func (w *Widget) Image() (model.SelectedImage, bool) {
	if w.image == nil {
		return model.SelectedImage{}, false
	}
	return *w.image, true
}

// Result returns the latest prediction result, if any.
func (w *Widget) Result() (model.PredictionResult, bool) {
	if w.result == nil {
		return model.PredictionResult{}, false
	}
	return *w.result, true
}

// CanAdjust reports whether the confidence control is interactive.
func (w *Widget) CanAdjust() bool {
	return w.image != nil && w.state == Idle
}

// CanSubmit reports whether the submit control is enabled.
func (w *Widget) CanSubmit() bool {
	return w.state == Idle
}

// SelectImage replaces the selected image, swaps its preview and clears any
// previous result.
func (w *Widget) SelectImage(img model.SelectedImage) error {
	if w.state == InFlight {
		return common.ErrSubmissionInFlight
	}

	img.PreviewURI = ""
	if w.previews != nil {
		uri, err := w.previews.Create(img)
		if err != nil {
			return fmt.Errorf("failed to create preview: %w", err)
		}
		img.PreviewURI = uri
	}

	// The old preview goes only once its replacement exists.
	w.releasePreview()
	w.image = &img
	w.result = nil

	slog.Debug("Image selected", "name", img.Name, "bytes", img.Size(), "content_type", img.ContentType)
	return nil
}

// SetConfidence overwrites the threshold. It is a no-op while the control
// is not interactive.
func (w *Widget) SetConfidence(c model.ConfidenceThreshold) bool {
	if !w.CanAdjust() {
		return false
	}
	w.confidence = c
	return true
}

// StepConfidence moves the threshold n grid steps.
func (w *Widget) StepConfidence(n int) bool {
	return w.SetConfidence(w.confidence.Step(n))
}

// Submit starts a submission and returns the request to send.
func (w *Widget) Submit() (predict.Request, error) {
	if w.image == nil {
		return predict.Request{}, common.NewUserError(model.NoImageMessage, common.ErrNoImage)
	}
	if w.state == InFlight {
		return predict.Request{}, common.ErrSubmissionInFlight
	}

	w.state = InFlight
	req := predict.Request{
		Image:      *w.image,
		Confidence: w.confidence,
	}

	slog.Info("Submitting image", "name", req.Image.Name, "confidence", req.Confidence.String())
	return req, nil
}

// Resolve completes the in-flight submission with a decoded reply.
func (w *Widget) Resolve(resp predict.Response) {
	if w.state != InFlight {
		slog.Warn("Ignoring prediction reply with no submission in flight")
		return
	}
	result := resp.Result()
	if result.IsError() {
		slog.Info("Predict service reported an error", "error", result.Error)
	} else {
		slog.Info("Prediction received", "label", result.Label)
	}
	w.complete(result)
}

// Fail completes the in-flight submission with a transport or status error.
// The user sees a generic message regardless of cause.
func (w *Widget) Fail(err error) {
	if w.state != InFlight {
		slog.Warn("Ignoring prediction failure with no submission in flight", "error", err)
		return
	}
	common.LogError(err, "Prediction request failed", common.Fields{
		"status_error": predict.IsStatusError(err),
	})
	w.complete(model.ErrorResult(model.GenericFailureMessage))
}

// Close releases the live preview.
func (w *Widget) Close() {
	w.releasePreview()
}

func (w *Widget) complete(result model.PredictionResult) {
	w.result = &result
	w.state = Idle
	w.confidence = model.DefaultConfidence()

	if w.policy.ClearSelectionOnComplete {
		w.releasePreview()
		w.image = nil
	}
}

func (w *Widget) releasePreview() {
	if w.image == nil || w.previews == nil {
		return
	}
	w.previews.Revoke(w.image.PreviewURI)
	w.image.PreviewURI = ""
}
