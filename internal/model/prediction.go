package model

// User-facing messages.
const (
	GenericFailureMessage = "Something went wrong. Please try again."
	NoImageMessage        = "Please upload an image."
)

// Verdict is the classifier's label.
type Verdict string

// Known verdicts.
const (
	VerdictReal Verdict = "Real"
	VerdictFake Verdict = "Fake"
)

// PredictionResult holds either a classification or an error message.
type PredictionResult struct {
	Score         *float64
	ThresholdUsed *float64
	Label         string
	Error         string
}

// ErrorResult builds an error-only result.
func ErrorResult(msg string) PredictionResult {
	return PredictionResult{Error: msg}
}

// IsError reports whether the result carries an error message.
func (r PredictionResult) IsError() bool {
	return r.Error != ""
}

// Verdict returns the label if it is a known verdict.
func (r PredictionResult) Verdict() (Verdict, bool) {
	switch v := Verdict(r.Label); v {
	case VerdictReal, VerdictFake:
		return v, true
	default:
		return "", false
	}
}
