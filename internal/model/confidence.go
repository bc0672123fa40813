package model

import (
	"fmt"
	"math"
	"strconv"
)

// Confidence grid, in hundredths.
const (
	confidenceStep    = 5
	confidenceDefault = 50
	confidenceMin     = 10
	confidenceMax     = 90
)

// ConfidenceThreshold is the user-tunable decision boundary sent to the
// classifier. It lives on a 0.05 grid inside [0.10, 0.90]; the zero value
// is the 0.50 default.
type ConfidenceThreshold struct {
	offset int // steps away from the default
}

// DefaultConfidence returns the 0.50 threshold.
func DefaultConfidence() ConfidenceThreshold {
	return ConfidenceThreshold{}
}

// NewConfidence snaps v onto the grid and clamps it to the allowed range.
// NaN yields the default.
func NewConfidence(v float64) ConfidenceThreshold {
	if math.IsNaN(v) {
		return DefaultConfidence()
	}
	v = max(float64(confidenceMin)/100, min(float64(confidenceMax)/100, v))
	hundredths := int(math.Round(v*100/confidenceStep)) * confidenceStep
	return ConfidenceThreshold{offset: (hundredths - confidenceDefault) / confidenceStep}
}

// ParseConfidence parses a decimal string such as "0.65".
func ParseConfidence(s string) (ConfidenceThreshold, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ConfidenceThreshold{}, fmt.Errorf("invalid confidence %q: %w", s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ConfidenceThreshold{}, fmt.Errorf("invalid confidence %q: not a finite number", s)
	}
	if v < MinConfidence().Value() || v > MaxConfidence().Value() {
		return ConfidenceThreshold{}, fmt.Errorf("confidence %s outside [%s, %s]", s, MinConfidence(), MaxConfidence())
	}
	return NewConfidence(v), nil
}

// MinConfidence returns the lowest selectable threshold.
func MinConfidence() ConfidenceThreshold {
	return NewConfidence(float64(confidenceMin) / 100)
}

// MaxConfidence returns the highest selectable threshold.
func MaxConfidence() ConfidenceThreshold {
	return NewConfidence(float64(confidenceMax) / 100)
}

func (c ConfidenceThreshold) hundredths() int {
	return confidenceDefault + c.offset*confidenceStep
}

// Value returns the threshold as a float.
func (c ConfidenceThreshold) Value() float64 {
	return float64(c.hundredths()) / 100
}

// Step moves the threshold n grid steps, clamped to the range.
func (c ConfidenceThreshold) Step(n int) ConfidenceThreshold {
	return NewConfidence(float64(c.hundredths()+n*confidenceStep) / 100)
}

// Fraction is the threshold's position between min (0) and max (1).
func (c ConfidenceThreshold) Fraction() float64 {
	return float64(c.hundredths()-confidenceMin) / float64(confidenceMax-confidenceMin)
}

// String is the shortest decimal form, as sent on the wire ("0.65", "0.5").
func (c ConfidenceThreshold) String() string {
	return strconv.FormatFloat(c.Value(), 'f', -1, 64)
}

// Display is the two-decimal form shown to the user ("0.50").
func (c ConfidenceThreshold) Display() string {
	return fmt.Sprintf("%.2f", c.Value())
}
