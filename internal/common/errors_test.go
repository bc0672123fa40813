package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserError(t *testing.T) {
	tests := []struct {
		err         error
		name        string
		wantMessage string
		wantText    string
	}{
		{
			name:        "wraps sentinel",
			err:         NewUserError("Please upload an image.", ErrNoImage),
			wantMessage: "Please upload an image.",
			wantText:    "Please upload an image.: no image selected",
		},
		{
			name:        "message only",
			err:         NewUserError("Something went wrong.", nil),
			wantMessage: "Something went wrong.",
			wantText:    "Something went wrong.",
		},
		{
			name:        "plain error falls back to text",
			err:         fmt.Errorf("dial: %w", ErrUnexpectedStatus),
			wantMessage: "dial: unexpected status from predict service",
			wantText:    "dial: unexpected status from predict service",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, UserMessage(tt.err))
			assert.Equal(t, tt.wantText, tt.err.Error())
		})
	}
}

func TestUserError_Unwrap(t *testing.T) {
	err := fmt.Errorf("submit: %w", NewUserError("Please upload an image.", ErrNoImage))

	assert.True(t, errors.Is(err, ErrNoImage))
	assert.Equal(t, "Please upload an image.", UserMessage(err))
	assert.Empty(t, UserMessage(nil))
}
