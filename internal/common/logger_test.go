package common

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    slog.Level
		wantErr bool
	}{
		{name: "debug", input: "debug", want: slog.LevelDebug},
		{name: "default is info", input: "", want: slog.LevelInfo},
		{name: "case insensitive", input: "WARN", want: slog.LevelWarn},
		{name: "error", input: "error", want: slog.LevelError},
		{name: "unknown", input: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	require.NoError(t, SetupLogger(slog.LevelInfo, "json", &buf))

	LogInfo("prediction received", Fields{"label": "Fake"})
	LogDebug("dropped below level", nil)

	out := buf.String()
	assert.Contains(t, out, `"msg":"prediction received"`)
	assert.Contains(t, out, `"label":"Fake"`)
	assert.NotContains(t, out, "dropped below level")

	assert.ErrorIs(t, SetupLogger(slog.LevelInfo, "xml", &buf), ErrInvalidConfig)
}
