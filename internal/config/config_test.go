package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/truelens/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(overrides map[string]any) *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(newViper(nil))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/predict", cfg.Endpoint)
	assert.Equal(t, time.Duration(0), cfg.HTTPTimeout)
	assert.Equal(t, "default", cfg.Theme)
	assert.False(t, cfg.ClearAfterSubmit)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Empty(t, cfg.LogFile)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := Load(newViper(map[string]any{
		KeyEndpoint:         "https://detector.example.com/predict",
		KeyHTTPTimeout:      "45s",
		KeyTheme:            "catppuccin-mocha",
		KeyClearAfterSubmit: true,
	}))
	require.NoError(t, err)

	assert.Equal(t, "https://detector.example.com/predict", cfg.Endpoint)
	assert.Equal(t, 45*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "catppuccin-mocha", cfg.Theme)
	assert.True(t, cfg.ClearAfterSubmit)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		overrides map[string]any
		wantErr   error
		name      string
	}{
		{name: "empty endpoint", overrides: map[string]any{KeyEndpoint: " "}, wantErr: common.ErrMissingConfig},
		{name: "endpoint without scheme", overrides: map[string]any{KeyEndpoint: "localhost:8000/predict"}, wantErr: common.ErrInvalidConfig},
		{name: "ftp endpoint", overrides: map[string]any{KeyEndpoint: "ftp://host/predict"}, wantErr: common.ErrInvalidConfig},
		{name: "negative timeout", overrides: map[string]any{KeyHTTPTimeout: "-1s"}, wantErr: common.ErrInvalidConfig},
		{name: "unknown theme", overrides: map[string]any{KeyTheme: "neon"}, wantErr: common.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(newViper(tt.overrides))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("TRUELENS_TEST_DIR", "/data/images")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "tilde only", input: "~", want: home},
		{name: "tilde prefix", input: "~/Pictures", want: filepath.Join(home, "Pictures")},
		{name: "env var", input: "$TRUELENS_TEST_DIR/faces", want: "/data/images/faces"},
		{name: "absolute", input: "/tmp/x.png", want: "/tmp/x.png"},
		{name: "tilde inside is literal", input: "/a/~/b", want: "/a/~/b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}
