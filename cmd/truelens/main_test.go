package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/truelens/internal/common"
	"github.com/Veraticus/truelens/internal/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	cfgFile = ""
	t.Cleanup(func() {
		viper.Reset()
		cfgFile = ""
		closeLogFile()
	})
}

func TestVersionCmd(t *testing.T) {
	resetViper(t)
	t.Setenv("HOME", t.TempDir())

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "truelens version dev")
}

func TestInitConfig_FileAndEnv(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
endpoint: http://detector.internal:9000/predict
ui:
  theme: catppuccin-mocha
  clear_after_submit: true
`), 0o600))
	t.Setenv("TRUELENS_HTTP_TIMEOUT", "30s")

	root := newRootCmd()
	root.SetArgs([]string{"version", "--config", cfgPath, "--log-file", filepath.Join(dir, "truelens.log")})
	root.SetOut(&bytes.Buffer{})
	require.NoError(t, root.Execute())

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://detector.internal:9000/predict", cfg.Endpoint)
	assert.Equal(t, "catppuccin-mocha", cfg.Theme)
	assert.True(t, cfg.ClearAfterSubmit)
	assert.Equal(t, "30s", cfg.HTTPTimeout.String())
	assert.FileExists(t, filepath.Join(dir, "truelens.log"))
}

func TestInitConfig_Defaults(t *testing.T) {
	resetViper(t)
	t.Setenv("HOME", t.TempDir())

	root := newRootCmd()
	root.SetArgs([]string{"version"})
	root.SetOut(&bytes.Buffer{})
	require.NoError(t, root.Execute())

	assert.Equal(t, "http://localhost:8000/predict", viper.GetString(config.KeyEndpoint))
	assert.False(t, viper.GetBool(config.KeyClearAfterSubmit))
	assert.Zero(t, viper.GetDuration(config.KeyHTTPTimeout))
}

func TestInitConfig_InvalidLogLevel(t *testing.T) {
	resetViper(t)
	t.Setenv("HOME", t.TempDir())

	root := newRootCmd()
	root.SetArgs([]string{"version", "--log-level", "loud"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to setup logging")
}

func TestUICmd_RejectsUnsupportedImage(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	notes := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notes, []byte("hello"), 0o600))

	root := newRootCmd()
	root.SetArgs([]string{"ui", notes})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	err := root.Execute()
	require.ErrorIs(t, err, common.ErrUnsupportedImage)
	assert.Contains(t, common.UserMessage(err), "notes.txt is not a supported image")
}
