// Package config loads and validates application configuration.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/Veraticus/truelens/internal/common"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyEndpoint         = "endpoint"
	KeyHTTPTimeout      = "http.timeout"
	KeyTheme            = "ui.theme"
	KeyStartDir         = "ui.start_dir"
	KeyClearAfterSubmit = "ui.clear_after_submit"
	KeyLogLevel         = "logging.level"
	KeyLogFormat        = "logging.format"
	KeyLogFile          = "logging.file"
)

// Themes lists the accepted ui.theme values.
var Themes = []string{"default", "catppuccin-mocha"}

// Config is the validated application configuration.
type Config struct {
	Endpoint         string
	Theme            string
	StartDir         string
	LogLevel         string
	LogFormat        string
	LogFile          string
	HTTPTimeout      time.Duration
	ClearAfterSubmit bool
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyEndpoint, "http://localhost:8000/predict")
	v.SetDefault(KeyHTTPTimeout, time.Duration(0))
	v.SetDefault(KeyTheme, "default")
	v.SetDefault(KeyStartDir, ".")
	v.SetDefault(KeyClearAfterSubmit, false)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyLogFile, "")
}

// Load reads and validates configuration from v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Endpoint:         strings.TrimSpace(v.GetString(KeyEndpoint)),
		HTTPTimeout:      v.GetDuration(KeyHTTPTimeout),
		Theme:            v.GetString(KeyTheme),
		StartDir:         ExpandPath(v.GetString(KeyStartDir)),
		ClearAfterSubmit: v.GetBool(KeyClearAfterSubmit),
		LogLevel:         v.GetString(KeyLogLevel),
		LogFormat:        v.GetString(KeyLogFormat),
		LogFile:          ExpandPath(v.GetString(KeyLogFile)),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for obvious mistakes.
func (c Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyEndpoint)
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s must be an http(s) URL, got %q", common.ErrInvalidConfig, KeyEndpoint, c.Endpoint)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("%w: %s must not be negative", common.ErrInvalidConfig, KeyHTTPTimeout)
	}
	if !slices.Contains(Themes, c.Theme) {
		return fmt.Errorf("%w: unknown theme %q (available: %s)", common.ErrInvalidConfig, c.Theme, strings.Join(Themes, ", "))
	}
	return nil
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}

	return os.ExpandEnv(path)
}
