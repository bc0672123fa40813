package tui

import (
	"github.com/Veraticus/truelens/internal/predict"
	"github.com/Veraticus/truelens/internal/preview"
	"github.com/Veraticus/truelens/internal/tui/themes"
	"github.com/Veraticus/truelens/internal/widget"
)

// Config holds TUI configuration.
type Config struct {
	Theme        themes.Theme
	Predictor    predict.Predictor
	Previews     *preview.Registry
	StartDir     string
	InitialImage string
	Policy       widget.Policy
	Width        int
	Height       int
	PickerRows   int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:      themes.Default,
		StartDir:   ".",
		Width:      80,
		Height:     24,
		PickerRows: 8,
	}
}

// WithPredictor sets the predict service client.
func WithPredictor(p predict.Predictor) Option {
	return func(c *Config) {
		c.Predictor = p
	}
}

// WithPreviews sets the preview registry.
func WithPreviews(r *preview.Registry) Option {
	return func(c *Config) {
		c.Previews = r
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithPolicy sets the widget's completion policy.
func WithPolicy(p widget.Policy) Option {
	return func(c *Config) {
		c.Policy = p
	}
}

// WithStartDir sets the directory the file picker opens in.
func WithStartDir(dir string) Option {
	return func(c *Config) {
		if dir != "" {
			c.StartDir = dir
		}
	}
}

// WithInitialImage preselects an image on startup.
func WithInitialImage(path string) Option {
	return func(c *Config) {
		c.InitialImage = path
	}
}
