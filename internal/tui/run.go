package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive upload form and blocks until the user quits or
// ctx is cancelled. Quitting cancels any request still in flight.
func Run(ctx context.Context, opts ...Option) error {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Predictor == nil {
		return fmt.Errorf("predictor is required")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newModel(ctx, cfg)
	defer m.Close()

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
