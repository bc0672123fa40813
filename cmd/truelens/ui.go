package main

import (
	"fmt"

	"github.com/Veraticus/truelens/internal/common"
	"github.com/Veraticus/truelens/internal/predict"
	"github.com/Veraticus/truelens/internal/preview"
	"github.com/Veraticus/truelens/internal/tui"
	"github.com/Veraticus/truelens/internal/tui/themes"
	"github.com/Veraticus/truelens/internal/widget"
	"github.com/spf13/cobra"
)

// Thumbnail size in terminal cells.
const (
	previewWidth  = 32
	previewHeight = 12
)

func uiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui [image]",
		Short: "Open the interactive upload form",
		Long: `Open the interactive upload form.

Pick an image with the file browser (or pass one as an argument), adjust the
confidence threshold with ←/→ and press Enter to submit.`,
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{annotationFullscreen: "true"},
		RunE:        runUI,
	}
}

func runUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		if err := checkImagePath(args[0]); err != nil {
			return err
		}
	}

	client, err := predict.NewClient(predict.Config{
		Endpoint: cfg.Endpoint,
		Timeout:  cfg.HTTPTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create predict client: %w", err)
	}

	previews := preview.NewRegistry(previewWidth, previewHeight)
	defer previews.Close()

	opts := []tui.Option{
		tui.WithPredictor(client),
		tui.WithPreviews(previews),
		tui.WithTheme(themes.GetTheme(cfg.Theme)),
		tui.WithPolicy(widget.Policy{ClearSelectionOnComplete: cfg.ClearAfterSubmit}),
		tui.WithStartDir(cfg.StartDir),
	}
	if len(args) == 1 {
		opts = append(opts, tui.WithInitialImage(args[0]))
	}

	common.LogInfo("Starting upload form", common.Fields{
		"endpoint":  client.Endpoint(),
		"theme":     cfg.Theme,
		"start_dir": cfg.StartDir,
	})
	return tui.Run(cmd.Context(), opts...)
}
