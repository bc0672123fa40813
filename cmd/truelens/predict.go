package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Veraticus/truelens/internal/cli"
	"github.com/Veraticus/truelens/internal/common"
	"github.com/Veraticus/truelens/internal/config"
	"github.com/Veraticus/truelens/internal/model"
	"github.com/Veraticus/truelens/internal/predict"
	"github.com/Veraticus/truelens/internal/widget"
	"github.com/spf13/cobra"
)

// errPredictionFailed is returned once the failure has already been shown
// to the user.
var errPredictionFailed = errors.New("prediction failed")

type predictOptions struct {
	image        string
	confidence   string
	showProgress bool
}

func predictCmd() *cobra.Command {
	opts := predictOptions{}

	cmd := &cobra.Command{
		Use:   "predict <image>",
		Short: "Classify one image without the interactive form",
		Long: `Upload a single image with a confidence threshold and print the
service's verdict.

Examples:
  truelens predict face.jpg
  truelens predict face.jpg --confidence 0.65`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			opts.image = args[0]

			interrupts := cli.NewInterruptHandler(cmd.ErrOrStderr())
			ctx, stop := interrupts.HandleInterrupts(cmd.Context())
			defer stop()

			err = runPredict(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, opts)
			if err != nil && interrupts.WasInterrupted() {
				// The handler has already told the user.
				return errPredictionFailed
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.confidence, "confidence", "c", model.DefaultConfidence().String(),
		fmt.Sprintf("confidence threshold between %s and %s in steps of 0.05", model.MinConfidence(), model.MaxConfidence()))
	cmd.Flags().BoolVar(&opts.showProgress, "progress", true, "show an upload progress bar")

	return cmd
}

// checkImagePath rejects files the picker would not list.
func checkImagePath(path string) error {
	if model.IsImageFile(path) {
		return nil
	}
	return common.NewUserError(
		fmt.Sprintf("%s is not a supported image (%s)", filepath.Base(path), strings.Join(model.ImageExtensions, ", ")),
		common.ErrUnsupportedImage,
	)
}

// runPredict loads opts.image, drives a single submission through the
// widget and prints the outcome to out.
func runPredict(ctx context.Context, out, errOut io.Writer, cfg config.Config, opts predictOptions) error {
	threshold, err := model.ParseConfidence(opts.confidence)
	if err != nil {
		return common.NewUserError(err.Error(), common.ErrInvalidConfig)
	}
	if err := checkImagePath(opts.image); err != nil {
		return err
	}

	img, err := model.LoadImage(opts.image)
	if err != nil {
		return common.NewUserError(fmt.Sprintf("Could not open %s", filepath.Base(opts.image)), err)
	}

	var progress *cli.UploadProgress
	clientCfg := predict.Config{
		Endpoint: cfg.Endpoint,
		Timeout:  cfg.HTTPTimeout,
	}
	if opts.showProgress {
		progress = cli.NewUploadProgress(errOut, img.Name, int64(img.Size()))
		clientCfg.UploadObserver = progress
	}

	client, err := predict.NewClient(clientCfg)
	if err != nil {
		return fmt.Errorf("failed to create predict client: %w", err)
	}

	w := widget.New(nil, widget.Policy{})
	defer w.Close()

	if err := w.SelectImage(img); err != nil {
		return err
	}
	w.SetConfidence(threshold)

	common.LogDebug("Starting headless prediction", common.Fields{
		"endpoint":   client.Endpoint(),
		"image":      img.Name,
		"confidence": threshold.String(),
	})
	if _, err := fmt.Fprintln(errOut, cli.FormatInfo(fmt.Sprintf("Sending %s to %s", img.Name, client.Endpoint()))); err != nil {
		return fmt.Errorf("failed to write status: %w", err)
	}

	return submitAndReport(ctx, out, w, client, progress)
}

// submitAndReport submits whatever the widget holds and prints the result.
// progress may be nil.
func submitAndReport(ctx context.Context, out io.Writer, w *widget.Widget, p predict.Predictor, progress *cli.UploadProgress) error {
	req, err := w.Submit()
	if err != nil {
		return err
	}

	resp, err := p.Predict(ctx, req)
	if progress != nil {
		progress.Finish()
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("prediction canceled: %w", ctxErr)
		}
		w.Fail(err)
	} else {
		w.Resolve(resp)
	}

	result, _ := w.Result()
	if _, err := fmt.Fprintln(out, cli.RenderReport(cli.Report{
		Image:     req.Image.Name,
		Threshold: req.Confidence,
		Result:    result,
	})); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if result.IsError() {
		return errPredictionFailed
	}
	return nil
}
