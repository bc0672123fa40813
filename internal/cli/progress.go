package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/schollz/progressbar/v3"
)

// UploadProgress draws a byte progress bar for a request body. It is
// meant to be passed as predict.Config.UploadObserver.
type UploadProgress struct {
	bar    *progressbar.ProgressBar
	writer io.Writer
}

// NewUploadProgress creates a bar for an upload of roughly size bytes.
func NewUploadProgress(w io.Writer, name string, size int64) *UploadProgress {
	u := &UploadProgress{writer: w}
	u.bar = progressbar.NewOptions64(size,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(fmt.Sprintf("[cyan][bold]Uploading %s...[reset]", name)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionClearOnFinish(),
	)
	return u
}

// Write advances the bar. It never fails so an observer cannot abort
// the upload it is watching.
func (u *UploadProgress) Write(p []byte) (int, error) {
	if err := u.bar.Add(len(p)); err != nil {
		slog.Debug("Failed to update upload progress", "error", err)
	}
	return len(p), nil
}

// Finish completes and clears the bar.
func (u *UploadProgress) Finish() {
	if err := u.bar.Finish(); err != nil {
		slog.Debug("Failed to finish upload progress", "error", err)
	}
}
