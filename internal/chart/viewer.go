package chart

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"github.com/joseph-ayodele/lap-analysis/internal/pdftext"
)

// Opener shows a rendered file to the user.
type Opener interface {
	Open(ctx context.Context, path string) error
}

// ViewerOpener hands the file to a desktop viewer command.
type ViewerOpener struct {
	Viewer string // empty -> platform default
	Runner pdftext.Runner
	Logger *slog.Logger
}

// DefaultViewer returns the platform's "open with default app" command.
func DefaultViewer(goos string) string {
	switch goos {
	case "darwin":
		return "open"
	case "windows":
		return "explorer"
	default:
		return "xdg-open"
	}
}

func (o ViewerOpener) Open(ctx context.Context, path string) error {
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}
	runner := o.Runner
	if runner == nil {
		runner = pdftext.ExecRunner{}
	}
	viewer := o.Viewer
	if viewer == "" {
		viewer = DefaultViewer(runtime.GOOS)
	}

	_, stderr, err := runner.Run(ctx, viewer, logger, path)
	if err != nil {
		msg := strings.TrimSpace(string(stderr))
		if msg != "" {
			return fmt.Errorf("open %s with %s: %w: %s", path, viewer, err, msg)
		}
		return fmt.Errorf("open %s with %s: %w", path, viewer, err)
	}
	logger.Debug("chart opened", "path", path, "viewer", viewer)
	return nil
}
