package pdftext

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"time"
)

// stderrLogCap bounds the stderr kept in logs. pdftotext and desktop viewers
// print a line or two on failure; anything longer is noise.
const stderrLogCap = 2 << 10

// Runner executes an external command. pdftotext and the chart viewer go
// through it so tests can stand in for both.
type Runner interface {
	Run(ctx context.Context, name string, logger *slog.Logger, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner runs real processes.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, logger *slog.Logger, args ...string) ([]byte, []byte, error) {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	elapsed := time.Since(start)
	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		logger.Error("command failed",
			"cmd", name,
			"args", args,
			"exit_code", exitCode,
			"duration_ms", elapsed.Milliseconds(),
			"error", err,
			"stderr", truncate(errb.String(), stderrLogCap),
		)
		return out.Bytes(), errb.Bytes(), err
	}

	logger.Debug("command ok",
		"cmd", name,
		"args", args,
		"duration_ms", elapsed.Milliseconds(),
		"stdout_bytes", out.Len(),
	)
	return out.Bytes(), errb.Bytes(), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
