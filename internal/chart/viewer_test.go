package chart

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	name   string
	args   []string
	stderr []byte
	err    error
}

func (f *fakeRunner) Run(_ context.Context, name string, _ *slog.Logger, args ...string) ([]byte, []byte, error) {
	f.name, f.args = name, args
	return nil, f.stderr, f.err
}

func TestViewerOpener(t *testing.T) {
	run := &fakeRunner{}
	o := ViewerOpener{Viewer: "feh", Runner: run}

	require.NoError(t, o.Open(context.Background(), "/tmp/lapchart.png"))
	assert.Equal(t, "feh", run.name)
	assert.Equal(t, []string{"/tmp/lapchart.png"}, run.args)
}

func TestViewerOpener_Failure(t *testing.T) {
	run := &fakeRunner{stderr: []byte("cannot open display\n"), err: errors.New("exit status 1")}
	err := ViewerOpener{Viewer: "feh", Runner: run}.Open(context.Background(), "x.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot open display")
}

func TestDefaultViewer(t *testing.T) {
	assert.Equal(t, "open", DefaultViewer("darwin"))
	assert.Equal(t, "xdg-open", DefaultViewer("linux"))
	assert.Equal(t, "xdg-open", DefaultViewer("freebsd"))
	assert.Equal(t, "explorer", DefaultViewer("windows"))
}
