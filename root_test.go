package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.aimuz.me/toolbox/internal/app"
)

func TestRootCmd_Flags(t *testing.T) {
	r := newRootCmd()
	var got rootOptions
	r.run = func(opts rootOptions) (int, error) {
		got = opts
		return 0, nil
	}
	r.cmd.SetArgs([]string{"--config", "/tmp/toolbox.yaml", "--log-level", "debug", "--probe", "window"})

	code, err := r.execute()
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, rootOptions{configPath: "/tmp/toolbox.yaml", logLevel: "debug", probe: "window"}, got)
}

func TestRootCmd_RunError(t *testing.T) {
	r := newRootCmd()
	boom := errors.New("no tray")
	r.run = func(rootOptions) (int, error) { return 1, boom }
	r.cmd.SetArgs(nil)

	code, err := r.execute()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, code)
}

func TestRootCmd_Version(t *testing.T) {
	r := newRootCmd()
	r.run = func(rootOptions) (int, error) {
		t.Fatal("run must not be called")
		return 0, nil
	}
	var out bytes.Buffer
	r.cmd.SetOut(&out)
	r.cmd.SetArgs([]string{"version"})

	_, err := r.execute()
	require.NoError(t, err)
	assert.Contains(t, out.String(), version)
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	r := newRootCmd()
	r.run = func(rootOptions) (int, error) { return 0, nil }
	r.cmd.SetArgs([]string{"extra"})

	_, err := r.execute()
	assert.Error(t, err)
}

func TestAppOptions_KeepRunningWithoutWindows(t *testing.T) {
	opts := appOptions(app.New("dev"))

	assert.False(t, opts.Mac.ApplicationShouldTerminateAfterLastWindowClosed)
	assert.True(t, opts.Windows.DisableQuitOnLastWindowClosed)
	assert.True(t, opts.Linux.DisableQuitOnLastWindowClosed)
	assert.Equal(t, "Toolbox", opts.Name)
	assert.Len(t, opts.Services, 1)
}
