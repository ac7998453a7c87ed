package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/modalbox/pkg/modal"
)

func writeFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadOptionalMissingFile(t *testing.T) {
	f, err := LoadOptional(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), f)
}

func TestLoadKeepsDefaultsForAbsentKeys(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, `
version: v1.0.0
modal:
  anchor: bottom
  animation_duration: 250ms
  backdrop: false
demo:
  fps: 30
`)

	f, err := LoadOptional(dir)
	require.NoError(t, err)
	assert.Equal(t, "bottom", f.Modal.Anchor)
	assert.Equal(t, 250*time.Millisecond, f.Modal.AnimationDuration)
	assert.False(t, f.Modal.Backdrop)
	assert.Equal(t, 30, f.Demo.FPS)

	assert.Equal(t, 50.0, f.Modal.SwipeThreshold)
	assert.True(t, f.Modal.SwipeToClose)
	assert.Equal(t, 12, f.Demo.ContentRows)
}

func TestLoadRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "modal: [unclosed"},
		{"bad duration", "modal:\n  animation_duration: soon\n"},
		{"invalid version", "version: one\n"},
		{"newer version", "version: v1.5.0\n"},
		{"other major", "version: v2.0.0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.content)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOptionsConversion(t *testing.T) {
	f := Default()
	f.Modal.Anchor = "top"
	f.Modal.Entry = "bottom"
	f.Modal.Easing = "ease-out"
	f.Modal.BackButtonClose = true

	o, err := f.Options()
	require.NoError(t, err)
	assert.Equal(t, modal.AnchorTop, o.Anchor)
	assert.Equal(t, modal.EntryBottom, o.Entry)
	assert.True(t, o.BackButtonClose)
	assert.Equal(t, 400*time.Millisecond, o.AnimationDuration)
	require.NotNil(t, o.Easing)
	assert.Equal(t, 1.0, o.Easing(1))
}

func TestOptionsConversionErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*File)
	}{
		{"anchor", func(f *File) { f.Modal.Anchor = "left" }},
		{"entry", func(f *File) { f.Modal.Entry = "side" }},
		{"easing", func(f *File) { f.Modal.Easing = "wobbly" }},
		{"opacity", func(f *File) { f.Modal.BackdropOpacity = 2 }},
		{"threshold", func(f *File) { f.Modal.SwipeThreshold = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Default()
			tt.mutate(f)
			_, err := f.Options()
			assert.Error(t, err)
		})
	}
}

func TestDefaultRoundTripsIntoDefaultOptions(t *testing.T) {
	o, err := Default().Options()
	require.NoError(t, err)
	d := modal.DefaultOptions()
	assert.Equal(t, d.Anchor, o.Anchor)
	assert.Equal(t, d.SwipeThreshold, o.SwipeThreshold)
	assert.Equal(t, d.BackdropOpacity, o.BackdropOpacity)
	assert.Equal(t, d.KeyboardTopOffset, o.KeyboardTopOffset)
	assert.Equal(t, d.AnimationDuration, o.AnimationDuration)
}

func TestResolveEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "modal:\n  anchor: bottom\n  swipe_threshold: 80\n")
	t.Setenv("MODALBOX_MODAL_ANCHOR", "top")
	t.Setenv("MODALBOX_MODAL_BACKDROP", "false")
	t.Setenv("MODALBOX_MODAL_ANIMATION_DURATION", "1s")

	f, err := Resolve(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "top", f.Modal.Anchor)
	assert.False(t, f.Modal.Backdrop)
	assert.Equal(t, time.Second, f.Modal.AnimationDuration)
	assert.Equal(t, 80.0, f.Modal.SwipeThreshold)
	assert.Equal(t, "black", f.Modal.BackdropColor)
}

func TestResolveFlagsOverrideEnv(t *testing.T) {
	t.Setenv("MODALBOX_MODAL_ANCHOR", "top")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("anchor", "center", "")
	flags.Duration("duration", 400*time.Millisecond, "")
	flags.Bool("backdrop", true, "")
	require.NoError(t, flags.Parse([]string{"--anchor=bottom"}))

	f, err := Resolve(filepath.Join(writeDir(t), FileName), flags)
	require.NoError(t, err)
	assert.Equal(t, "bottom", f.Modal.Anchor)
	assert.Equal(t, 400*time.Millisecond, f.Modal.AnimationDuration, "unset flags keep file values")
	assert.True(t, f.Modal.Backdrop)
}

func TestResolveWithoutPathUsesWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "modal:\n  easing: linear\n")
	t.Chdir(dir)

	f, err := Resolve("", nil)
	require.NoError(t, err)
	assert.Equal(t, "linear", f.Modal.Easing)
}

func writeDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "modal:\n  animation_duration: 400ms\n")
	return dir
}
