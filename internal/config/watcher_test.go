package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReloadsValidChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("presets:\n  hero:\n    phrases: [Alt]\n"), 0o644))

	got := make(chan *File, 4)
	w, err := NewWatcher(path, func(f *File) { got <- f }, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	// An invalid edit is skipped.
	require.NoError(t, os.WriteFile(path, []byte("presets:\n  hero:\n    phrases: []\n"), 0o644))
	require.Eventually(t, func() bool {
		_, failures := w.Stats()
		return failures >= 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Empty(t, got)

	require.NoError(t, os.WriteFile(path, []byte("presets:\n  hero:\n    phrases: [Neu]\n"), 0o644))
	select {
	case f := <-got:
		cfg, err := f.Preset("hero")
		require.NoError(t, err)
		assert.Equal(t, []string{"Neu"}, cfg.Phrases)
	case <-time.After(2 * time.Second):
		t.Fatal("no reload after a valid edit")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("presets:\n  hero:\n    phrases: [Alt]\n"), 0o644))

	w, err := NewWatcher(path, func(*File) { t.Error("unexpected reload") }, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644))
	time.Sleep(100 * time.Millisecond)
	w.Stop()
	w.Stop()

	reloads, failures := w.Stats()
	assert.Zero(t, reloads)
	assert.Zero(t, failures)
}
