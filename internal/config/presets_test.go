package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/typewriterx"
)

func TestParse_MergesDefaults(t *testing.T) {
	f, err := Parse([]byte(`
defaults:
  typeSpeedMs: 70
presets:
  hero:
    phrases: ["Hochbau", "Tiefbau"]
    holdMs: 500
  footer:
    phrases: ["Bis bald."]
    typeSpeedMs: 0
    loop: false
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"footer", "hero"}, f.Names())

	hero, err := f.Preset("hero")
	require.NoError(t, err)
	assert.Equal(t, []string{"Hochbau", "Tiefbau"}, hero.Phrases)
	assert.Equal(t, 70, hero.TypeSpeedMs, "document defaults apply")
	assert.Equal(t, 500, hero.HoldMs, "preset overrides defaults")
	assert.Equal(t, typewriterx.DefaultConfig().DeleteSpeedMs, hero.DeleteSpeedMs, "engine defaults fill the rest")
	assert.True(t, hero.Loop)

	footer, err := f.Preset("footer")
	require.NoError(t, err)
	assert.Equal(t, 0, footer.TypeSpeedMs, "explicit zero is kept")
	assert.False(t, footer.Loop)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		invalid bool
	}{
		{"bad yaml", "presets: [", false},
		{"no presets", "defaults:\n  holdMs: 1\n", false},
		{"empty phrases", "presets:\n  hero:\n    phrases: []\n", true},
		{"negative speed", "presets:\n  hero:\n    phrases: [a]\n    typeSpeedMs: -3\n", true},
		{"negative default", "defaults:\n  holdMs: -1\npresets:\n  hero:\n    phrases: [a]\n", true},
		{"wrong type", "presets:\n  hero:\n    phrases: [a]\n    loop: sometimes\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Equal(t, tt.invalid, errors.Is(err, typewriterx.ErrInvalidConfig), err.Error())
		})
	}
}

func TestPreset_Unknown(t *testing.T) {
	_, err := Default().Preset("nope")
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestPreset_ReturnsCopy(t *testing.T) {
	f := Default()
	a, err := f.Preset("hero")
	require.NoError(t, err)
	a.Phrases[0] = "changed"

	b, err := f.Preset("hero")
	require.NoError(t, err)
	assert.NotEqual(t, "changed", b.Phrases[0])
}

func TestDefault_AllPresetsStart(t *testing.T) {
	f := Default()
	require.NotEmpty(t, f.Names())
	for _, name := range f.Names() {
		cfg, err := f.Preset(name)
		require.NoError(t, err)
		require.NoError(t, cfg.Validate(), name)
	}

	about, err := f.Preset("about")
	require.NoError(t, err)
	assert.False(t, about.Loop)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("presets:\n  x:\n    phrases: [Bau]\n"), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Path)
	assert.Equal(t, []string{"x"}, f.Names())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
