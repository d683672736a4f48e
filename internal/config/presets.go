// Package config loads typewriter presets: named typewriterx.Config values,
// one per call site, kept in a YAML file.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/comalice/typewriterx"
)

//go:embed presets.yaml
var defaultPresets []byte

// ErrUnknownPreset is returned by Preset for a name not in the file.
var ErrUnknownPreset = errors.New("unknown preset")

// File is a parsed, validated preset file.
type File struct {
	Path    string
	presets map[string]typewriterx.Config
}

type rawFile struct {
	Defaults yaml.Node            `yaml:"defaults"`
	Presets  map[string]yaml.Node `yaml:"presets"`
}

// Load reads and parses the preset file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Path = path
	return f, nil
}

// Default returns the presets compiled into the binary.
func Default() *File {
	f, err := Parse(defaultPresets)
	if err != nil {
		panic(fmt.Sprintf("embedded presets: %v", err))
	}
	return f
}

// Parse decodes a preset document. Each preset is decoded on top of the
// document's defaults, which are decoded on top of typewriterx.DefaultConfig,
// so a preset only lists what differs. Every preset must validate.
func Parse(data []byte) (*File, error) {
	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if len(raw.Presets) == 0 {
		return nil, errors.New("no presets defined")
	}

	base := typewriterx.DefaultConfig()
	if !raw.Defaults.IsZero() {
		if err := raw.Defaults.Decode(&base); err != nil {
			return nil, fmt.Errorf("defaults: %w", err)
		}
	}

	f := &File{presets: make(map[string]typewriterx.Config, len(raw.Presets))}
	for name, node := range raw.Presets {
		cfg := base.Clone()
		if err := node.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
		f.presets[name] = cfg
	}
	return f, nil
}

// Preset returns a copy of the named config.
func (f *File) Preset(name string) (typewriterx.Config, error) {
	cfg, ok := f.presets[name]
	if !ok {
		return typewriterx.Config{}, fmt.Errorf("%w %q", ErrUnknownPreset, name)
	}
	return cfg.Clone(), nil
}

// Names returns the preset names in sorted order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.presets))
	for name := range f.presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
