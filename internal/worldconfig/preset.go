// Package worldconfig loads Policy and Theme presets from YAML files on
// disk, the way the teacher's internal/bundle package loads bundle
// metadata: a small typed struct, yaml.v3 unmarshal/marshal, and a
// normalize step that fills in defaults for anything the file omits.
package worldconfig

import (
	"fmt"
	"os"

	"github.com/tinyrange/botarena/internal/world"
	"github.com/tinyrange/botarena/internal/worldmap"
	"gopkg.in/yaml.v3"
)

const PresetVersion = 1

// Preset is the on-disk shape of a world configuration: a named policy
// and map theme a server operator can hand to NewWorld without writing
// Go.
type Preset struct {
	Version     int    `yaml:"version"`
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`

	Policy PolicyConfig `yaml:"policy"`
	Theme  ThemeConfig  `yaml:"theme"`
}

func (p *Preset) normalize() {
	if p.Version == 0 {
		p.Version = PresetVersion
	}
	if p.Name == "" {
		p.Name = "default"
	}
	p.Policy.normalize()
	p.Theme.normalize()
}

// LoadPreset reads and parses a preset YAML file from path.
func LoadPreset(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("worldconfig: read %s: %w", path, err)
	}

	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Preset{}, fmt.Errorf("worldconfig: parse %s: %w", path, err)
	}
	p.normalize()
	return p, nil
}

// WritePreset writes p to path as YAML, normalizing it first.
func WritePreset(path string, p Preset) error {
	p.normalize()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("worldconfig: create %s: %w", path, err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(&p); err != nil {
		return fmt.Errorf("worldconfig: encode %s: %w", path, err)
	}
	return enc.Close()
}

// Build returns the world.Policy and worldmap.Theme this preset describes,
// or an error if the theme kind is unknown.
func (p Preset) Build() (world.Policy, worldmap.Theme, error) {
	theme, err := p.Theme.Build()
	if err != nil {
		return world.Policy{}, nil, err
	}
	return p.Policy.Build(), theme, nil
}
