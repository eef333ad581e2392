package worldconfig

import (
	"fmt"

	"github.com/tinyrange/botarena/internal/worldmap"
)

const DefaultArenaRadius int32 = 32

// ThemeConfig picks and configures a worldmap.Theme by name. "arena" is
// the only kind this implementation ships (spec.md's only named map
// generator); the Kind field exists so a future theme can be added
// without changing the preset file format.
type ThemeConfig struct {
	Kind   string `yaml:"kind,omitempty"`
	Radius int32  `yaml:"radius,omitempty"`
}

func (c *ThemeConfig) normalize() {
	if c.Kind == "" {
		c.Kind = "arena"
	}
	if c.Radius == 0 {
		c.Radius = DefaultArenaRadius
	}
}

// Build constructs the worldmap.Theme c describes.
func (c ThemeConfig) Build() (worldmap.Theme, error) {
	radius := c.Radius
	if radius == 0 {
		radius = DefaultArenaRadius
	}
	switch c.Kind {
	case "", "arena":
		return worldmap.NewArenaTheme(radius), nil
	default:
		return nil, fmt.Errorf("worldconfig: unknown theme kind %q", c.Kind)
	}
}
