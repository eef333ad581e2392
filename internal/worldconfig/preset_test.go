package worldconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tinyrange/botarena/internal/world"
)

func TestLoadPresetAppliesDefaultsForOmittedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "preset.yaml")

	yamlContent := `name: duel
policy:
  maxAliveBots: 2
theme:
  kind: arena
  radius: 10
`
	if err := os.WriteFile(path, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("write preset: %v", err)
	}

	p, err := LoadPreset(path)
	if err != nil {
		t.Fatalf("LoadPreset: %v", err)
	}

	if p.Name != "duel" {
		t.Errorf("Name = %q, want duel", p.Name)
	}
	if p.Version != PresetVersion {
		t.Errorf("Version = %d, want %d", p.Version, PresetVersion)
	}

	policy := p.Policy.Build()
	def := world.DefaultPolicy()

	if policy.MaxAliveBots != 2 {
		t.Errorf("MaxAliveBots = %d, want 2 (explicit override)", policy.MaxAliveBots)
	}
	if policy.MaxQueuedBots != def.MaxQueuedBots {
		t.Errorf("MaxQueuedBots = %d, want default %d", policy.MaxQueuedBots, def.MaxQueuedBots)
	}
	if !policy.AutoRespawn {
		t.Errorf("AutoRespawn should default true when omitted")
	}

	if _, err := p.Theme.Build(); err != nil {
		t.Fatalf("Theme.Build: %v", err)
	}
}

func TestPolicyConfigAutoRespawnExplicitFalseOverridesDefault(t *testing.T) {
	f := false
	c := PolicyConfig{AutoRespawn: &f}
	p := c.Build()
	if p.AutoRespawn {
		t.Errorf("AutoRespawn should be false when explicitly set")
	}
}

func TestThemeConfigRejectsUnknownKind(t *testing.T) {
	c := ThemeConfig{Kind: "dungeon"}
	if _, err := c.Build(); err == nil {
		t.Fatalf("expected an error for an unknown theme kind")
	}
}

func TestWritePresetRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "preset.yaml")

	respawn := false
	original := Preset{
		Name:        "arena-small",
		Description: "a tiny arena for quick matches",
		Policy: PolicyConfig{
			AutoRespawn:  &respawn,
			MaxAliveBots: 4,
		},
		Theme: ThemeConfig{Kind: "arena", Radius: 8},
	}

	if err := WritePreset(path, original); err != nil {
		t.Fatalf("WritePreset: %v", err)
	}

	loaded, err := LoadPreset(path)
	if err != nil {
		t.Fatalf("LoadPreset after WritePreset: %v", err)
	}

	if loaded.Name != "arena-small" {
		t.Errorf("Name = %q, want arena-small", loaded.Name)
	}
	if loaded.Theme.Radius != 8 {
		t.Errorf("Theme.Radius = %d, want 8", loaded.Theme.Radius)
	}
	if loaded.Policy.AutoRespawn == nil || *loaded.Policy.AutoRespawn {
		t.Errorf("AutoRespawn should round-trip as false")
	}
}
