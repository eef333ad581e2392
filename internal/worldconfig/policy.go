package worldconfig

import "github.com/tinyrange/botarena/internal/world"

// PolicyConfig is the YAML-facing mirror of world.Policy. Every numeric
// field left at its zero value falls back to world.DefaultPolicy's
// figure; AutoRespawn uses a pointer since its default is true and a
// zero value can't distinguish "omitted" from "explicitly false".
type PolicyConfig struct {
	AutoRespawn *bool `yaml:"autoRespawn,omitempty"`

	MaxAliveBots  int `yaml:"maxAliveBots,omitempty"`
	MaxQueuedBots int `yaml:"maxQueuedBots,omitempty"`

	CPUStepsPerTick int `yaml:"cpuStepsPerTick,omitempty"`
	SpawnAttempts   int `yaml:"spawnAttempts,omitempty"`

	TickRate  uint64  `yaml:"tickRate,omitempty"`
	Overclock float64 `yaml:"overclock,omitempty"`

	MotorStepCooldown uint32 `yaml:"motorStepCooldown,omitempty"`
	MotorTurnCooldown uint32 `yaml:"motorTurnCooldown,omitempty"`

	ArmBaseCooldown uint32  `yaml:"armBaseCooldown,omitempty"`
	ArmJitterFrac   float64 `yaml:"armJitterFrac,omitempty"`

	RadarCooldownPerCell uint32 `yaml:"radarCooldownPerCell,omitempty"`
}

func (c *PolicyConfig) normalize() {
	if c.AutoRespawn == nil {
		respawn := true
		c.AutoRespawn = &respawn
	}
}

// Build merges c onto world.DefaultPolicy(), letting any field c leaves
// at its zero value keep the default's figure.
func (c PolicyConfig) Build() world.Policy {
	p := world.DefaultPolicy()

	if c.AutoRespawn != nil {
		p.AutoRespawn = *c.AutoRespawn
	}
	if c.MaxAliveBots != 0 {
		p.MaxAliveBots = c.MaxAliveBots
	}
	if c.MaxQueuedBots != 0 {
		p.MaxQueuedBots = c.MaxQueuedBots
	}
	if c.CPUStepsPerTick != 0 {
		p.CPUStepsPerTick = c.CPUStepsPerTick
	}
	if c.SpawnAttempts != 0 {
		p.SpawnAttempts = c.SpawnAttempts
	}
	if c.TickRate != 0 {
		p.TickRate = c.TickRate
	}
	if c.Overclock != 0 {
		p.Overclock = c.Overclock
	}
	if c.MotorStepCooldown != 0 {
		p.MotorStepCooldown = c.MotorStepCooldown
	}
	if c.MotorTurnCooldown != 0 {
		p.MotorTurnCooldown = c.MotorTurnCooldown
	}
	if c.ArmBaseCooldown != 0 {
		p.ArmBaseCooldown = c.ArmBaseCooldown
	}
	if c.ArmJitterFrac != 0 {
		p.ArmJitterFrac = c.ArmJitterFrac
	}
	if c.RadarCooldownPerCell != 0 {
		p.RadarCooldownPerCell = c.RadarCooldownPerCell
	}
	return p
}
