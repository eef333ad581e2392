package world

import (
	"github.com/tinyrange/botarena/internal/bot"
	"github.com/tinyrange/botarena/internal/peripheral"
)

// Policy bundles every knob spec.md leaves as configuration rather than a
// constant: respawn behaviour, population caps, the CPU-steps-per-tick
// scheduling constant, the simulation tick rate, and the motor/arm/radar
// cooldowns spec.md 9 explicitly says to "pin in policy configuration
// rather than hard-code" since the two original source trees disagree on
// the exact numbers.
type Policy struct {
	// AutoRespawn, when true, re-queues a non-ephemeral bot immediately
	// after it dies (spec.md 3).
	AutoRespawn bool

	// MaxAliveBots and MaxQueuedBots cap the corresponding tables
	// (spec.md 4.5, 8).
	MaxAliveBots  int
	MaxQueuedBots int

	// CPUStepsPerTick is N in spec.md 4.6 step 2: how many instructions
	// each alive bot's CPU executes per world tick.
	CPUStepsPerTick int

	// SpawnAttempts bounds how many candidate cells the dequeue step
	// tries before giving up and pushing the bot back to the queue head
	// (spec.md 4.6 step 6: "after K attempts").
	SpawnAttempts int

	// TickRate is the default simulation-ticks-per-second spec.md 5
	// names (64 000), before Overclock is applied.
	TickRate uint64

	// Overclock scales TickRate; set via Handle.SetOverclock.
	Overclock float64

	MotorStepCooldown uint32
	MotorTurnCooldown uint32

	ArmBaseCooldown uint32
	ArmJitterFrac   float64

	// RadarCooldownPerCell scales with scan size n (spec.md 4.3: "a
	// cooldown (scales with n)"); spec.md doesn't pin a formula, so this
	// is the per-cell constant fed to peripheral.LinearRadarCooldown.
	RadarCooldownPerCell uint32
}

// DefaultPolicy returns the values this implementation pins for the open
// questions spec.md 9 leaves unresolved. Motor/arm numbers come from
// spec.md 4.3's own "typical" figures; radar and population caps are this
// implementation's own defaults, overridable via worldconfig YAML.
func DefaultPolicy() Policy {
	return Policy{
		AutoRespawn:     true,
		MaxAliveBots:    64,
		MaxQueuedBots:   64,
		CPUStepsPerTick: 1000,
		SpawnAttempts:   16,
		TickRate:        64_000,
		Overclock:       1.0,

		MotorStepCooldown: 20_000,
		MotorTurnCooldown: 10_000,

		ArmBaseCooldown: 60_000,
		ArmJitterFrac:   0.15,

		RadarCooldownPerCell: 1_000,
	}
}

// PeripheralConfig builds the bot-level peripheral configuration this
// policy implies.
func (p Policy) PeripheralConfig() bot.PeripheralConfig {
	return bot.PeripheralConfig{
		Motor: peripheral.MotorConfig{
			StepCooldown: p.MotorStepCooldown,
			TurnCooldown: p.MotorTurnCooldown,
		},
		Arm: peripheral.ArmConfig{
			BaseCooldown: p.ArmBaseCooldown,
			JitterFrac:   p.ArmJitterFrac,
		},
		Radar: peripheral.LinearRadarCooldown(p.RadarCooldownPerCell),
	}
}
