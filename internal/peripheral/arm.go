package peripheral

import (
	"math/rand/v2"

	"github.com/tinyrange/botarena/internal/action"
)

// ArmConfig pins the stab cooldown and its jitter fraction, both sourced
// from world Policy (see MotorConfig for why these aren't constants).
type ArmConfig struct {
	BaseCooldown uint32
	JitterFrac   float64 // e.g. 0.15 for +-15%
}

func (cfg ArmConfig) jitteredCooldown(r *rand.Rand) uint32 {
	spread := float64(cfg.BaseCooldown) * cfg.JitterFrac
	offset := (r.Float64()*2 - 1) * spread
	return uint32(float64(cfg.BaseCooldown) + offset)
}

// Arm accepts a single stab command, grounded on original_source's
// crates/kartoffel/src/arm.rs: "introduces a cooldown period of 60_000 +-
// 15% ticks". The jittered duration is rolled from the shared world RNG
// the tick after the command lands, not at the moment it's issued, since
// MMIOStore has no RNG access.
type Arm struct {
	cfg ArmConfig

	cooldown  uint32
	requested bool
	firing    bool
}

func NewArm(cfg ArmConfig) *Arm {
	return &Arm{cfg: cfg}
}

func (a *Arm) ready() bool {
	return a.cooldown == 0 && !a.requested
}

func (a *Arm) Tick(ctx TickContext) *action.BotAction {
	if a.requested {
		a.requested = false
		a.firing = true
		a.cooldown = a.cfg.jitteredCooldown(ctx.RNG)
		if a.cooldown == 0 {
			a.cooldown = 1
		}
		return nil
	}

	if a.cooldown == 0 {
		return nil
	}

	a.cooldown--
	if a.cooldown != 0 || !a.firing {
		return nil
	}
	a.firing = false
	return &action.BotAction{Kind: action.ArmStab, At: ctx.Facing.Forward(ctx.Pos)}
}

func (a *Arm) MMIOLoad(addr uint32) (uint32, error) {
	switch addr {
	case ArmBase:
		if a.ready() {
			return 1, nil
		}
		return 0, nil
	case ArmBase + 4:
		return 0, errWriteOnly{}
	default:
		return 0, errNoSuchRegister{addr}
	}
}

func (a *Arm) MMIOStore(addr uint32, val uint32) error {
	switch addr {
	case ArmBase:
		return errReadOnly{}
	case ArmBase + 4:
		if a.ready() && val == 1 {
			a.requested = true
		}
		return nil
	default:
		return errNoSuchRegister{addr}
	}
}
