package peripheral

// RadarCooldown returns how long a scan of an n x n neighbourhood takes to
// resolve. Spec.md only says the cooldown "scales with n" without pinning
// a formula, so this is a policy-configurable linear scale, consistent
// with how motor/arm cooldowns are pinned rather than hard-coded.
type RadarCooldown func(n int) uint32

// LinearRadarCooldown is the default RadarCooldown: cooldown grows
// linearly with the side length, so a 9x9 scan takes three times as long
// as a 3x3 one.
func LinearRadarCooldown(perCell uint32) RadarCooldown {
	return func(n int) uint32 {
		return perCell * uint32(n)
	}
}

// validRadarSizes are the only neighbourhood sizes a scan command accepts
// (spec.md 4.3).
var validRadarSizes = map[uint32]bool{3: true, 5: true, 7: true, 9: true}

// Radar fills its own readable window with the result of an NxN scan once
// a pending command's cooldown expires. Unlike the other actuators it
// never produces a BotAction: the scan only affects what its own bot can
// read back, so there's nothing for world-level arbitration to resolve.
type Radar struct {
	cooldownFor RadarCooldown

	cooldown uint32
	pendingN uint32 // requested size, not yet committed to a cooldown
	firingN  uint32 // size being counted down to delivery
	window   []uint32
}

func NewRadar(cooldownFor RadarCooldown) *Radar {
	return &Radar{cooldownFor: cooldownFor}
}

func (r *Radar) ready() bool {
	return r.cooldown == 0 && r.pendingN == 0 && r.firingN == 0
}

func (r *Radar) Tick(ctx TickContext) {
	if r.pendingN != 0 {
		n := r.pendingN
		r.pendingN = 0
		r.firingN = n
		r.cooldown = r.cooldownFor(int(n))
		if r.cooldown == 0 {
			r.window = ctx.Scan(ctx.Pos, int(n))
			r.firingN = 0
		}
		return
	}

	if r.cooldown == 0 {
		return
	}

	r.cooldown--
	if r.cooldown == 0 {
		r.window = ctx.Scan(ctx.Pos, int(r.firingN))
		r.firingN = 0
	}
}

func (r *Radar) MMIOLoad(addr uint32) (uint32, error) {
	switch {
	case addr == RadarBase:
		if r.ready() {
			return 1, nil
		}
		return 0, nil
	case addr == RadarBase+4:
		return 0, errWriteOnly{}
	case addr >= RadarBase+8 && addr < RadarBase+8+uint32(len(r.window))*4:
		idx := (addr - (RadarBase + 8)) / 4
		return r.window[idx], nil
	default:
		return 0, errNoSuchRegister{addr}
	}
}

func (r *Radar) MMIOStore(addr uint32, val uint32) error {
	switch addr {
	case RadarBase:
		return errReadOnly{}
	case RadarBase + 4:
		if r.ready() && validRadarSizes[val] {
			r.pendingN = val
		}
		return nil
	default:
		return errReadOnly{}
	}
}
