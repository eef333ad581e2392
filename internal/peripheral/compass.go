package peripheral

// measurementPeriod is how many ticks pass between compass readings
// (original_source backend/kartoffels-world bot/compass.rs: 128_000).
const measurementPeriod = 128_000

// Compass reports the bot's facing, but only once per measurement window:
// a read consumes the current measurement and returns 0 until the next one
// lands. Grounded on bot/compass.rs, with one deliberate deviation: the
// original encodes "no measurement yet" and "facing north" both as 0,
// which is ambiguous. Here the code is dir+1, so 0 unambiguously means "no
// reading available" and 1..4 mean N/E/S/W.
type Compass struct {
	code      uint32 // 0 = nothing pending, else (Dir.CompassCode()+1)
	countdown uint32
}

func (c *Compass) Tick(ctx TickContext) {
	if c.countdown > 0 {
		c.countdown--
		return
	}
	c.code = ctx.Facing.CompassCode() + 1
	c.countdown = measurementPeriod
}

func (c *Compass) MMIOLoad(addr uint32) (uint32, error) {
	if addr != CompassBase {
		return 0, errNoSuchRegister{addr}
	}
	code := c.code
	c.code = 0
	return code, nil
}

func (c *Compass) MMIOStore(addr uint32, val uint32) error {
	return errReadOnly{}
}
