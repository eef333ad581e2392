package peripheral

// Battery exposes a single read-only energy register. Grounded on
// original_source's kartoffels-world bot/battery.rs: energy defaults to
// 4096 and nothing in the original ever drains it, so neither do we.
type Battery struct {
	energy uint32
}

func NewBattery() *Battery {
	return &Battery{energy: 4096}
}

func (b *Battery) Tick() {}

func (b *Battery) MMIOLoad(addr uint32) (uint32, error) {
	if addr != BatteryBase {
		return 0, errNoSuchRegister{addr}
	}
	return b.energy, nil
}

func (b *Battery) MMIOStore(addr uint32, val uint32) error {
	return errReadOnly{}
}
