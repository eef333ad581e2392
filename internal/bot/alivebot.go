package bot

import (
	"math/rand/v2"

	"github.com/tinyrange/botarena/internal/action"
	"github.com/tinyrange/botarena/internal/cpu"
	"github.com/tinyrange/botarena/internal/firmware"
	"github.com/tinyrange/botarena/internal/geom"
	"github.com/tinyrange/botarena/internal/peripheral"
)

// PeripheralConfig bundles the policy-sourced cooldown configuration every
// alive bot's motor/arm/radar are built with (spec.md 9: pin these in
// policy configuration, not as constants).
type PeripheralConfig struct {
	Motor peripheral.MotorConfig
	Arm   peripheral.ArmConfig
	Radar peripheral.RadarCooldown
}

// AliveBot is a running bot: its CPU, its private firmware image, its
// peripherals addressed by MMIO range, and the bookkeeping the world
// needs (position, facing, age, event history). It implements cpu.MMIO
// directly so a world can drive its CPU without knowing the peripheral
// layout.
type AliveBot struct {
	ID        ID
	Firmware  *firmware.Firmware
	CPU       *cpu.CPU
	Pos       geom.Vec2
	Facing    geom.Dir
	Age       uint64
	Ephemeral bool
	Events    EventRing

	timer   *peripheral.Timer
	battery *peripheral.Battery
	serial  *peripheral.Serial
	compass *peripheral.Compass
	motor   *peripheral.Motor
	arm     *peripheral.Arm
	radar   *peripheral.Radar
}

// NewAliveBot builds a fresh bot from firmware at pos, seeding its
// peripherals from rng (the timer's seed and nothing else -- everything
// downstream of that is deterministic given the shared world RNG stream
// used for jitter at tick time).
func NewAliveBot(id ID, fw *firmware.Firmware, pos geom.Vec2, facing geom.Dir, ephemeral bool, cfg PeripheralConfig, seedRNG *rand.Rand) *AliveBot {
	return &AliveBot{
		ID:        id,
		Firmware:  fw,
		CPU:       cpu.New(fw),
		Pos:       pos,
		Facing:    facing,
		Ephemeral: ephemeral,

		timer:   peripheral.NewTimer(seedRNG),
		battery: peripheral.NewBattery(),
		serial:  peripheral.NewSerial(),
		compass: &peripheral.Compass{},
		motor:   peripheral.NewMotor(cfg.Motor),
		arm:     peripheral.NewArm(cfg.Arm),
		radar:   peripheral.NewRadar(cfg.Radar),
	}
}

// CPUState returns the persistable snapshot of b's CPU.
func (b *AliveBot) CPUState() cpu.State { return b.CPU.Snapshot() }

// RestoreAliveBot rebuilds a bot from a persisted CPU state rather than
// booting fresh firmware, so a reload resumes a bot exactly where a save
// left off (spec.md 6). Peripherals start fresh -- their in-flight
// command/cooldown state isn't part of the persisted record.
func RestoreAliveBot(id ID, fw *firmware.Firmware, state cpu.State, pos geom.Vec2, facing geom.Dir, age uint64, ephemeral bool, cfg PeripheralConfig, seedRNG *rand.Rand) *AliveBot {
	b := NewAliveBot(id, fw, pos, facing, ephemeral, cfg, seedRNG)
	b.CPU = cpu.Restore(state)
	b.Age = age
	return b
}

// device returns the peripheral owning addr, or nil if addr falls outside
// every known window.
func (b *AliveBot) device(addr uint32) peripheral.MMIODevice {
	switch {
	case inWindow(addr, peripheral.TimerBase):
		return b.timer
	case inWindow(addr, peripheral.BatteryBase):
		return b.battery
	case inWindow(addr, peripheral.SerialBase):
		return b.serial
	case inWindow(addr, peripheral.MotorBase):
		return b.motor
	case inWindow(addr, peripheral.ArmBase):
		return b.arm
	case inWindow(addr, peripheral.RadarBase):
		return b.radar
	case inWindow(addr, peripheral.CompassBase):
		return b.compass
	default:
		return nil
	}
}

func inWindow(addr, base uint32) bool {
	return addr >= base && addr < base+peripheral.WindowSize
}

// Load implements cpu.MMIO.
func (b *AliveBot) Load(addr uint32) (uint32, error) {
	dev := b.device(addr)
	if dev == nil {
		return 0, errNoDevice{addr}
	}
	return dev.MMIOLoad(addr)
}

// Store implements cpu.MMIO.
func (b *AliveBot) Store(addr uint32, val uint32) error {
	dev := b.device(addr)
	if dev == nil {
		return errNoDevice{addr}
	}
	return dev.MMIOStore(addr, val)
}

type errNoDevice struct{ addr uint32 }

func (e errNoDevice) Error() string { return "no peripheral mapped at this address" }

// RunCPU steps the CPU up to n times, stopping early and returning the
// fault or halt that ended it, if any. n is the world's CPU-steps-per-tick
// policy value (spec.md 4.6: "drives N CPU steps per tick").
func (b *AliveBot) RunCPU(n int) error {
	for i := 0; i < n; i++ {
		if err := b.CPU.Tick(b); err != nil {
			return err
		}
	}
	return nil
}

// TickPeripherals advances every peripheral by one tick and returns
// whatever BotActions they produced this tick (zero, one or -- if an arm
// stab and a motor step both resolve on the same tick -- two). A
// completed turn is applied directly to Facing since it only affects this
// bot and never needs world-level arbitration (spec.md 4.3/4.6).
func (b *AliveBot) TickPeripherals(rng *rand.Rand, scan func(center geom.Vec2, n int) []uint32) []action.BotAction {
	b.timer.Tick()
	b.battery.Tick()
	b.serial.Tick()

	ctx := peripheral.TickContext{
		Facing: b.Facing,
		Pos:    b.Pos,
		RNG:    rng,
		Scan:   scan,
	}

	b.compass.Tick(ctx)
	b.radar.Tick(ctx)

	var actions []action.BotAction

	motorResult := b.motor.Tick(ctx)
	if motorResult.Turned {
		if motorResult.Right {
			b.Facing = b.Facing.TurnRight()
		} else {
			b.Facing = b.Facing.TurnLeft()
		}
	} else if motorResult.Action != nil {
		actions = append(actions, *motorResult.Action)
	}

	if act := b.arm.Tick(ctx); act != nil {
		actions = append(actions, *act)
	}

	b.Age++
	return actions
}

// SerialTail returns the last n words written to the serial log, for
// snapshot publication.
func (b *AliveBot) SerialTail(n int) []uint32 {
	return b.serial.Tail(n)
}
