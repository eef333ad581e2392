package peripheral

import "github.com/tinyrange/botarena/internal/action"

// Motor command codes written to MotorBase+4.
const (
	motorCmdStep      uint32 = 1
	motorCmdTurnLeft  uint32 = 2
	motorCmdTurnRight uint32 = 3
)

// MotorConfig pins the cooldowns spec.md leaves as policy configuration
// ("exact motor/arm cooldown numbers differ between folders in the repo...
// an implementer should pin these in policy configuration rather than
// hard-code") -- callers build one from the world's Policy.
type MotorConfig struct {
	StepCooldown uint32
	TurnCooldown uint32
}

// Motor accepts one command at a time -- step forward, turn left or turn
// right -- and only while not already cooling down from the last one.
// Turning happens to the bot's own facing and carries no effect on any
// other bot, so it never goes through world-level action arbitration; a
// completed step does, via the returned BotAction.
type Motor struct {
	cfg MotorConfig

	cooldown   uint32
	pendingCmd uint32
	firingCmd  uint32
}

func NewMotor(cfg MotorConfig) *Motor {
	return &Motor{cfg: cfg}
}

// MotorResult reports what, if anything, a Motor tick resolved into.
type MotorResult struct {
	Action *action.BotAction
	Turned bool
	Right  bool // only meaningful when Turned is true
}

func (m *Motor) ready() bool {
	return m.cooldown == 0 && m.pendingCmd == 0
}

func (m *Motor) Tick(ctx TickContext) MotorResult {
	if m.pendingCmd != 0 {
		cmd := m.pendingCmd
		m.pendingCmd = 0
		m.firingCmd = cmd
		if cmd == motorCmdStep {
			m.cooldown = m.cfg.StepCooldown
		} else {
			m.cooldown = m.cfg.TurnCooldown
		}
		return MotorResult{}
	}

	if m.cooldown == 0 {
		return MotorResult{}
	}

	m.cooldown--
	if m.cooldown != 0 {
		return MotorResult{}
	}

	cmd := m.firingCmd
	m.firingCmd = 0
	switch cmd {
	case motorCmdStep:
		return MotorResult{Action: &action.BotAction{
			Kind: action.MotorMove,
			At:   ctx.Facing.Forward(ctx.Pos),
		}}
	case motorCmdTurnLeft:
		return MotorResult{Turned: true, Right: false}
	case motorCmdTurnRight:
		return MotorResult{Turned: true, Right: true}
	default:
		return MotorResult{}
	}
}

func (m *Motor) MMIOLoad(addr uint32) (uint32, error) {
	switch addr {
	case MotorBase:
		if m.ready() {
			return 1, nil
		}
		return 0, nil
	case MotorBase + 4:
		return 0, errWriteOnly{}
	default:
		return 0, errNoSuchRegister{addr}
	}
}

func (m *Motor) MMIOStore(addr uint32, val uint32) error {
	switch addr {
	case MotorBase:
		return errReadOnly{}
	case MotorBase + 4:
		if m.ready() && (val == motorCmdStep || val == motorCmdTurnLeft || val == motorCmdTurnRight) {
			m.pendingCmd = val
		}
		return nil
	default:
		return errNoSuchRegister{addr}
	}
}
