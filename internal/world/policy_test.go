package world

import "testing"

func TestDefaultPolicyMatchesSpecCooldownFigures(t *testing.T) {
	p := DefaultPolicy()
	if p.MotorStepCooldown != 20_000 {
		t.Fatalf("step cooldown = %d, want 20000", p.MotorStepCooldown)
	}
	if p.MotorTurnCooldown != 10_000 {
		t.Fatalf("turn cooldown = %d, want 10000", p.MotorTurnCooldown)
	}
	if p.ArmBaseCooldown != 60_000 {
		t.Fatalf("arm cooldown = %d, want 60000", p.ArmBaseCooldown)
	}
	if p.CPUStepsPerTick != 1000 {
		t.Fatalf("cpu steps per tick = %d, want 1000", p.CPUStepsPerTick)
	}
	if p.TickRate != 64_000 {
		t.Fatalf("tick rate = %d, want 64000", p.TickRate)
	}
	if !p.AutoRespawn {
		t.Fatalf("auto respawn should default true")
	}
}

func TestPeripheralConfigDerivesFromPolicy(t *testing.T) {
	p := DefaultPolicy()
	cfg := p.PeripheralConfig()
	if cfg.Motor.StepCooldown != p.MotorStepCooldown {
		t.Fatalf("motor step cooldown mismatch")
	}
	if cfg.Arm.BaseCooldown != p.ArmBaseCooldown {
		t.Fatalf("arm base cooldown mismatch")
	}
	if cfg.Radar(5) != p.RadarCooldownPerCell*5 {
		t.Fatalf("radar cooldown(5) = %d, want %d", cfg.Radar(5), p.RadarCooldownPerCell*5)
	}
}
