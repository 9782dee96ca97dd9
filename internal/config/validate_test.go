// internal/config/validate_test.go
package config

import (
	"strings"
	"testing"
)

// helper to build a minimal valid config quickly
func minimal() *Config {
	return &Config{
		Pilot: PilotConfig{
			Lander:    LanderConfig{Endpoint: "192.168.80.9:65200"},
			Dashboard: DashboardConfig{Endpoint: "192.168.80.9:65250"},
		},
	}
}

// ---- tests ----

func TestValidate_Minimal(t *testing.T) {
	if err := Validate(minimal()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MissingLander(t *testing.T) {
	cfg := minimal()
	cfg.Pilot.Lander.Endpoint = ""

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for missing lander endpoint, got nil")
	}
}

func TestValidate_BadDashboardEndpoint(t *testing.T) {
	cfg := minimal()
	cfg.Pilot.Dashboard.Endpoint = "no-port-here"

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for endpoint without port, got nil")
	}
}

func TestValidate_TimeoutMustFitPeriod(t *testing.T) {
	cfg := minimal()
	cfg.Pilot.Schedule.PeriodMs = 50
	cfg.Pilot.Lander.TimeoutMs = 50

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for timeout == period, got nil")
	}

	cfg.Pilot.Lander.TimeoutMs = 49
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_TimeoutMustFitDefaultPeriod(t *testing.T) {
	cfg := minimal()
	cfg.Pilot.Lander.TimeoutMs = 80 // period_ms unset: 50ms applies

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for timeout beyond default period, got nil")
	}

	cfg.Pilot.Lander.TimeoutMs = DefaultPeriodMs - 1
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_ModbusTimeoutSharesPeriod(t *testing.T) {
	cfg := minimal()
	cfg.Pilot.Device.Driver = DriverModbus
	cfg.Pilot.Device.Modbus = &ModbusConfig{Endpoint: "10.0.0.20:502", TimeoutMs: 20}
	cfg.Pilot.Lander.TimeoutMs = 40

	err := Validate(cfg)
	if err == nil || !strings.Contains(err.Error(), "device.modbus.timeout_ms") {
		t.Fatalf("expected lander+io budget error, got %v", err)
	}

	cfg.Pilot.Lander.TimeoutMs = 25
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_ModbusTimeoutAloneExceedsPeriod(t *testing.T) {
	cfg := minimal()
	cfg.Pilot.Schedule.PeriodMs = 20
	cfg.Pilot.Device.Driver = DriverModbus
	cfg.Pilot.Device.Modbus = &ModbusConfig{Endpoint: "10.0.0.20:502"} // default 20ms

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for io timeout filling the period, got nil")
	}
}

func TestValidate_NATSNeedsSubject(t *testing.T) {
	cfg := minimal()
	cfg.Pilot.Dashboard.NATS = &NATSConfig{URL: "nats://127.0.0.1:4222"}

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for nats without subject, got nil")
	}
}

func TestValidate_ThrottleSnapRange(t *testing.T) {
	cfg := minimal()
	cfg.Pilot.Input.ThrottleSnap = 120

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for throttle_snap > 100, got nil")
	}
}

func TestValidate_ModbusRequiresBlock(t *testing.T) {
	cfg := minimal()
	cfg.Pilot.Device.Driver = DriverModbus

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for modbus driver without modbus block, got nil")
	}

	cfg.Pilot.Device.Modbus = &ModbusConfig{Endpoint: "10.0.0.20:502"}
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_ModbusRTUParity(t *testing.T) {
	cfg := minimal()
	cfg.Pilot.Device.Driver = DriverModbus
	cfg.Pilot.Device.Modbus = &ModbusConfig{Mode: ModbusRTU, Endpoint: "/dev/ttyUSB0", Parity: "X"}

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for unknown parity, got nil")
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := minimal()
	cfg.Pilot.Device.Driver = "gpio"

	err := Validate(cfg)
	if err == nil || !strings.Contains(err.Error(), "gpio") {
		t.Fatalf("expected unsupported driver error, got %v", err)
	}
}

func TestNormalize_Defaults(t *testing.T) {
	cfg := minimal()
	Normalize(cfg)

	p := cfg.Pilot
	if p.Schedule.PeriodMs != DefaultPeriodMs {
		t.Fatalf("period: got %d want %d", p.Schedule.PeriodMs, DefaultPeriodMs)
	}
	if p.Schedule.ForegroundMs != DefaultForegroundMs {
		t.Fatalf("foreground: got %d want %d", p.Schedule.ForegroundMs, DefaultForegroundMs)
	}
	if p.Lander.TimeoutMs != DefaultLanderTimeoutMs {
		t.Fatalf("lander timeout: got %d want %d", p.Lander.TimeoutMs, DefaultLanderTimeoutMs)
	}
	if p.Input.ThrottleSnap != DefaultThrottleSnap || p.Input.RollDeadband != DefaultRollDeadband {
		t.Fatalf("input defaults not applied: %+v", p.Input)
	}
	if p.Feedback.DangerFuel != DefaultDangerFuel {
		t.Fatalf("danger fuel: got %g want %d", p.Feedback.DangerFuel, DefaultDangerFuel)
	}
	if p.Device.Driver != DriverStub {
		t.Fatalf("driver: got %q want %q", p.Device.Driver, DriverStub)
	}
}

func TestNormalize_TimeoutFollowsShortPeriod(t *testing.T) {
	cfg := minimal()
	cfg.Pilot.Schedule.PeriodMs = 20
	Normalize(cfg)

	if cfg.Pilot.Lander.TimeoutMs != 16 {
		t.Fatalf("expected timeout clipped to 16ms, got %d", cfg.Pilot.Lander.TimeoutMs)
	}
}

func TestNormalize_LanderTimeoutLeavesRoomForIO(t *testing.T) {
	cfg := minimal()
	cfg.Pilot.Device.Driver = DriverModbus
	cfg.Pilot.Device.Modbus = &ModbusConfig{Endpoint: "10.0.0.20:502"}

	if err := Validate(cfg); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	Normalize(cfg)

	p := cfg.Pilot
	if p.Lander.TimeoutMs != 20 {
		t.Fatalf("expected lander timeout 20ms next to io, got %d", p.Lander.TimeoutMs)
	}
	if sum := p.Lander.TimeoutMs + p.Device.Modbus.TimeoutMs; sum >= p.Schedule.PeriodMs {
		t.Fatalf("cycle waits %dms do not fit period %dms", sum, p.Schedule.PeriodMs)
	}
}

func TestNormalize_KeepsExplicitTimeout(t *testing.T) {
	cfg := minimal()
	cfg.Pilot.Lander.TimeoutMs = 30
	Normalize(cfg)

	if cfg.Pilot.Lander.TimeoutMs != 30 || cfg.Pilot.Schedule.PeriodMs != DefaultPeriodMs {
		t.Fatalf("got timeout=%d period=%d", cfg.Pilot.Lander.TimeoutMs, cfg.Pilot.Schedule.PeriodMs)
	}
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	raw := []byte(`
pilot:
  lander:
    endpoint: "127.0.0.1:65200"
    timeout: 40
`)
	if _, err := Parse(raw); err == nil {
		t.Fatalf("expected unknown key error, got nil")
	}
}

func TestParse_FullDocument(t *testing.T) {
	raw := []byte(`
pilot:
  lander:
    endpoint: "192.168.80.9:65200"
    timeout_ms: 25
  dashboard:
    endpoint: "192.168.80.9:65250"
    nats:
      url: "nats://127.0.0.1:4222"
      subject: "lander.dashboard"
  schedule:
    period_ms: 50
  device:
    driver: modbus
    modbus:
      endpoint: "10.0.0.20:502"
      unit_id: 3
      motion_register: 1
`)
	cfg, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse err=%v", err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate err=%v", err)
	}
	if cfg.Pilot.Lander.TimeoutMs != 25 {
		t.Fatalf("timeout: got %d", cfg.Pilot.Lander.TimeoutMs)
	}
	if cfg.Pilot.Dashboard.NATS == nil || cfg.Pilot.Dashboard.NATS.Subject != "lander.dashboard" {
		t.Fatalf("nats block not decoded: %+v", cfg.Pilot.Dashboard.NATS)
	}
	if m := cfg.Pilot.Device.Modbus; m == nil || m.UnitID != 3 || m.MotionRegister != 1 {
		t.Fatalf("modbus block not decoded: %+v", m)
	}
}
