// internal/config/validate.go
package config

import (
	"fmt"
	"math"
	"net"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
// Zero values mean "use the default" and are accepted here.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil config")
	}
	p := cfg.Pilot

	// ------------------------------------------------------------
	// PEERS
	// ------------------------------------------------------------

	if err := checkEndpoint("lander.endpoint", p.Lander.Endpoint); err != nil {
		return err
	}
	if err := checkEndpoint("dashboard.endpoint", p.Dashboard.Endpoint); err != nil {
		return err
	}
	if p.Lander.TimeoutMs < 0 {
		return fmt.Errorf("lander.timeout_ms must be >= 0, got %d", p.Lander.TimeoutMs)
	}
	if p.Dashboard.TimeoutMs < 0 {
		return fmt.Errorf("dashboard.timeout_ms must be >= 0, got %d", p.Dashboard.TimeoutMs)
	}
	if n := p.Dashboard.NATS; n != nil {
		if n.URL == "" {
			return fmt.Errorf("dashboard.nats.url is required when dashboard.nats is set")
		}
		if n.Subject == "" {
			return fmt.Errorf("dashboard.nats.subject is required when dashboard.nats is set")
		}
	}

	// ------------------------------------------------------------
	// TIMING
	// ------------------------------------------------------------

	if p.Schedule.PeriodMs < 0 {
		return fmt.Errorf("schedule.period_ms must be >= 0, got %d", p.Schedule.PeriodMs)
	}
	if p.Schedule.ForegroundMs < 0 {
		return fmt.Errorf("schedule.foreground_ms must be >= 0, got %d", p.Schedule.ForegroundMs)
	}
	// Blocking waits of one cycle must finish before the next one.
	period, lander, io := cycleTiming(p)
	if lander+io >= period {
		if io == 0 {
			return fmt.Errorf(
				"lander.timeout_ms (%d) must be shorter than schedule.period_ms (%d)",
				lander, period,
			)
		}
		return fmt.Errorf(
			"lander.timeout_ms (%d) + device.modbus.timeout_ms (%d) must be shorter than schedule.period_ms (%d)",
			lander, io, period,
		)
	}

	// ------------------------------------------------------------
	// CONTROL + FEEDBACK
	// ------------------------------------------------------------

	if s := p.Input.ThrottleSnap; s < 0 || s > 100 {
		return fmt.Errorf("input.throttle_snap must be within [0,100], got %g", s)
	}
	if d := p.Input.RollDeadband; d < 0 || d >= math.Pi/2 {
		return fmt.Errorf("input.roll_deadband must be within [0,pi/2), got %g", d)
	}
	if f := p.Feedback.DangerFuel; f < 0 || f > 100 {
		return fmt.Errorf("feedback.danger_fuel must be within [0,100], got %g", f)
	}
	if p.Feedback.CrashToneHz < 0 || p.Feedback.LandedToneHz < 0 {
		return fmt.Errorf("feedback tone frequencies must be >= 0")
	}
	if p.Feedback.CueMs < 0 {
		return fmt.Errorf("feedback.cue_ms must be >= 0, got %d", p.Feedback.CueMs)
	}

	// ------------------------------------------------------------
	// DEVICE SHIM
	// ------------------------------------------------------------

	switch p.Device.Driver {
	case "", DriverStub:
	case DriverModbus:
		if err := validateModbus(p.Device.Modbus); err != nil {
			return err
		}
	default:
		return fmt.Errorf("device.driver %q is not supported (want %q or %q)", p.Device.Driver, DriverModbus, DriverStub)
	}

	// ------------------------------------------------------------
	// LOGGING
	// ------------------------------------------------------------

	switch p.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not supported", p.Log.Level)
	}

	return nil
}

func validateModbus(m *ModbusConfig) error {
	if m == nil {
		return fmt.Errorf("device.modbus is required when device.driver is %q", DriverModbus)
	}
	if m.Endpoint == "" {
		return fmt.Errorf("device.modbus.endpoint is required")
	}
	if m.TimeoutMs < 0 {
		return fmt.Errorf("device.modbus.timeout_ms must be >= 0, got %d", m.TimeoutMs)
	}

	switch m.Mode {
	case "", ModbusTCP:
		if err := checkEndpoint("device.modbus.endpoint", m.Endpoint); err != nil {
			return err
		}
	case ModbusRTU:
		switch m.Parity {
		case "", "N", "E", "O":
		default:
			return fmt.Errorf("device.modbus.parity %q is not supported (want N, E or O)", m.Parity)
		}
		if m.BaudRate < 0 || m.DataBits < 0 || m.StopBits < 0 {
			return fmt.Errorf("device.modbus serial settings must be >= 0")
		}
	default:
		return fmt.Errorf("device.modbus.mode %q is not supported (want %q or %q)", m.Mode, ModbusTCP, ModbusRTU)
	}

	// three consecutive addresses are used for motion, buttons and indicator
	if m.MotionRegister > math.MaxUint16-2 || m.ButtonInput > math.MaxUint16-2 || m.IndicatorCoil > math.MaxUint16-2 {
		return fmt.Errorf("device.modbus: three-wide blocks must fit the address space")
	}

	return nil
}

func checkEndpoint(field, endpoint string) error {
	if endpoint == "" {
		return fmt.Errorf("%s is required", field)
	}
	if _, _, err := net.SplitHostPort(endpoint); err != nil {
		return fmt.Errorf("%s %q: %v", field, endpoint, err)
	}
	return nil
}
