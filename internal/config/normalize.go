// internal/config/normalize.go
package config

// Driver and mode names.
const (
	DriverModbus = "modbus"
	DriverStub   = "stub"

	ModbusTCP = "tcp"
	ModbusRTU = "rtu"
)

// Defaults applied by Normalize.
const (
	DefaultPeriodMs          = 50
	DefaultForegroundMs      = 1000
	DefaultLanderTimeoutMs   = 40
	DefaultDashTimeoutMs     = 20
	DefaultThrottleSnap      = 99.5
	DefaultRollDeadband      = 0.1
	DefaultDangerFuel        = 50
	DefaultCrashToneHz       = 300
	DefaultLandedToneHz      = 440
	DefaultCueMs             = 250
	DefaultModbusTimeoutMs   = 20
	DefaultThrottleFullScale = 4095
	DefaultLogFile           = "pilot.log"
	DefaultLogLevel          = "info"
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	p := &cfg.Pilot

	// ---- timing ----

	if p.Schedule.ForegroundMs == 0 {
		p.Schedule.ForegroundMs = DefaultForegroundMs
	}
	p.Schedule.PeriodMs, p.Lander.TimeoutMs, _ = cycleTiming(*p)
	if p.Dashboard.TimeoutMs == 0 {
		p.Dashboard.TimeoutMs = DefaultDashTimeoutMs
	}

	// ---- control + feedback ----

	if p.Input.ThrottleSnap == 0 {
		p.Input.ThrottleSnap = DefaultThrottleSnap
	}
	if p.Input.RollDeadband == 0 {
		p.Input.RollDeadband = DefaultRollDeadband
	}
	if p.Feedback.DangerFuel == 0 {
		p.Feedback.DangerFuel = DefaultDangerFuel
	}
	if p.Feedback.CrashToneHz == 0 {
		p.Feedback.CrashToneHz = DefaultCrashToneHz
	}
	if p.Feedback.LandedToneHz == 0 {
		p.Feedback.LandedToneHz = DefaultLandedToneHz
	}
	if p.Feedback.CueMs == 0 {
		p.Feedback.CueMs = DefaultCueMs
	}

	// ---- device ----

	if p.Device.Driver == "" {
		p.Device.Driver = DriverStub
	}
	if m := p.Device.Modbus; m != nil {
		if m.Mode == "" {
			m.Mode = ModbusTCP
		}
		if m.TimeoutMs == 0 {
			m.TimeoutMs = DefaultModbusTimeoutMs
		}
		if m.ThrottleFullScale == 0 {
			m.ThrottleFullScale = DefaultThrottleFullScale
		}
		if m.Mode == ModbusRTU {
			if m.BaudRate == 0 {
				m.BaudRate = 19200
			}
			if m.DataBits == 0 {
				m.DataBits = 8
			}
			if m.Parity == "" {
				m.Parity = "E"
			}
			if m.StopBits == 0 {
				m.StopBits = 1
			}
		}
	}

	// ---- logging ----

	if p.Log.File == "" {
		p.Log.File = DefaultLogFile
	}
	if p.Log.Level == "" {
		p.Log.Level = DefaultLogLevel
	}
	if p.Log.MaxSizeMB == 0 {
		p.Log.MaxSizeMB = 10
	}
	if p.Log.MaxBackups == 0 {
		p.Log.MaxBackups = 3
	}
	if p.Log.MaxAgeDays == 0 {
		p.Log.MaxAgeDays = 7
	}
}

// cycleTiming resolves the period and the two blocking waits that share one
// scheduler cycle: the lander round trip and, with the modbus driver, the
// io-refresh request. Unset values resolve to their defaults; an unset lander
// timeout takes what is left of 4/5 of the period, capped at the default.
func cycleTiming(p PilotConfig) (period, lander, io int) {
	period = p.Schedule.PeriodMs
	if period == 0 {
		period = DefaultPeriodMs
	}

	if p.Device.Driver == DriverModbus && p.Device.Modbus != nil {
		io = p.Device.Modbus.TimeoutMs
		if io == 0 {
			io = DefaultModbusTimeoutMs
		}
	}

	lander = p.Lander.TimeoutMs
	if lander == 0 {
		lander = DefaultLanderTimeoutMs
		if limit := period*4/5 - io; lander > limit {
			lander = limit
		}
		if lander < 1 {
			lander = 1
		}
	}

	return period, lander, io
}
