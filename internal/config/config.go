// internal/config/config.go
package config

type Config struct {
	Pilot PilotConfig `yaml:"pilot"`
}

type PilotConfig struct {
	Lander    LanderConfig    `yaml:"lander"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Schedule  ScheduleConfig  `yaml:"schedule"`
	Input     InputConfig     `yaml:"input"`
	Feedback  FeedbackConfig  `yaml:"feedback"`
	Device    DeviceConfig    `yaml:"device"`
	Log       LogConfig       `yaml:"log"`
}

// ---- PEERS ----

type LanderConfig struct {
	Endpoint  string `yaml:"endpoint"`
	TimeoutMs int    `yaml:"timeout_ms"` // bounded wait for one response
}

type DashboardConfig struct {
	Endpoint  string      `yaml:"endpoint"`
	TimeoutMs int         `yaml:"timeout_ms"` // write deadline only; no response is read
	NATS      *NATSConfig `yaml:"nats"`       // optional spectator bus
}

type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// ---- TIMING ----

type ScheduleConfig struct {
	PeriodMs     int `yaml:"period_ms"`     // background jobs
	ForegroundMs int `yaml:"foreground_ms"` // outcome loop
}

// ---- CONTROL ----

type InputConfig struct {
	ThrottleSnap float64 `yaml:"throttle_snap"`
	RollDeadband float64 `yaml:"roll_deadband"`
}

type FeedbackConfig struct {
	DangerFuel   float64 `yaml:"danger_fuel"`
	CrashToneHz  float64 `yaml:"crash_tone_hz"`
	LandedToneHz float64 `yaml:"landed_tone_hz"`
	CueMs        int     `yaml:"cue_ms"`
}

// ---- DEVICE SHIM ----

type DeviceConfig struct {
	Driver string        `yaml:"driver"` // "modbus" | "stub"
	Modbus *ModbusConfig `yaml:"modbus"`
	Stub   *StubConfig   `yaml:"stub"`
}

// ModbusConfig maps the pilot's controls onto one Modbus I/O module.
type ModbusConfig struct {
	Mode      string `yaml:"mode"`     // "tcp" | "rtu"
	Endpoint  string `yaml:"endpoint"` // host:port (tcp) or serial device (rtu)
	UnitID    uint8  `yaml:"unit_id"`
	TimeoutMs int    `yaml:"timeout_ms"`

	// RTU only
	BaudRate int    `yaml:"baud_rate"`
	DataBits int    `yaml:"data_bits"`
	Parity   string `yaml:"parity"`
	StopBits int    `yaml:"stop_bits"`

	ThrottleRegister  uint16 `yaml:"throttle_register"`   // FC 4, one register
	ThrottleFullScale uint16 `yaml:"throttle_full_scale"` // raw value mapped to 1.0
	MotionRegister    uint16 `yaml:"motion_register"`     // FC 4, three int16 registers x,y,z
	ButtonInput       uint16 `yaml:"button_input"`        // FC 2, three inputs boost,left,right
	IndicatorCoil     uint16 `yaml:"indicator_coil"`      // FC 15, three coils red,green,blue
	ToneRegister      uint16 `yaml:"tone_register"`       // FC 6, tone frequency in Hz, 0 = silent
}

type StubConfig struct {
	Throttle float64    `yaml:"throttle"`
	Motion   [3]float64 `yaml:"motion"`
}

// ---- LOGGING ----

type LogConfig struct {
	File       string `yaml:"file"`
	Level      string `yaml:"level"`
	Console    bool   `yaml:"console"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}
