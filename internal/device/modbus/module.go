// internal/device/modbus/module.go
package modbus

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/goburrow/modbus"
	"go.uber.org/zap"

	"github.com/tamzrod/lander-pilot/internal/device"
)

// client is the subset of modbus.Client the module uses.
type client interface {
	ReadDiscreteInputs(address, quantity uint16) ([]byte, error)
	ReadInputRegisters(address, quantity uint16) ([]byte, error)
	WriteMultipleCoils(address, quantity uint16, value []byte) ([]byte, error)
	WriteSingleRegister(address, value uint16) ([]byte, error)
}

// Config is the wiring of the pilot's controls onto one I/O module.
type Config struct {
	Mode     string // "tcp" | "rtu"
	Endpoint string
	UnitID   uint8
	Timeout  time.Duration

	BaudRate int
	DataBits int
	Parity   string
	StopBits int

	ThrottleRegister  uint16
	ThrottleFullScale uint16
	MotionRegister    uint16
	ButtonInput       uint16
	IndicatorCoil     uint16
	ToneRegister      uint16
}

// Module is a Modbus I/O module carrying the throttle pot, the joystick
// buttons, the accelerometer, the tri-color LED and the buzzer.
//
// Inputs are read in one Refresh per period and served from cache, so
// the sampler never blocks on the bus. A failed Refresh keeps the last
// good values. Requests are serialized on one connection.
type Module struct {
	mu     sync.Mutex
	cfg    Config
	client client
	closer func() error
	log    *zap.SugaredLogger

	throttle float64
	buttons  [3]bool // boost, left, right
	motion   device.Vector
	failing  bool
}

// New connects to the module.
func New(cfg Config, log *zap.SugaredLogger) (*Module, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("device modbus: endpoint required")
	}

	switch cfg.Mode {
	case "", "tcp":
		h := modbus.NewTCPClientHandler(cfg.Endpoint)
		h.Timeout = cfg.Timeout
		h.SlaveId = cfg.UnitID
		if err := h.Connect(); err != nil {
			return nil, fmt.Errorf("device modbus: connect %s: %w", cfg.Endpoint, err)
		}
		return newModule(cfg, modbus.NewClient(h), h.Close, log), nil

	case "rtu":
		h := modbus.NewRTUClientHandler(cfg.Endpoint)
		h.Timeout = cfg.Timeout
		h.SlaveId = cfg.UnitID
		h.BaudRate = cfg.BaudRate
		h.DataBits = cfg.DataBits
		h.Parity = cfg.Parity
		h.StopBits = cfg.StopBits
		if err := h.Connect(); err != nil {
			return nil, fmt.Errorf("device modbus: open %s: %w", cfg.Endpoint, err)
		}
		return newModule(cfg, modbus.NewClient(h), h.Close, log), nil

	default:
		return nil, fmt.Errorf("device modbus: unsupported mode %q", cfg.Mode)
	}
}

func newModule(cfg Config, c client, closer func() error, log *zap.SugaredLogger) *Module {
	if cfg.ThrottleFullScale == 0 {
		cfg.ThrottleFullScale = math.MaxUint16
	}
	return &Module{cfg: cfg, client: c, closer: closer, log: log}
}

// Close releases the connection.
func (m *Module) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closer == nil {
		return nil
	}
	return m.closer()
}

// ---- input side ----

// Refresh reads all inputs from the module.
// All-or-nothing: any failure keeps every cached value.
func (m *Module) Refresh() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	throttle, buttons, motion, err := m.readInputs()
	if err != nil {
		if !m.failing {
			m.log.Warnw("io module read failed, holding last inputs", "endpoint", m.cfg.Endpoint, "err", err)
		}
		m.failing = true
		return err
	}
	if m.failing {
		m.log.Infow("io module read recovered", "endpoint", m.cfg.Endpoint)
	}
	m.failing = false

	m.throttle = throttle
	m.buttons = buttons
	m.motion = motion
	return nil
}

func (m *Module) readInputs() (float64, [3]bool, device.Vector, error) {
	var buttons [3]bool

	raw, err := m.client.ReadInputRegisters(m.cfg.ThrottleRegister, 1)
	if err != nil {
		return 0, buttons, device.Vector{}, fmt.Errorf("throttle register: %w", err)
	}
	regs := unpackRegisters(raw)
	if len(regs) < 1 {
		return 0, buttons, device.Vector{}, errors.New("throttle register: short payload")
	}
	throttle := float64(regs[0]) / float64(m.cfg.ThrottleFullScale)
	if throttle > 1 {
		throttle = 1
	}

	raw, err = m.client.ReadInputRegisters(m.cfg.MotionRegister, 3)
	if err != nil {
		return 0, buttons, device.Vector{}, fmt.Errorf("motion registers: %w", err)
	}
	regs = unpackRegisters(raw)
	if len(regs) < 3 {
		return 0, buttons, device.Vector{}, errors.New("motion registers: short payload")
	}
	motion := device.Vector{
		X: float64(int16(regs[0])),
		Y: float64(int16(regs[1])),
		Z: float64(int16(regs[2])),
	}

	raw, err = m.client.ReadDiscreteInputs(m.cfg.ButtonInput, 3)
	if err != nil {
		return 0, buttons, device.Vector{}, fmt.Errorf("button inputs: %w", err)
	}
	bits := unpackBits(raw, 3)
	copy(buttons[:], bits)

	return throttle, buttons, motion, nil
}

// Inputs exposes the cached values through the sampler's contracts.
func (m *Module) Inputs() device.Inputs {
	return device.Inputs{
		Throttle:  throttleIn{m},
		Boost:     buttonIn{m, 0},
		RollLeft:  buttonIn{m, 1},
		RollRight: buttonIn{m, 2},
		Motion:    motionIn{m},
	}
}

type throttleIn struct{ m *Module }

func (t throttleIn) Read() float64 {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	return t.m.throttle
}

type buttonIn struct {
	m   *Module
	idx int
}

func (b buttonIn) Pressed() bool {
	b.m.mu.Lock()
	defer b.m.mu.Unlock()
	return b.m.buttons[b.idx]
}

type motionIn struct{ m *Module }

func (mi motionIn) Axis() device.Vector {
	mi.m.mu.Lock()
	defer mi.m.mu.Unlock()
	return mi.m.motion
}

// ---- output side ----

// Set drives the indicator coils: red, green, blue.
func (m *Module) Set(c device.Color) error {
	coils := []bool{c == device.ColorRed, c == device.ColorGreen, c == device.ColorBlue}

	m.mu.Lock()
	defer m.mu.Unlock()

	_, err := m.client.WriteMultipleCoils(m.cfg.IndicatorCoil, uint16(len(coils)), packBits(coils))
	if err != nil {
		return fmt.Errorf("device modbus: indicator: %w", err)
	}
	return nil
}

// Tone writes the buzzer frequency in Hz.
func (m *Module) Tone(hz float64) error {
	return m.writeTone(toneRegister(hz))
}

// Silence writes 0 Hz.
func (m *Module) Silence() error {
	return m.writeTone(0)
}

func (m *Module) writeTone(v uint16) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.client.WriteSingleRegister(m.cfg.ToneRegister, v); err != nil {
		return fmt.Errorf("device modbus: tone: %w", err)
	}
	return nil
}

// ---- helpers (pure geometry) ----

func toneRegister(hz float64) uint16 {
	if hz <= 0 || math.IsNaN(hz) {
		return 0
	}
	if hz >= math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(math.Round(hz))
}

func packBits(bits []bool) []byte {
	n := (len(bits) + 7) / 8
	out := make([]byte, n)
	for i, v := range bits {
		if v {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	return out
}

func unpackBits(data []byte, count int) []bool {
	out := make([]bool, count)
	for i := 0; i < count; i++ {
		byteIdx := i / 8
		bitIdx := i % 8
		if byteIdx >= len(data) {
			out[i] = false
			continue
		}
		out[i] = (data[byteIdx]&(1<<bitIdx) != 0)
	}
	return out
}

func unpackRegisters(data []byte) []uint16 {
	n := len(data) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out
}
