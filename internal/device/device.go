// internal/device/device.go
package device

// Capability contracts for the pilot's hardware.
// Reads never fail: a shim that loses its hardware returns the last good value.

// AnalogIn is one analog channel scaled to [0,1].
type AnalogIn interface {
	Read() float64
}

// DigitalIn is one push button or switch.
type DigitalIn interface {
	Pressed() bool
}

// Vector is one raw 3-axis motion sample. Units are irrelevant; only direction is used.
type Vector struct {
	X, Y, Z float64
}

// MotionSensor is a 3-axis accelerometer.
type MotionSensor interface {
	Axis() Vector
}

// Indicator is a tri-color status light.
type Indicator interface {
	Set(c Color) error
}

// Display renders a few lines of status text, replacing what was shown before.
type Display interface {
	Show(lines ...string) error
}

// Speaker plays a single tone until silenced.
type Speaker interface {
	Tone(hz float64) error
	Silence() error
}

// Inputs bundles what the sampler reads.
type Inputs struct {
	Throttle  AnalogIn
	Boost     DigitalIn
	RollLeft  DigitalIn
	RollRight DigitalIn
	Motion    MotionSensor
}

// Outputs bundles what the foreground loop drives.
type Outputs struct {
	Indicator Indicator
	Display   Display
	Speaker   Speaker
}

// ---- COLOR ----

type Color int

const (
	ColorOff Color = iota
	ColorRed
	ColorGreen
	ColorBlue
)

func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorBlue:
		return "blue"
	default:
		return "off"
	}
}
