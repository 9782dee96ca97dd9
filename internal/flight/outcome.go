// internal/flight/outcome.go
package flight

import (
	"github.com/tamzrod/lander-pilot/internal/device"
	"github.com/tamzrod/lander-pilot/internal/state"
)

// Outcome is the state of the flight as the pilot sees it.
type Outcome int

const (
	InFlight Outcome = iota
	Landed
	Crashed
)

func (o Outcome) String() string {
	switch o {
	case InFlight:
		return "in-flight"
	case Landed:
		return "landed"
	case Crashed:
		return "crashed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the outcome ends the session.
func (o Outcome) Terminal() bool {
	return o == Landed || o == Crashed
}

// Evaluate classifies one snapshot. Crashed wins over every other flag.
func Evaluate(l state.LanderState) Outcome {
	switch {
	case l.IsCrashed:
		return Crashed
	case !l.IsFlying:
		return Landed
	default:
		return InFlight
	}
}

// Machine holds the outcome across ticks. Landed and Crashed are absorbing.
type Machine struct {
	outcome Outcome
}

func (m *Machine) Outcome() Outcome { return m.outcome }

// Step evaluates the latest snapshot.
// The bool is true only on the tick that enters a terminal outcome.
func (m *Machine) Step(l state.LanderState) (Outcome, bool) {
	if m.outcome.Terminal() {
		return m.outcome, false
	}

	next := Evaluate(l)
	if next == InFlight {
		return InFlight, false
	}

	m.outcome = next
	return next, true
}

// SelectIndicator picks the in-flight color from the current fuel.
// The threshold itself is on the danger side.
func SelectIndicator(fuel, dangerFuel float64) device.Color {
	if fuel <= dangerFuel {
		return DangerColor
	}
	return SafeColor
}

// Indicator colors.
const (
	SafeColor   = device.ColorBlue
	DangerColor = device.ColorRed
	LandedColor = device.ColorGreen
)
