// internal/sampler/sampler.go
package sampler

import (
	"errors"
	"math"

	"github.com/tamzrod/lander-pilot/internal/device"
	"github.com/tamzrod/lander-pilot/internal/state"
)

// minMagnitude guards normalization of a motion vector that reads all zeros.
const minMagnitude = 1e-9

// Config holds the deadband constants.
type Config struct {
	ThrottleSnap float64 // throttle at or above this reads 100
	RollDeadband float64 // |tilt| at or below this reads 0 (radians)
}

// Sampler turns device readings into a ControlState.
type Sampler struct {
	cfg   Config
	in    device.Inputs
	store *state.Store
}

func New(cfg Config, in device.Inputs, store *state.Store) (*Sampler, error) {
	if in.Throttle == nil || in.Boost == nil || in.RollLeft == nil || in.RollRight == nil || in.Motion == nil {
		return nil, errors.New("sampler: all inputs required")
	}
	if store == nil {
		return nil, errors.New("sampler: store required")
	}
	return &Sampler{cfg: cfg, in: in, store: store}, nil
}

// Sample reads the devices once and publishes the command.
func (s *Sampler) Sample() state.ControlState {
	c := state.ControlState{
		Throttle: s.throttle(),
		Roll:     s.roll(),
	}
	s.store.SetControl(c)
	return c
}

func (s *Sampler) throttle() float64 {
	if s.in.Boost.Pressed() {
		return 100
	}
	return Throttle(s.in.Throttle.Read(), s.cfg.ThrottleSnap)
}

func (s *Sampler) roll() float64 {
	if s.in.RollLeft.Pressed() {
		return -1
	}
	if s.in.RollRight.Pressed() {
		return 1
	}
	return Roll(s.in.Motion.Axis(), s.cfg.RollDeadband)
}

// Throttle scales an analog reading in [0,1] to [0,100] with a snap at the top of travel.
func Throttle(reading, snap float64) float64 {
	t := reading * 100
	if math.IsNaN(t) || t < 0 {
		return 0
	}
	if t >= snap || t > 100 {
		return 100
	}
	return t
}

// Roll converts a tilt sample into a roll command: the sign-inverted angle
// of the X axis off level, zero inside the deadband.
func Roll(v device.Vector, deadband float64) float64 {
	angle := TiltAngle(v)
	if math.Abs(angle) <= deadband {
		return 0
	}
	return -angle
}

// TiltAngle is asin of the normalized X component. A zero vector reads level.
func TiltAngle(v device.Vector) float64 {
	mag := math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
	if mag <= minMagnitude || math.IsNaN(mag) || math.IsInf(mag, 0) {
		return 0
	}

	x := v.X / mag
	// rounding can push |x| past 1
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}
	return math.Asin(x)
}
