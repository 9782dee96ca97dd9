// internal/state/state.go
package state

// ControlState is the pilot's latest command.
// Latest value only: overwritten every sample, never queued.
type ControlState struct {
	Throttle float64 // [0,100]
	Roll     float64 // ±1 from the joystick, or a tilt angle in radians
}

// LanderState is the latest merged view of the lander's telemetry.
// Fields absent from a message keep their previous value.
type LanderState struct {
	Altitude    float64
	Fuel        float64
	IsFlying    bool
	IsCrashed   bool
	Orientation int
	VelocityX   int
	VelocityY   int
}

// DefaultControl is the startup command: engine off, wings level.
func DefaultControl() ControlState {
	return ControlState{Throttle: 0, Roll: 0}
}

// DefaultLander is the startup snapshot before any telemetry arrives.
func DefaultLander() LanderState {
	return LanderState{Fuel: 100}
}
