// internal/telemetry/encode.go
package telemetry

import (
	"fmt"

	"github.com/tamzrod/lander-pilot/internal/state"
)

// EncodeCommand renders the lander request for one period.
// Throttle is truncated toward zero; roll carries three decimals.
// No IO. No side effects.
func EncodeCommand(c state.ControlState) []byte {
	return []byte(fmt.Sprintf(
		"%s:%s\n%s:%d\n%s:%.3f",
		KeyCommand, CommandMarker,
		KeyThrottle, int(c.Throttle),
		KeyRoll, positiveZero(c.Roll),
	))
}

// EncodeDashboard renders the spectator view.
// Reduced on purpose: velocity, orientation and the outcome flags are not sent.
func EncodeDashboard(l state.LanderState, c state.ControlState) []byte {
	return []byte(fmt.Sprintf(
		"%s:%.2f\n%s:%f\n%s:%f\n%s:%.2f\n",
		KeyFuel, l.Fuel,
		KeyThrottle, c.Throttle,
		KeyRoll, positiveZero(c.Roll),
		KeyAltitude, l.Altitude,
	))
}

// positiveZero maps -0 to 0 so a level roll never renders as "-0.000".
func positiveZero(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}
