// internal/telemetry/keys.go
package telemetry

// Wire keys. The protocol is plaintext key:value lines, one datagram per message.
const (
	KeyCommand  = "command"
	KeyThrottle = "throttle"
	KeyRoll     = "roll"

	KeyAltitude    = "altitude"
	KeyFuel        = "fuel"
	KeyFlying      = "flying"
	KeyCrashed     = "crashed"
	KeyOrientation = "orientation"
	KeyVx          = "Vx"
	KeyVy          = "Vy"
)

// CommandMarker is the literal value of the command key in every lander request.
const CommandMarker = "!"

// MaxDatagram is the receive buffer size for one lander response.
// Anything longer is truncated by the transport.
const MaxDatagram = 512
