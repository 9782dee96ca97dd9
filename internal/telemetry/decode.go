// internal/telemetry/decode.go
package telemetry

import (
	"math"
	"strconv"
	"strings"

	"github.com/tamzrod/lander-pilot/internal/state"
)

// DecodeSnapshot merges one lander message into an existing state.
//
// Lines are split on CR/LF, each line on its first colon.
// Unknown keys and lines without a colon are skipped.
// A malformed number sets that one field to 0; decoding continues.
// Fields not present in the message are left untouched.
//
// Returns the number of recognized keys applied.
func DecodeSnapshot(b []byte, into *state.LanderState) int {
	if into == nil {
		return 0
	}

	applied := 0

	for _, line := range strings.FieldsFunc(string(b), isLineBreak) {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(value, " \t\x00")

		switch key {
		case KeyAltitude:
			into.Altitude = parseFloat(value)
		case KeyFuel:
			into.Fuel = parseFloat(value)
		case KeyFlying:
			into.IsFlying = parseInt(value) != 0
		case KeyCrashed:
			into.IsCrashed = parseInt(value) != 0
		case KeyOrientation:
			into.Orientation = parseInt(value)
		case KeyVx:
			into.VelocityX = parseInt(value)
		case KeyVy:
			into.VelocityY = parseInt(value)
		default:
			continue
		}
		applied++
	}

	return applied
}

func isLineBreak(r rune) bool {
	return r == '\n' || r == '\r'
}

// parseFloat returns 0 for anything that is not a finite number.
func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// parseInt accepts integers and decimal text (truncated toward zero).
func parseInt(s string) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	f := parseFloat(s)
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0
	}
	return int(f)
}
