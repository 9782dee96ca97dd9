// internal/status/encode.go
package status

import "fmt"

// HealthName returns a short label for a health code.
func HealthName(h uint16) string {
	switch h {
	case HealthUnknown:
		return "unknown"
	case HealthOK:
		return "ok"
	case HealthError:
		return "error"
	default:
		return fmt.Sprintf("health(%d)", h)
	}
}

// ErrorName returns a short label for an error code.
func ErrorName(code uint16) string {
	switch code {
	case ErrorNone:
		return "none"
	case ErrorTimeout:
		return "timeout"
	case ErrorTransport:
		return "transport"
	default:
		return "error"
	}
}

// Line renders the snapshot as one display line.
// No IO. No side effects.
func Line(s Snapshot) string {
	if s.Health != HealthError {
		return "Link: " + HealthName(s.Health)
	}
	return fmt.Sprintf("Link lost %ds (%s)", s.SecondsInError, ErrorName(s.LastErrorCode))
}
