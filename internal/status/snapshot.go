// internal/status/snapshot.go
package status

// Snapshot is the link health as the foreground loop sees it.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Health         uint16
	LastErrorCode  uint16
	SecondsInError uint16
}

// Healthy reports whether the display can omit the link line.
func (s Snapshot) Healthy() bool {
	return s.Health != HealthError
}
