// internal/device/console/console.go
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/tamzrod/lander-pilot/internal/device"
)

// Display renders status frames to a text stream (a terminal or serial console).
type Display struct {
	mu   sync.Mutex
	w    io.Writer
	last string
}

func NewDisplay(w io.Writer) *Display {
	return &Display{w: w}
}

// Show writes a frame only when it differs from the previous one.
func (d *Display) Show(lines ...string) error {
	frame := strings.Join(lines, "\n")

	d.mu.Lock()
	defer d.mu.Unlock()

	if frame == d.last {
		return nil
	}
	d.last = frame

	_, err := fmt.Fprintf(d.w, "----\n%s\n", frame)
	return err
}

// Indicator logs color changes. Used when no indicator hardware is attached.
type Indicator struct {
	mu   sync.Mutex
	log  *zap.SugaredLogger
	last device.Color
	set  bool
}

func NewIndicator(log *zap.SugaredLogger) *Indicator {
	return &Indicator{log: log}
}

func (i *Indicator) Set(c device.Color) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.set && i.last == c {
		return nil
	}
	i.last, i.set = c, true
	i.log.Infow("indicator", "color", c.String())
	return nil
}

// Speaker logs tone changes. Used when no audio hardware is attached.
type Speaker struct {
	mu  sync.Mutex
	log *zap.SugaredLogger
	hz  float64
}

func NewSpeaker(log *zap.SugaredLogger) *Speaker {
	return &Speaker{log: log}
}

func (s *Speaker) Tone(hz float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hz = hz
	s.log.Infow("speaker tone", "hz", hz)
	return nil
}

func (s *Speaker) Silence() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hz != 0 {
		s.log.Debugw("speaker silenced", "hz", s.hz)
	}
	s.hz = 0
	return nil
}
