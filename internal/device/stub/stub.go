// internal/device/stub/stub.go
package stub

import (
	"sync"

	"github.com/tamzrod/lander-pilot/internal/device"
)

// Panel is an in-memory control panel for bench runs and host-side tests.
// Inputs are set by the caller; outputs are recorded.
type Panel struct {
	mu sync.Mutex

	throttle  float64
	boost     bool
	rollLeft  bool
	rollRight bool
	motion    device.Vector

	colors []device.Color
	shown  [][]string
	tones  []float64
	tone   float64
}

func New() *Panel { return &Panel{} }

// ---- input setters ----

func (p *Panel) SetThrottle(v float64) {
	p.mu.Lock()
	p.throttle = v
	p.mu.Unlock()
}

func (p *Panel) SetButtons(boost, left, right bool) {
	p.mu.Lock()
	p.boost, p.rollLeft, p.rollRight = boost, left, right
	p.mu.Unlock()
}

func (p *Panel) SetMotion(v device.Vector) {
	p.mu.Lock()
	p.motion = v
	p.mu.Unlock()
}

// Inputs exposes the panel through the sampler's contracts.
func (p *Panel) Inputs() device.Inputs {
	return device.Inputs{
		Throttle:  analog{p},
		Boost:     button{p, func(p *Panel) bool { return p.boost }},
		RollLeft:  button{p, func(p *Panel) bool { return p.rollLeft }},
		RollRight: button{p, func(p *Panel) bool { return p.rollRight }},
		Motion:    motion{p},
	}
}

// Outputs exposes the panel through the foreground loop's contracts.
func (p *Panel) Outputs() device.Outputs {
	return device.Outputs{Indicator: p, Display: p, Speaker: p}
}

// ---- output recording ----

func (p *Panel) Set(c device.Color) error {
	p.mu.Lock()
	p.colors = append(p.colors, c)
	p.mu.Unlock()
	return nil
}

func (p *Panel) Show(lines ...string) error {
	cp := make([]string, len(lines))
	copy(cp, lines)

	p.mu.Lock()
	p.shown = append(p.shown, cp)
	p.mu.Unlock()
	return nil
}

func (p *Panel) Tone(hz float64) error {
	p.mu.Lock()
	p.tones = append(p.tones, hz)
	p.tone = hz
	p.mu.Unlock()
	return nil
}

func (p *Panel) Silence() error {
	p.mu.Lock()
	p.tone = 0
	p.mu.Unlock()
	return nil
}

// Colors returns every indicator color set so far, oldest first.
func (p *Panel) Colors() []device.Color {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]device.Color, len(p.colors))
	copy(out, p.colors)
	return out
}

// LastShown returns the most recent display frame.
func (p *Panel) LastShown() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.shown) == 0 {
		return nil
	}
	return p.shown[len(p.shown)-1]
}

// Tones returns every tone frequency played so far.
func (p *Panel) Tones() []float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]float64, len(p.tones))
	copy(out, p.tones)
	return out
}

// Sounding reports whether a tone is currently playing.
func (p *Panel) Sounding() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tone != 0
}

// ---- input adapters ----

type analog struct{ p *Panel }

func (a analog) Read() float64 {
	a.p.mu.Lock()
	defer a.p.mu.Unlock()
	return a.p.throttle
}

type button struct {
	p   *Panel
	get func(*Panel) bool
}

func (b button) Pressed() bool {
	b.p.mu.Lock()
	defer b.p.mu.Unlock()
	return b.get(b.p)
}

type motion struct{ p *Panel }

func (m motion) Axis() device.Vector {
	m.p.mu.Lock()
	defer m.p.mu.Unlock()
	return m.p.motion
}
