// internal/flight/controller.go
package flight

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tamzrod/lander-pilot/internal/device"
	"github.com/tamzrod/lander-pilot/internal/state"
	"github.com/tamzrod/lander-pilot/internal/status"
)

// Messages shown on terminal outcomes.
const (
	MsgCrashed = "You have Crashed"
	MsgLanded  = "You have Landed"
	MsgWaiting = "Waiting for lander"
)

// Config is the foreground loop's timing and feedback.
type Config struct {
	Period       time.Duration
	DangerFuel   float64
	CrashToneHz  float64
	LandedToneHz float64
	Cue          time.Duration
}

// LinkStatus is read once per tick to decide whether to show a link line.
type LinkStatus interface {
	Snapshot(now time.Time) status.Snapshot
}

// Controller is the foreground loop: render, indicate, and decide the outcome.
type Controller struct {
	cfg     Config
	store   *state.Store
	out     device.Outputs
	link    LinkStatus
	log     *zap.SugaredLogger
	machine Machine
}

// New builds a controller. link may be nil.
func New(cfg Config, store *state.Store, out device.Outputs, link LinkStatus, log *zap.SugaredLogger) (*Controller, error) {
	if cfg.Period <= 0 {
		return nil, errors.New("flight: period must be > 0")
	}
	if store == nil {
		return nil, errors.New("flight: store required")
	}
	if out.Indicator == nil || out.Display == nil || out.Speaker == nil {
		return nil, errors.New("flight: indicator, display and speaker required")
	}
	return &Controller{cfg: cfg, store: store, out: out, link: link, log: log}, nil
}

// Run ticks until a terminal outcome or ctx is done.
// On a terminal outcome the feedback cue has finished when Run returns.
func (c *Controller) Run(ctx context.Context) (Outcome, error) {
	ticker := time.NewTicker(c.cfg.Period)
	defer ticker.Stop()

	for {
		outcome := c.Tick(ctx)
		if outcome.Terminal() {
			return outcome, nil
		}

		select {
		case <-ctx.Done():
			return outcome, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Tick runs one foreground iteration.
func (c *Controller) Tick(ctx context.Context) Outcome {
	l, ctl := c.store.Snapshot()

	// Before the first reply the default snapshot (not flying, not crashed)
	// would read as Landed.
	if c.store.Updates() == 0 {
		c.indicate(SelectIndicator(l.Fuel, c.cfg.DangerFuel))
		c.show(MsgWaiting, c.linkLine())
		c.silence()
		return InFlight
	}

	outcome, entered := c.machine.Step(l)

	switch outcome {
	case Crashed:
		if entered {
			c.log.Warnw("lander crashed", "altitude", l.Altitude, "fuel", l.Fuel, "vx", l.VelocityX, "vy", l.VelocityY)
			c.crashed(ctx)
		}
	case Landed:
		if entered {
			c.log.Infow("lander landed", "fuel", l.Fuel, "vx", l.VelocityX, "vy", l.VelocityY)
			c.landed(ctx)
		}
	default:
		c.indicate(SelectIndicator(l.Fuel, c.cfg.DangerFuel))
		c.show(flightLines(l, ctl, c.linkLine())...)
		c.silence()
	}

	return outcome
}

// Outcome is the machine's current outcome.
func (c *Controller) Outcome() Outcome {
	return c.machine.Outcome()
}

// ---- terminal feedback ----

func (c *Controller) crashed(ctx context.Context) {
	c.show(MsgCrashed)
	c.cue(ctx, c.cfg.CrashToneHz)
	c.indicate(DangerColor)
}

func (c *Controller) landed(ctx context.Context) {
	c.indicate(LandedColor)
	c.cue(ctx, c.cfg.LandedToneHz)
	c.show(MsgLanded)
}

// cue plays one tone for the configured duration, then silences.
func (c *Controller) cue(ctx context.Context, hz float64) {
	if err := c.out.Speaker.Tone(hz); err != nil {
		c.log.Warnw("speaker tone failed", "hz", hz, "err", err)
	}

	t := time.NewTimer(c.cfg.Cue)
	select {
	case <-ctx.Done():
	case <-t.C:
	}
	t.Stop()

	c.silence()
}

// ---- rendering ----

func flightLines(l state.LanderState, ctl state.ControlState, link string) []string {
	lines := []string{
		fmt.Sprintf("Altitude: %d", int(l.Altitude)),
		fmt.Sprintf("Fuel: %d", int(l.Fuel)),
		fmt.Sprintf("Velocity X: %d   Y: %d", l.VelocityX, l.VelocityY),
		fmt.Sprintf("Throttle: %d", int(ctl.Throttle)),
	}
	if link != "" {
		lines = append(lines, link)
	}
	return lines
}

// linkLine is empty while the link is healthy.
func (c *Controller) linkLine() string {
	if c.link == nil {
		return ""
	}
	s := c.link.Snapshot(time.Now())
	if s.Healthy() {
		return ""
	}
	return status.Line(s)
}

// ---- device writes: failures are logged, never fatal ----

func (c *Controller) indicate(col device.Color) {
	if err := c.out.Indicator.Set(col); err != nil {
		c.log.Warnw("indicator write failed", "color", col.String(), "err", err)
	}
}

func (c *Controller) show(lines ...string) {
	nonEmpty := lines[:0:0]
	for _, s := range lines {
		if s != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	if err := c.out.Display.Show(nonEmpty...); err != nil {
		c.log.Warnw("display write failed", "err", err)
	}
}

func (c *Controller) silence() {
	if err := c.out.Speaker.Silence(); err != nil {
		c.log.Warnw("speaker silence failed", "err", err)
	}
}
