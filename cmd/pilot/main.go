// cmd/pilot/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tamzrod/lander-pilot/internal/config"
	"github.com/tamzrod/lander-pilot/internal/device"
	"github.com/tamzrod/lander-pilot/internal/device/console"
	dmodbus "github.com/tamzrod/lander-pilot/internal/device/modbus"
	"github.com/tamzrod/lander-pilot/internal/device/stub"
	"github.com/tamzrod/lander-pilot/internal/flight"
	"github.com/tamzrod/lander-pilot/internal/logging"
	"github.com/tamzrod/lander-pilot/internal/poller"
	"github.com/tamzrod/lander-pilot/internal/sampler"
	"github.com/tamzrod/lander-pilot/internal/scheduler"
	"github.com/tamzrod/lander-pilot/internal/state"
	"github.com/tamzrod/lander-pilot/internal/status"
	"github.com/tamzrod/lander-pilot/internal/writer"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: pilot <config.yaml>")
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)
	p := cfg.Pilot

	// --------------------
	// Logger (one per run, tagged with the session)
	// --------------------

	sessionID := uuid.NewString()

	base, syncLog, err := logging.New(logging.Config{
		File:       p.Log.File,
		Level:      p.Log.Level,
		Console:    p.Log.Console,
		MaxSizeMB:  p.Log.MaxSizeMB,
		MaxBackups: p.Log.MaxBackups,
		MaxAgeDays: p.Log.MaxAgeDays,
	})
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	lg := base.With("session", sessionID)

	outcome, err := run(p, sessionID, lg)
	if err != nil && !errors.Is(err, context.Canceled) {
		lg.Errorw("pilot stopped", "err", err)
		syncLog()
		os.Exit(1)
	}

	lg.Infow("pilot finished", "outcome", outcome.String())
	syncLog()
}

// run wires every component, flies until a terminal outcome or a signal,
// then tears down in a fixed order: scheduler, speaker, peers, devices.
func run(p config.PilotConfig, sessionID string, lg *zap.SugaredLogger) (flight.Outcome, error) {
	store := state.NewStore()

	// ---- device shim ----

	hw, err := buildDevices(p, lg)
	if err != nil {
		return flight.InFlight, err
	}
	defer func() {
		if err := hw.close(); err != nil {
			lg.Warnw("device close failed", "err", err)
		}
	}()

	smp, err := sampler.New(sampler.Config{
		ThrottleSnap: p.Input.ThrottleSnap,
		RollDeadband: p.Input.RollDeadband,
	}, hw.inputs, store)
	if err != nil {
		return flight.InFlight, err
	}

	// ---- lander exchange ----

	pl, closePoller, err := poller.Build(p.Lander, store)
	if err != nil {
		return flight.InFlight, fmt.Errorf("poller build failed: %w", err)
	}
	defer closePoller()

	link := status.NewTracker()

	// ---- dashboard push ----

	plan, err := writer.BuildPlan(p.Dashboard)
	if err != nil {
		return flight.InFlight, fmt.Errorf("writer plan failed: %w", err)
	}
	sinks, closeWriters, err := writer.BuildEndpointClients(
		plan,
		time.Duration(p.Dashboard.TimeoutMs)*time.Millisecond,
		sessionID,
	)
	if err != nil {
		return flight.InFlight, fmt.Errorf("writer clients failed: %w", err)
	}
	defer closeWriters()

	dash := writer.New(plan, sinks)

	lg.Infow("peers configured", "lander", p.Lander.Endpoint, "dashboard", p.Dashboard.Endpoint, "targets", len(plan.Targets))

	// ---- background jobs ----

	sched, err := scheduler.New(time.Duration(p.Schedule.PeriodMs)*time.Millisecond, lg.Named("scheduler"))
	if err != nil {
		return flight.InFlight, err
	}

	sched.Every("lander", pl.Job(link, lg.Named("lander")))
	sched.Every("dashboard", writer.Job(dash, store, lg.Named("dashboard")))
	if hw.refresh != nil {
		sched.Every("io-refresh", func(ctx context.Context) { _ = hw.refresh() })
	}
	sched.Every("input", func(ctx context.Context) { smp.Sample() })

	// ---- foreground ----

	fg, err := flight.New(flight.Config{
		Period:       time.Duration(p.Schedule.ForegroundMs) * time.Millisecond,
		DangerFuel:   p.Feedback.DangerFuel,
		CrashToneHz:  p.Feedback.CrashToneHz,
		LandedToneHz: p.Feedback.LandedToneHz,
		Cue:          time.Duration(p.Feedback.CueMs) * time.Millisecond,
	}, store, hw.outputs, link, lg.Named("flight"))
	if err != nil {
		return flight.InFlight, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := sched.Start(ctx); err != nil {
		return flight.InFlight, err
	}
	lg.Infow("pilot started", "period_ms", p.Schedule.PeriodMs, "foreground_ms", p.Schedule.ForegroundMs, "driver", p.Device.Driver)

	outcome, runErr := fg.Run(ctx)

	// --------------------
	// Shutdown: stop jobs before releasing what they use
	// --------------------

	sched.Stop()
	st := sched.Stats()
	lg.Infow("scheduler stopped",
		"cycles", st.Cycles,
		"overruns", st.Overruns,
		"panics", st.Panics,
		"avg_cycle", st.AvgCycle,
		"max_cycle", st.MaxCycle,
	)

	if err := hw.outputs.Speaker.Silence(); err != nil {
		lg.Warnw("speaker silence failed", "err", err)
	}

	return outcome, runErr
}

// ---- device wiring ----

type devices struct {
	inputs  device.Inputs
	outputs device.Outputs
	refresh func() error // nil when inputs are not polled
	close   func() error
}

func buildDevices(p config.PilotConfig, lg *zap.SugaredLogger) (devices, error) {
	display := console.NewDisplay(os.Stdout)

	switch p.Device.Driver {
	case config.DriverModbus:
		m := p.Device.Modbus
		mod, err := dmodbus.New(dmodbus.Config{
			Mode:              m.Mode,
			Endpoint:          m.Endpoint,
			UnitID:            m.UnitID,
			Timeout:           time.Duration(m.TimeoutMs) * time.Millisecond,
			BaudRate:          m.BaudRate,
			DataBits:          m.DataBits,
			Parity:            m.Parity,
			StopBits:          m.StopBits,
			ThrottleRegister:  m.ThrottleRegister,
			ThrottleFullScale: m.ThrottleFullScale,
			MotionRegister:    m.MotionRegister,
			ButtonInput:       m.ButtonInput,
			IndicatorCoil:     m.IndicatorCoil,
			ToneRegister:      m.ToneRegister,
		}, lg.Named("io"))
		if err != nil {
			return devices{}, err
		}
		return devices{
			inputs:  mod.Inputs(),
			outputs: device.Outputs{Indicator: mod, Display: display, Speaker: mod},
			refresh: mod.Refresh,
			close:   mod.Close,
		}, nil

	default:
		panel := stub.New()
		if s := p.Device.Stub; s != nil {
			panel.SetThrottle(s.Throttle)
			panel.SetMotion(device.Vector{X: s.Motion[0], Y: s.Motion[1], Z: s.Motion[2]})
		}
		return devices{
			inputs: panel.Inputs(),
			outputs: device.Outputs{
				Indicator: console.NewIndicator(lg.Named("indicator")),
				Display:   display,
				Speaker:   console.NewSpeaker(lg.Named("speaker")),
			},
			close: func() error { return nil },
		}, nil
	}
}
