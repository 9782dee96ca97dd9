// internal/writer/builder.go
package writer

import (
	"errors"
	"fmt"
	"time"

	cfg "github.com/tamzrod/lander-pilot/internal/config"
	"github.com/tamzrod/lander-pilot/internal/writer/natspub"
	"github.com/tamzrod/lander-pilot/internal/writer/udp"
)

// BuildPlan converts the dashboard config into a Writer Plan.
// Assumes config has already passed validation.
func BuildPlan(d cfg.DashboardConfig) (Plan, error) {
	if d.Endpoint == "" {
		return Plan{}, errors.New("writer: dashboard.endpoint required")
	}

	plan := Plan{
		Targets: []Target{
			{Name: "dashboard", Kind: KindUDP, Endpoint: d.Endpoint},
		},
	}

	if d.NATS != nil {
		plan.Targets = append(plan.Targets, Target{
			Name:     "dashboard-bus",
			Kind:     KindNATS,
			Endpoint: d.NATS.URL,
			Subject:  d.NATS.Subject,
		})
	}

	return plan, nil
}

// BuildEndpointClients creates one sink per target.
func BuildEndpointClients(plan Plan, timeout time.Duration, sessionID string) (map[string]Sink, func() error, error) {
	sinks := make(map[string]Sink)
	var closers []func() error

	closeAll := func() error {
		var last error
		for _, fn := range closers {
			if err := fn(); err != nil {
				last = err
			}
		}
		return last
	}

	for _, t := range plan.Targets {
		var (
			s   Sink
			err error
		)

		switch t.Kind {
		case KindUDP:
			s, err = udp.New(udp.Config{Endpoint: t.Endpoint, Timeout: timeout})
		case KindNATS:
			s, err = natspub.New(natspub.Config{
				URL:       t.Endpoint,
				Subject:   t.Subject,
				Name:      "lander-pilot",
				SessionID: sessionID,
			})
		default:
			err = fmt.Errorf("writer: unsupported target kind %q", t.Kind)
		}
		if err != nil {
			_ = closeAll()
			return nil, nil, fmt.Errorf("writer: target %s: %w", t.Name, err)
		}

		sinks[t.Name] = s
		closers = append(closers, s.Close)
	}

	return sinks, closeAll, nil
}
