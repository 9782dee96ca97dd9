// internal/writer/writer.go
package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/lander-pilot/internal/state"
	"github.com/tamzrod/lander-pilot/internal/telemetry"
)

type writerImpl struct {
	plan  Plan
	sinks map[string]Sink
}

func New(plan Plan, sinks map[string]Sink) Writer {
	return &writerImpl{
		plan:  plan,
		sinks: sinks,
	}
}

// Write encodes the dashboard view once and sends it to every target.
// Every target is attempted; failures are collected, never retried.
func (w *writerImpl) Write(l state.LanderState, c state.ControlState) error {
	payload := telemetry.EncodeDashboard(l, c)

	var errs []string

	for _, tgt := range w.plan.Targets {
		s := w.sinks[tgt.Name]
		if s == nil {
			errs = append(errs, fmt.Sprintf(
				"writer: missing sink for target %s",
				tgt.Name,
			))
			continue
		}

		if err := s.Send(payload); err != nil {
			errs = append(errs, fmt.Sprintf(
				"writer: target=%s kind=%s ep=%s err=%v",
				tgt.Name, tgt.Kind, tgt.Endpoint, err,
			))
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, " | "))
	}

	return nil
}
