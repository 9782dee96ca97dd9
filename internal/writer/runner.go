// internal/writer/runner.go
package writer

import (
	"context"

	"go.uber.org/zap"

	"github.com/tamzrod/lander-pilot/internal/scheduler"
	"github.com/tamzrod/lander-pilot/internal/state"
)

// Job adapts a Writer to the periodic scheduler.
// Failures are logged when they start and when they clear, not every period.
func Job(w Writer, store *state.Store, log *zap.SugaredLogger) scheduler.Job {
	failing := false

	return func(ctx context.Context) {
		l, c := store.Snapshot()

		err := w.Write(l, c)
		switch {
		case err != nil && !failing:
			log.Warnw("dashboard push failed", "err", err)
		case err == nil && failing:
			log.Infow("dashboard push recovered")
		}
		failing = err != nil
	}
}
