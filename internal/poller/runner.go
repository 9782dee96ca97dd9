// internal/poller/runner.go
package poller

import (
	"context"

	"go.uber.org/zap"

	"github.com/tamzrod/lander-pilot/internal/scheduler"
	"github.com/tamzrod/lander-pilot/internal/status"
)

// Job adapts the poller to the periodic scheduler.
// Every result is folded into the tracker; only health transitions are logged.
func (p *Poller) Job(tracker *status.Tracker, log *zap.SugaredLogger) scheduler.Job {
	return func(ctx context.Context) {
		res := p.PollOnce(ctx)

		if !tracker.Observe(res.Err, res.At) {
			if res.Err == nil {
				log.Debugw("lander exchange", "bytes", res.Bytes, "keys", res.Applied, "latency", res.Latency)
			}
			return
		}

		if res.Err != nil {
			log.Warnw("lander link degraded, holding last snapshot",
				"code", status.ErrorName(status.ErrorCode(res.Err)),
				"err", res.Err,
			)
			return
		}
		log.Infow("lander link ok", "bytes", res.Bytes, "keys", res.Applied, "latency", res.Latency)
	}
}
