package revocation

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/projecthub/internal/logging"
	"github.com/robfig/cron/v3"
)

// Purger sweeps expired revocation records on a cron schedule.
type Purger struct {
	cron    *cron.Cron
	target  Purgeable
	timeout time.Duration
	logger  logging.Logger
}

// NewPurger validates schedule and registers the sweep. It does not start
// the scheduler.
func NewPurger(target Purgeable, schedule string, timeout time.Duration, logger logging.Logger) (*Purger, error) {
	p := &Purger{
		cron:    cron.New(),
		target:  target,
		timeout: timeout,
		logger:  logger.With("module", "revocation_purger"),
	}
	if _, err := p.cron.AddFunc(schedule, func() { p.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid purge schedule %q: %w", schedule, err)
	}
	return p, nil
}

func (p *Purger) Start() {
	p.cron.Start()
	p.logger.Info(context.Background(), "revocation purger started")
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (p *Purger) Stop() {
	<-p.cron.Stop().Done()
	p.logger.Info(context.Background(), "revocation purger stopped")
}

// RunOnce performs a single sweep.
func (p *Purger) RunOnce(ctx context.Context) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	n, err := p.target.PurgeExpired(ctx)
	if err != nil {
		p.logger.Warn(ctx, "revocation purge failed", "error", err)
		return
	}
	if n > 0 {
		p.logger.Info(ctx, "expired revocations purged", "count", n)
	}
}
