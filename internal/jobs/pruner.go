package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/finance-service/internal/service"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const pruneTimeout = time.Minute

// PruneTarget removes expired cache entries and dismissals
type PruneTarget interface {
	Prune(ctx context.Context) (service.PruneResult, error)
}

// Pruner periodically sweeps expired rows. Reads already ignore expired rows,
// so a missed run only leaves garbage behind.
type Pruner struct {
	cron   *cron.Cron
	target PruneTarget
	log    *logrus.Logger
}

// NewPruner schedules target on a cron spec such as "@every 1h" or "0 3 * * *"
func NewPruner(target PruneTarget, schedule string, log *logrus.Logger) (*Pruner, error) {
	p := &Pruner{cron: cron.New(), target: target, log: log}
	if _, err := p.cron.AddFunc(schedule, p.RunOnce); err != nil {
		return nil, fmt.Errorf("invalid prune schedule %q: %w", schedule, err)
	}
	return p, nil
}

// Start runs the schedule in the background
func (p *Pruner) Start() {
	p.cron.Start()
	p.log.Infof("Pruner started, next run at %s", p.cron.Entries()[0].Next.Format(time.RFC3339))
}

// Stop halts the schedule; the returned context is done once a running sweep finishes
func (p *Pruner) Stop() context.Context {
	return p.cron.Stop()
}

// RunOnce performs a single sweep
func (p *Pruner) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), pruneTimeout)
	defer cancel()

	res, err := p.target.Prune(ctx)
	if err != nil {
		p.log.Errorf("Prune failed: %v", err)
	}
	p.log.WithFields(logrus.Fields{
		"cache_entries": res.CacheEntries,
		"dismissals":    res.Dismissals,
	}).Info("Expired rows pruned")
}
