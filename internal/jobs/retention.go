// ABOUTME: Request log retention job.
// ABOUTME: Deletes request logs older than the configured maximum age.

package jobs

import (
	"time"

	"github.com/2389/realty/internal/logger"
)

// Pruner deletes request logs. *store.Store satisfies it.
type Pruner interface {
	PruneRequestLogs(before time.Time) (int64, error)
}

// Retention is a cron.Job that prunes logs older than MaxAge.
type Retention struct {
	pruner Pruner
	maxAge time.Duration
	now    func() time.Time
}

func NewRetention(p Pruner, maxAge time.Duration) *Retention {
	return &Retention{pruner: p, maxAge: maxAge, now: time.Now}
}

// Prune deletes expired logs once and reports how many went.
func (r *Retention) Prune() (int64, error) {
	cutoff := r.now().Add(-r.maxAge)
	n, err := r.pruner.PruneRequestLogs(cutoff)
	if err != nil {
		return 0, err
	}
	logger.Log.WithField("cutoff", cutoff.UTC().Format(time.RFC3339)).Infof("pruned %d request logs", n)
	return n, nil
}

// Run implements cron.Job.
func (r *Retention) Run() {
	if _, err := r.Prune(); err != nil {
		logger.Log.WithError(err).Error("request log retention failed")
	}
}
