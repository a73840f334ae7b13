// ABOUTME: Cron scheduler for background maintenance jobs.
// ABOUTME: Wraps robfig/cron with logrus logging and panic recovery.

package jobs

import (
	"context"

	"github.com/2389/realty/internal/logger"
	"github.com/robfig/cron/v3"
)

// cronLogger adapts logger.Log to cron.Logger.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Log.WithFields(fields(keysAndValues)).Debug("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Log.WithError(err).WithFields(fields(keysAndValues)).Error("cron: " + msg)
}

func fields(kv []interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			out[k] = kv[i+1]
		}
	}
	return out
}

type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler() *Scheduler {
	l := cronLogger{}
	return &Scheduler{cron: cron.New(
		cron.WithLogger(l),
		cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l)),
	)}
}

// Add registers job under a standard five-field spec or a descriptor such as @daily.
func (s *Scheduler) Add(spec string, job cron.Job) (cron.EntryID, error) {
	return s.cron.AddJob(spec, job)
}

// Entries reports how many jobs are scheduled.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs or ctx, whichever ends first.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
