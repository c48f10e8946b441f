// Package scheduler runs the periodic dividend distribution.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs a DividendJob on a cron schedule. A run that is still in progress
// when the next tick fires causes that tick to be skipped.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

// New parses spec (standard five-field cron or a descriptor such as "@daily")
// and registers job on it. The scheduler does not run until Start is called.
func New(spec string, job *DividendJob, logger *zap.Logger) (*Scheduler, error) {
	cl := cronLogger{logger: logger.Sugar()}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), job.timeout)
		defer cancel()

		if _, err := job.Run(ctx); err != nil {
			logger.Error("scheduled dividend distribution failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid dividend schedule %q: %w", spec, err)
	}

	return &Scheduler{cron: c, logger: logger}, nil
}

// Start begins running the schedule in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	for _, e := range s.cron.Entries() {
		s.logger.Info("dividend schedule started", zap.Time("next_run", e.Next))
	}
}

// Stop prevents further runs and waits for a running one to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	logger *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}

// defaultJobTimeout bounds a single scheduled run.
const defaultJobTimeout = 10 * time.Minute
