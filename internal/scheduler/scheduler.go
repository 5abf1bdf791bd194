// Package scheduler runs periodic maintenance jobs for the dashboard server
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/coursedash/backend/internal/models"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// checkTimeout bounds a single consistency check run
const checkTimeout = 5 * time.Minute

// Reconciler reports drift between stored videos and their metadata
type Reconciler interface {
	Reconcile(ctx context.Context, repair bool) (*models.ConsistencyReport, error)
}

// Scheduler runs the asset store consistency check on a cron schedule.
// It only reports; repairs stay an explicit admin action.
type Scheduler struct {
	cron       *cron.Cron
	reconciler Reconciler
	logger     *zap.Logger
}

// New creates a scheduler for the given standard cron expression or descriptor such as "@hourly"
func New(spec string, reconciler Reconciler, logger *zap.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:       cron.New(),
		reconciler: reconciler,
		logger:     logger,
	}

	if _, err := s.cron.AddFunc(spec, s.checkConsistency); err != nil {
		return nil, fmt.Errorf("invalid consistency schedule %q: %w", spec, err)
	}

	return s, nil
}

// Start starts the scheduler in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler started", zap.Time("next_run", s.nextRun()))
}

// Stop stops the scheduler and waits for a running check to finish or ctx to expire
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler did not stop: %w", ctx.Err())
	}
}

// nextRun returns the time of the next scheduled check
func (s *Scheduler) nextRun() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// checkConsistency runs a report-only reconcile and logs any drift
func (s *Scheduler) checkConsistency() {
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	report, err := s.reconciler.Reconcile(ctx, false)
	if err != nil {
		s.logger.Error("Scheduled consistency check failed", zap.Error(err))
		return
	}

	if report.Consistent() {
		s.logger.Debug("Scheduled consistency check passed")
		return
	}

	s.logger.Warn("Asset store is inconsistent",
		zap.Strings("orphan_files", report.OrphanFiles),
		zap.Strings("dangling_entries", report.DanglingEntries),
	)
}
