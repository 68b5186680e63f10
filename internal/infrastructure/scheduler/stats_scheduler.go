package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/Learnify/internal/usecase/contract"
)

const snapshotTimeout = 30 * time.Second

// Snapshotter is the part of the dashboard usecase the scheduler drives.
type Snapshotter interface {
	SnapshotStats(ctx context.Context) (*entity.StatsSnapshot, error)
}

// StatsScheduler periodically records dashboard stats snapshots.
type StatsScheduler struct {
	cron   *cron.Cron
	target Snapshotter
	logger usecasecontract.IAppLogger
}

// NewStatsScheduler registers the snapshot job on schedule, a standard
// five-field cron expression or a descriptor such as "@hourly".
func NewStatsScheduler(schedule string, target Snapshotter, logger usecasecontract.IAppLogger) (*StatsScheduler, error) {
	s := &StatsScheduler{
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		target: target,
		logger: logger,
	}
	if _, err := s.cron.AddFunc(schedule, s.RunOnce); err != nil {
		return nil, fmt.Errorf("invalid stats snapshot schedule %q: %w", schedule, err)
	}
	return s, nil
}

// RunOnce takes a single snapshot.
func (s *StatsScheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	snapshot, err := s.target.SnapshotStats(ctx)
	if err != nil {
		s.logger.Errorf("[STATS-SCHEDULER] snapshot failed: %v", err)
		return
	}
	s.logger.Infof("[STATS-SCHEDULER] snapshot %s recorded: users=%d courses=%d enrollments=%d",
		snapshot.ID, snapshot.Users, snapshot.Courses, snapshot.Enrollments)
}

func (s *StatsScheduler) Start() {
	s.cron.Start()
	s.logger.Infof("[STATS-SCHEDULER] started")
}

// Stop halts the schedule and waits for a running job to finish or ctx to expire.
func (s *StatsScheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warnf("[STATS-SCHEDULER] stop timed out while a snapshot was running")
	}
}
