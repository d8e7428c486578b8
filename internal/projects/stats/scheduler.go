// Package stats periodically publishes tracker totals as prometheus gauges.
package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/progress-tracker/internal/projects/domain"
)

var (
	ProjectsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "progress_tracker",
		Subsystem: "stats",
		Name:      "projects",
		Help:      "Number of stored projects",
	})

	ProgressEntriesTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "progress_tracker",
		Subsystem: "stats",
		Name:      "progress_entries",
		Help:      "Number of stored progress entries",
	})

	// GoalsReached counts projects whose summed progress is at least the goal.
	GoalsReached = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "progress_tracker",
		Subsystem: "stats",
		Name:      "goals_reached",
		Help:      "Number of projects whose accumulated progress has reached the goal",
	})
)

const refreshTimeout = 10 * time.Second

// Source reports the current totals.
type Source interface {
	Stats(ctx context.Context) (domain.Stats, error)
}

type Scheduler struct {
	source Source
	logger *zap.Logger
	cron   *cron.Cron
}

func NewScheduler(source Source, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		source: source,
		logger: logger,
		cron:   cron.New(),
	}
}

// Refresh reads the totals once and publishes them.
func (s *Scheduler) Refresh(ctx context.Context) (domain.Stats, error) {
	st, err := s.source.Stats(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	ProjectsTotal.Set(float64(st.Projects))
	ProgressEntriesTotal.Set(float64(st.ProgressEntries))
	GoalsReached.Set(float64(st.GoalsReached))
	return st, nil
}

// Start publishes the totals immediately and then on every tick of the
// cron schedule, e.g. "@every 1m" or "*/5 * * * *".
func (s *Scheduler) Start(ctx context.Context, schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() { s.run(ctx) })
	if err != nil {
		return fmt.Errorf("invalid stats schedule %q: %w", schedule, err)
	}

	s.run(ctx)
	s.cron.Start()
	s.logger.Info("stats scheduler started", zap.String("schedule", schedule))
	return nil
}

// Stop halts the schedule and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) run(ctx context.Context) {
	rctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	st, err := s.Refresh(rctx)
	if err != nil {
		s.logger.Warn("stats refresh failed", zap.Error(err))
		return
	}
	s.logger.Debug("stats refreshed",
		zap.Int64("projects", st.Projects),
		zap.Int64("progress_entries", st.ProgressEntries),
		zap.Int64("goals_reached", st.GoalsReached),
	)
}
