package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"cashflow-router/internal/pkg/config"
	"cashflow-router/internal/pkg/logger"
	"cashflow-router/internal/service/interfaces"
)

// Scheduler drives the three background jobs: capacity recompute, expiry
// sweep and projection ingestion. Overlapping runs of the same job are
// skipped rather than stacked.
type Scheduler struct {
	cron       *cron.Cron
	cfg        config.JobsConfig
	recompute  interfaces.RecomputeServiceInterface
	sweeper    interfaces.SweeperServiceInterface
	projection interfaces.ProjectionServiceInterface
}

func NewScheduler(
	cfg config.JobsConfig,
	recompute interfaces.RecomputeServiceInterface,
	sweeper interfaces.SweeperServiceInterface,
	projection interfaces.ProjectionServiceInterface,
) *Scheduler {
	c := cron.New(cron.WithChain(
		cron.Recover(cron.DefaultLogger),
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))
	return &Scheduler{
		cron:       c,
		cfg:        cfg,
		recompute:  recompute,
		sweeper:    sweeper,
		projection: projection,
	}
}

// Start registers the jobs and starts the cron scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	jobs := []struct {
		name string
		spec string
		run  func()
	}{
		{
			name: "capacity-recompute",
			spec: s.cfg.RecomputeSpec,
			run:  func() { _ = s.recompute.RecomputeAll(ctx) },
		},
		{
			name: "expiry-sweep",
			spec: s.cfg.SweeperSpec,
			run:  func() { _ = s.sweeper.SweepExpired(ctx) },
		},
		{
			name: "projection-ingest",
			spec: s.cfg.ProjectionSpec,
			run:  func() { _ = s.projection.IngestProjections(ctx) },
		},
	}

	for _, job := range jobs {
		if _, err := s.cron.AddFunc(job.spec, job.run); err != nil {
			logger.CtxError(ctx, "Failed to schedule job", err, zap.String("job", job.name), zap.String("spec", job.spec))
			return err
		}
		logger.CtxInfo(ctx, "Job scheduled", zap.String("job", job.name), zap.String("spec", job.spec))
	}

	s.cron.Start()
	return nil
}

// Stop gracefully stops the cron scheduler and returns a context that is done
// once in-flight jobs have finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
