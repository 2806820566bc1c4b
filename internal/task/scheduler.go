package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/openbesluit/reportgen/internal/domain"
	"github.com/openbesluit/reportgen/internal/platform/logger"
	"github.com/openbesluit/reportgen/internal/store"
)

// ReportGenerator regenerates the PDF of a single report.
type ReportGenerator interface {
	Generate(
		ctx context.Context,
		reportID uuid.UUID,
		caller domain.CallerContext,
		regenerateCitations bool,
	) (*domain.Artifact, error)
}

// BundleGenerator combines the reports of one meeting into one PDF.
type BundleGenerator interface {
	GenerateBundle(
		ctx context.Context,
		reportIDs []uuid.UUID,
		caller domain.CallerContext,
	) (*domain.Artifact, error)
}

// Scheduler executes queued generation jobs strictly one at a time.
// Within the process an atomic flag keeps a second Run from proceeding
// past the guard; across processes the store's claim refuses to hand out
// a job while another is still ongoing.
type Scheduler struct {
	jobs    store.JobStore
	reports ReportGenerator
	bundles BundleGenerator
	logger  *slog.Logger

	executing atomic.Bool
}

// NewScheduler creates a Scheduler with its collaborators.
func NewScheduler(
	jobs store.JobStore,
	reports ReportGenerator,
	bundles BundleGenerator,
	log *slog.Logger,
) *Scheduler {
	return &Scheduler{
		jobs:    jobs,
		reports: reports,
		bundles: bundles,
		logger:  log,
	}
}

// RecoverStartup forces every job left ongoing by a previous process to
// failure. It must run before the scheduler starts picking up work, so a
// crash mid-execution cannot wedge the queue behind a phantom job.
func (s *Scheduler) RecoverStartup(ctx context.Context) error {
	swept, err := s.jobs.RecoverOngoingJobs(ctx)
	if err != nil {
		return fmt.Errorf("failed to recover interrupted jobs: %w", err)
	}
	if swept > 0 {
		s.logger.Warn("marked interrupted jobs as failed", "count", swept)
	}
	return nil
}

// Run drains the queue: it claims and executes scheduled jobs one at a
// time until no claimable job remains. When another Run is already in
// flight the call returns immediately; the running drain will pick up
// whatever was submitted in the meantime.
func (s *Scheduler) Run(ctx context.Context) {
	if !s.executing.CompareAndSwap(false, true) {
		return
	}
	defer s.executing.Store(false)

	ctx = logger.WithLogger(ctx, s.logger)
	s.drain(ctx)
}

// Trigger wakes the scheduler without blocking the caller.
func (s *Scheduler) Trigger() {
	go s.Run(context.Background())
}

// StartPolling runs the scheduler on a fixed interval until the context
// is cancelled, picking up jobs submitted by other process instances.
func (s *Scheduler) StartPolling(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Run(ctx)
		}
	}
}

// drain is an explicit loop, one claimed job per iteration. A job
// failure completes that job as failed and moves on to the next; only an
// infrastructure error talking to the store stops the drain early.
func (s *Scheduler) drain(ctx context.Context) {
	for {
		job, err := s.jobs.ClaimNextScheduledJob(ctx)
		if err != nil {
			if !errors.Is(err, store.ErrNoScheduledJob) {
				s.logger.Error("failed to claim next job", "error", err)
			}
			return
		}

		jobCtx := logger.WithLogger(ctx, s.logger.With(
			"job_id", job.ID,
			"job_kind", job.Kind))

		var markErr error
		if s.execute(jobCtx, job) == domain.JobStatusSuccess {
			markErr = job.MarkSuccess()
		} else {
			markErr = job.MarkFailure()
		}
		if markErr != nil {
			s.logger.Error("claimed job is not ongoing",
				"job_id", job.ID,
				"status", job.Status,
				"error", markErr)
			return
		}

		if err := s.jobs.CompleteJob(ctx, job.ID, job.Status); err != nil {
			s.logger.Error("failed to complete job",
				"job_id", job.ID,
				"status", job.Status,
				"error", err)
			return
		}
	}
}

// execute runs a claimed job to its terminal status. Errors never
// propagate past here; they determine the terminal status and are
// logged with the job's identity.
func (s *Scheduler) execute(ctx context.Context, job *domain.Job) domain.JobStatus {
	log := logger.FromContext(ctx)
	log.Info("executing job", "reports", len(job.ReportIDs))

	switch job.Kind {
	case domain.JobKindSingle:
		for _, reportID := range job.ReportIDs {
			if _, err := s.reports.Generate(ctx, reportID, job.CallerContext, job.RegenerateCitations); err != nil {
				log.Error("report generation failed",
					"report_id", reportID,
					"error", err)
				return domain.JobStatusFailure
			}
		}
	case domain.JobKindBundle:
		if _, err := s.bundles.GenerateBundle(ctx, job.ReportIDs, job.CallerContext); err != nil {
			log.Error("bundle generation failed", "error", err)
			return domain.JobStatusFailure
		}
	default:
		log.Error("unknown job kind")
		return domain.JobStatusFailure
	}

	log.Info("job succeeded")
	return domain.JobStatusSuccess
}
