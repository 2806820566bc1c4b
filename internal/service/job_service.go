package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/openbesluit/reportgen/internal/domain"
	"github.com/openbesluit/reportgen/internal/store"
)

// TargetValidator pre-checks a single report's generation preconditions
// before the report is queued.
type TargetValidator interface {
	Validate(ctx context.Context, reportID uuid.UUID) error
}

// JobService is the thin submission surface in front of the job queue.
// Submission is not deduplicated: submitting the same targets twice
// creates two independent jobs.
type JobService struct {
	jobs    store.JobStore
	targets TargetValidator
	notify  func()
}

// NewJobService creates a JobService. notify is called after each
// successful submission to wake the scheduler; it may be nil.
func NewJobService(jobs store.JobStore, targets TargetValidator, notify func()) *JobService {
	return &JobService{jobs: jobs, targets: targets, notify: notify}
}

// Submit creates a scheduled job for the given reports and wakes the
// scheduler. Single-generation targets are pre-validated so a job that
// can only fail is rejected at submission; bundle targets are validated
// at execution, where the cross-report meeting check runs and signed
// reports are still legal. The caller context is retained on the job
// until it reaches a terminal state.
func (s *JobService) Submit(
	ctx context.Context,
	kind domain.JobKind,
	reportIDs []uuid.UUID,
	regenerateCitations bool,
	caller domain.CallerContext,
) (*domain.Job, error) {
	job, err := domain.NewJob(kind, reportIDs, regenerateCitations, caller)
	if err != nil {
		return nil, err
	}

	if kind == domain.JobKindSingle {
		for _, reportID := range reportIDs {
			if err := s.targets.Validate(ctx, reportID); err != nil {
				return nil, fmt.Errorf("report %s failed preconditions: %w", reportID, err)
			}
		}
	}

	if err := s.jobs.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to persist job: %w", err)
	}

	if s.notify != nil {
		s.notify()
	}
	return job, nil
}

// GetJob retrieves a job by ID. Terminal jobs stay queryable
// indefinitely.
func (s *JobService) GetJob(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	return s.jobs.GetJob(ctx, id)
}
