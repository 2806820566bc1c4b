package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// JobKind discriminates what a generation job produces.
type JobKind string

const (
	// JobKindSingle regenerates the PDF of each listed report in order.
	JobKindSingle JobKind = "single"
	// JobKindBundle combines the listed reports of one meeting into a
	// single PDF attached to the meeting.
	JobKindBundle JobKind = "bundle"
)

// JobStatus represents the lifecycle state of a generation job.
type JobStatus string

// Possible job status values. Transitions only ever follow
// scheduled -> ongoing -> success | failure; success and failure are
// terminal.
const (
	JobStatusScheduled JobStatus = "scheduled"
	JobStatusOngoing   JobStatus = "ongoing"
	JobStatusSuccess   JobStatus = "success"
	JobStatusFailure   JobStatus = "failure"
)

// Common validation errors for Job
var (
	ErrEmptyJobID           = errors.New("job ID cannot be empty")
	ErrInvalidJobKind       = errors.New("invalid job kind")
	ErrInvalidJobStatus     = errors.New("invalid job status")
	ErrNoJobReports         = errors.New("job must reference at least one report")
	ErrIllegalJobTransition = errors.New("illegal job status transition")
	ErrJobAlreadyTerminal   = errors.New("job already reached a terminal status")
)

// CallerContext is the opaque set of caller/authorization attributes
// captured when work is submitted. It is forwarded unchanged to
// downstream deletion calls so that removal of a superseded artifact is
// authorized on behalf of the original caller. It is retained only while
// a job is in flight.
type CallerContext map[string]string

// Clone returns an independent copy so a stored context cannot be
// mutated through the original map.
func (c CallerContext) Clone() CallerContext {
	if c == nil {
		return nil
	}
	clone := make(CallerContext, len(c))
	for k, v := range c {
		clone[k] = v
	}
	return clone
}

// Job is a unit of queued generation work. Jobs are created on
// submission, mutated only by the scheduler and never deleted; terminal
// jobs remain queryable as an audit trail.
type Job struct {
	ID                  uuid.UUID     `json:"id"`
	Kind                JobKind       `json:"kind"`
	ReportIDs           []uuid.UUID   `json:"report_ids"`
	Status              JobStatus     `json:"status"`
	RegenerateCitations bool          `json:"regenerate_citations"`
	CallerContext       CallerContext `json:"-"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

// NewJob creates a scheduled Job for the given reports.
// Returns an error if validation fails.
func NewJob(
	kind JobKind,
	reportIDs []uuid.UUID,
	regenerateCitations bool,
	caller CallerContext,
) (*Job, error) {
	now := time.Now().UTC()
	job := &Job{
		ID:                  uuid.New(),
		Kind:                kind,
		ReportIDs:           reportIDs,
		Status:              JobStatusScheduled,
		RegenerateCitations: regenerateCitations,
		CallerContext:       caller.Clone(),
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := job.Validate(); err != nil {
		return nil, err
	}

	return job, nil
}

// Validate checks if the Job has valid data.
func (j *Job) Validate() error {
	if j.ID == uuid.Nil {
		return ErrEmptyJobID
	}

	if j.Kind != JobKindSingle && j.Kind != JobKindBundle {
		return ErrInvalidJobKind
	}

	if len(j.ReportIDs) == 0 {
		return ErrNoJobReports
	}

	if !isValidJobStatus(j.Status) {
		return ErrInvalidJobStatus
	}

	return nil
}

// Terminal reports whether the job reached success or failure.
func (j *Job) Terminal() bool {
	return j.Status == JobStatusSuccess || j.Status == JobStatusFailure
}

// MarkOngoing moves a scheduled job to ongoing. The store's claim
// applies this transition inside its conditional update; the method
// covers jobs handled in memory.
func (j *Job) MarkOngoing() error {
	return j.transition(JobStatusScheduled, JobStatusOngoing)
}

// MarkSuccess moves an ongoing job to its success terminal state and
// drops the retained caller context.
func (j *Job) MarkSuccess() error {
	if err := j.transition(JobStatusOngoing, JobStatusSuccess); err != nil {
		return err
	}
	j.CallerContext = nil
	return nil
}

// MarkFailure moves an ongoing job to its failure terminal state and
// drops the retained caller context.
func (j *Job) MarkFailure() error {
	if err := j.transition(JobStatusOngoing, JobStatusFailure); err != nil {
		return err
	}
	j.CallerContext = nil
	return nil
}

func (j *Job) transition(from, to JobStatus) error {
	if j.Terminal() {
		return ErrJobAlreadyTerminal
	}
	if j.Status != from {
		return ErrIllegalJobTransition
	}
	j.Status = to
	j.UpdatedAt = time.Now().UTC()
	return nil
}

func isValidJobStatus(status JobStatus) bool {
	switch status {
	case JobStatusScheduled, JobStatusOngoing, JobStatusSuccess, JobStatusFailure:
		return true
	default:
		return false
	}
}
