package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in
	// the store. This is the generic version of the entity-specific not
	// found errors below.
	ErrNotFound = errors.New("entity not found")

	// ErrUpdateFailed is returned when an update operation fails, for
	// example because the entity does not exist or the update violates
	// constraints.
	ErrUpdateFailed = errors.New("update failed")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrNoScheduledJob is returned by ClaimNextScheduledJob when there
	// is no scheduled job to claim, or when a claim is withheld because
	// another job is still ongoing. It is an expected outcome, not a
	// failure.
	ErrNoScheduledJob = errors.New("no scheduled job available")

	// Entity-specific "not found" errors

	// ErrJobNotFound indicates that the requested job does not exist.
	ErrJobNotFound = fmt.Errorf("%w: job", ErrNotFound)

	// ErrReportNotFound indicates that the requested report does not exist.
	ErrReportNotFound = fmt.Errorf("%w: report", ErrNotFound)

	// ErrReportPartsNotFound indicates that a report has no current
	// content parts.
	ErrReportPartsNotFound = fmt.Errorf("%w: report parts", ErrNotFound)

	// ErrMeetingNotFound indicates that a report does not resolve to a
	// meeting, or that the requested meeting does not exist.
	ErrMeetingNotFound = fmt.Errorf("%w: meeting", ErrNotFound)

	// ErrArtifactNotFound indicates that a report has no attached
	// artifact where one is required (e.g. when bundling).
	ErrArtifactNotFound = fmt.Errorf("%w: artifact", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError is a custom error type for store-specific errors with
// additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "job", "report")
	Operation string // The operation that failed (e.g., "claim", "attach")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity,
// operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
