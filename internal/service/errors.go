package service

import "errors"

// Precondition errors surfaced by report and bundle generation. They
// propagate to the caller (or the job record) as distinct kinds; none of
// them leaves partial state behind.
var (
	// ErrSignFlowActive indicates the report is covered by a signature
	// flow that is past the single safe-to-regenerate status.
	ErrSignFlowActive = errors.New("report is in an active signature flow")

	// ErrMeetingMismatch indicates the reports of a bundle request do not
	// all belong to the same meeting.
	ErrMeetingMismatch = errors.New("reports do not belong to the same meeting")

	// ErrNoBundleTargets indicates a bundle was requested for an empty
	// list of reports.
	ErrNoBundleTargets = errors.New("bundle requires at least one report")
)
