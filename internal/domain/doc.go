// Package domain contains the core business entities, value objects, and
// domain logic of the report generation service: jobs and their status
// state machine, report content and context snapshots, citable pieces
// and generated artifacts. It is independent of any specific
// infrastructure or delivery mechanism.
package domain
