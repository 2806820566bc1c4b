package service

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/openbesluit/reportgen/internal/domain"
	"github.com/openbesluit/reportgen/internal/store"
)

// BundleService combines the decision reports of one meeting into a
// single PDF and attaches it to the meeting's sole bundle slot.
type BundleService struct {
	reports  *ReportService
	meetings store.MeetingStore
	blobs    BlobStore
}

// NewBundleService creates a BundleService with its collaborators.
func NewBundleService(
	reports *ReportService,
	meetings store.MeetingStore,
	blobs BlobStore,
) *BundleService {
	return &BundleService{
		reports:  reports,
		meetings: meetings,
		blobs:    blobs,
	}
}

// GenerateBundle merges the attached PDFs of the given reports, in
// agenda order, into one artifact named "<meeting label> - ALLE
// BESLISSINGEN.pdf" and attaches it to the meeting. All reports must
// belong to the same meeting and pass their generation preconditions;
// any failure aborts the whole bundle, never a partial one. When a
// report has a signed flattened copy, that copy is bundled instead of
// the generated original.
func (s *BundleService) GenerateBundle(
	ctx context.Context,
	reportIDs []uuid.UUID,
	caller domain.CallerContext,
) (*domain.Artifact, error) {
	if len(reportIDs) == 0 {
		return nil, ErrNoBundleTargets
	}

	for _, reportID := range reportIDs {
		if err := s.reports.validateForBundle(ctx, reportID); err != nil {
			return nil, fmt.Errorf("report %s failed bundle preconditions: %w", reportID, err)
		}
	}

	meeting, err := s.sharedMeeting(ctx, reportIDs)
	if err != nil {
		return nil, err
	}

	entries, err := s.meetings.GetBundleEntries(ctx, reportIDs)
	if err != nil {
		return nil, err
	}

	merged, err := s.mergePDFs(entries)
	if err != nil {
		return nil, err
	}

	uri, err := s.blobs.Write(ctx, uuid.New().String()+".pdf", merged)
	if err != nil {
		return nil, err
	}

	name := strings.ReplaceAll(meeting.Label, "/", "-") + " - ALLE BESLISSINGEN.pdf"
	artifact, err := domain.NewArtifact(name, uri, int64(len(merged)))
	if err != nil {
		return nil, err
	}

	superseded, err := s.meetings.AttachBundle(ctx, meeting.ID, artifact)
	if err != nil {
		return nil, fmt.Errorf("failed to attach bundle to meeting %s: %w", meeting.ID, err)
	}

	if superseded != nil {
		s.reports.deleteSuperseded(ctx, superseded, caller)
	}

	return artifact, nil
}

// sharedMeeting resolves the single meeting all reports belong to.
func (s *BundleService) sharedMeeting(
	ctx context.Context,
	reportIDs []uuid.UUID,
) (*domain.Meeting, error) {
	meetings, err := s.meetings.GetMeetingForReports(ctx, reportIDs)
	if err != nil {
		return nil, err
	}

	meeting := meetings[0]
	for _, m := range meetings[1:] {
		if m.ID != meeting.ID {
			return nil, fmt.Errorf("%w: %s and %s", ErrMeetingMismatch, meeting.ID, m.ID)
		}
	}
	return meeting, nil
}

// mergePDFs concatenates the entries' PDFs, already ordered by
// agenda-item-type ordinal and report name, preserving each document's
// internal page order.
func (s *BundleService) mergePDFs(entries []store.BundleEntry) ([]byte, error) {
	paths := make([]string, len(entries))
	for i, entry := range entries {
		path, err := s.blobs.Path(entry.ArtifactURI)
		if err != nil {
			return nil, fmt.Errorf("report %s has an unresolvable artifact: %w", entry.ReportID, err)
		}
		paths[i] = path
	}

	out, err := os.CreateTemp("", "bundle-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create merge scratch file: %w", err)
	}
	outPath := out.Name()
	_ = out.Close()
	defer func() { _ = os.Remove(outPath) }()

	if err := api.MergeCreateFile(paths, outPath, false, nil); err != nil {
		return nil, fmt.Errorf("failed to merge report PDFs: %w", err)
	}

	merged, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read merged bundle: %w", err)
	}
	return merged, nil
}
