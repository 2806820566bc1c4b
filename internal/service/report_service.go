package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/openbesluit/reportgen/internal/citation"
	"github.com/openbesluit/reportgen/internal/domain"
	"github.com/openbesluit/reportgen/internal/platform/logger"
	"github.com/openbesluit/reportgen/internal/render"
	"github.com/openbesluit/reportgen/internal/sanitize"
	"github.com/openbesluit/reportgen/internal/store"
)

// BlobStore is the physical artifact storage the services write to:
// write-once blobs addressed by opaque URIs.
type BlobStore interface {
	// Write stores the blob under a fresh name and returns its URI.
	Write(ctx context.Context, name string, data []byte) (string, error)

	// Path resolves a URI produced by this store to a local file path.
	Path(uri string) (string, error)

	// Delete removes the blob behind the URI on behalf of the original
	// caller.
	Delete(ctx context.Context, uri string, caller domain.CallerContext) error
}

// ReportService regenerates the PDF of a single decision report: it
// gathers the report's content and context, optionally rebuilds the
// citation section, renders the document and atomically replaces the
// report's attached artifact.
type ReportService struct {
	reports  store.ReportStore
	blobs    BlobStore
	renderer render.Renderer
}

// NewReportService creates a ReportService with its collaborators.
func NewReportService(
	reports store.ReportStore,
	blobs BlobStore,
	renderer render.Renderer,
) *ReportService {
	return &ReportService{
		reports:  reports,
		blobs:    blobs,
		renderer: renderer,
	}
}

// Generate produces a fresh PDF for the report and attaches it,
// superseding the previous artifact. When regenerateCitations is set the
// concerns section is first rebuilt from the report's currently linked
// pieces and stored as a new revision. The caller context is forwarded
// to the best-effort deletion of the superseded blob.
func (s *ReportService) Generate(
	ctx context.Context,
	reportID uuid.UUID,
	caller domain.CallerContext,
	regenerateCitations bool,
) (*domain.Artifact, error) {
	parts, rctx, secretary, err := s.load(ctx, reportID)
	if err != nil {
		return nil, err
	}

	if regenerateCitations {
		concerns, err := s.regenerateConcerns(ctx, reportID, rctx.IsMinutesApproval)
		if err != nil {
			return nil, err
		}
		parts.Concerns = concerns
	}

	sanitized := sanitize.Parts(*parts)

	html, err := render.DocumentHTML(sanitized, rctx, secretary)
	if err != nil {
		return nil, err
	}

	pdf, err := s.renderer.RenderPDF(ctx, html)
	if err != nil {
		return nil, err
	}

	uri, err := s.blobs.Write(ctx, uuid.New().String()+".pdf", pdf)
	if err != nil {
		return nil, err
	}

	artifact, err := domain.NewArtifact(reportFilename(rctx), uri, int64(len(pdf)))
	if err != nil {
		return nil, err
	}

	superseded, err := s.reports.AttachArtifact(ctx, reportID, artifact)
	if err != nil {
		return nil, fmt.Errorf("failed to attach artifact to report %s: %w", reportID, err)
	}

	if superseded != nil {
		s.deleteSuperseded(ctx, superseded, caller)
	}

	return artifact, nil
}

// Validate runs the retrieval preconditions for the report without any
// side effect: content parts present and complete, meeting resolvable,
// no signature flow past its safe status.
func (s *ReportService) Validate(ctx context.Context, reportID uuid.UUID) error {
	_, _, _, err := s.load(ctx, reportID)
	return err
}

// validateForBundle checks that a report has complete content parts and
// resolves to a meeting. The signature-flow check is deliberately not
// applied: a signed report is bundled through its flattened copy, it is
// never regenerated here.
func (s *ReportService) validateForBundle(ctx context.Context, reportID uuid.UUID) error {
	parts, err := s.reports.GetReportParts(ctx, reportID)
	if err != nil {
		return err
	}
	if err := parts.Validate(); err != nil {
		return err
	}
	if _, err := s.reports.GetReportContext(ctx, reportID); err != nil {
		return err
	}
	return nil
}

// load performs the four independent reads and applies the fail-fast
// precondition checks. Secretary absence is not an error.
func (s *ReportService) load(
	ctx context.Context,
	reportID uuid.UUID,
) (*domain.ReportParts, *domain.ReportContext, *domain.Secretary, error) {
	var (
		parts      *domain.ReportParts
		rctx       *domain.ReportContext
		secretary  *domain.Secretary
		signStatus string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		parts, err = s.reports.GetReportParts(gctx, reportID)
		return err
	})
	g.Go(func() error {
		var err error
		rctx, err = s.reports.GetReportContext(gctx, reportID)
		return err
	})
	g.Go(func() error {
		var err error
		secretary, err = s.reports.GetSecretary(gctx, reportID)
		return err
	})
	g.Go(func() error {
		var err error
		signStatus, err = s.reports.GetSignFlowStatus(gctx, reportID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}

	if err := parts.Validate(); err != nil {
		return nil, nil, nil, err
	}
	if signStatus != "" && signStatus != domain.SignFlowStatusMarked {
		return nil, nil, nil, fmt.Errorf("%w: status %q", ErrSignFlowActive, signStatus)
	}

	return parts, rctx, secretary, nil
}

// regenerateConcerns rebuilds the concerns section from the report's
// currently linked pieces and stores it as a new revision. The prior
// revision stays reachable through the previous-version relation.
func (s *ReportService) regenerateConcerns(
	ctx context.Context,
	reportID uuid.UUID,
	minutesApproval bool,
) (string, error) {
	detail, err := s.reports.GetAgendaItemDetail(ctx, reportID)
	if err != nil {
		return "", err
	}

	pieces, err := s.reports.GetCitationPieces(ctx, reportID)
	if err != nil {
		return "", err
	}

	ordered := citation.Sequence(pieces, minutesApproval)
	names := make([]string, len(ordered))
	for i, piece := range ordered {
		names[i] = piece.Name
	}
	names = citation.Compact(names, minutesApproval)
	if detail.Ratification != "" {
		names = append([]string{detail.Ratification}, names...)
	}

	concerns := render.ConcernsHTML(detail, citation.FormatList(names))
	if err := s.reports.AddConcernsRevision(ctx, reportID, concerns); err != nil {
		return "", err
	}
	return concerns, nil
}

// deleteSuperseded removes the blob behind a replaced artifact. The new
// artifact is already durably linked, so failure here is logged and
// swallowed, never propagated.
func (s *ReportService) deleteSuperseded(
	ctx context.Context,
	superseded *domain.Artifact,
	caller domain.CallerContext,
) {
	if err := s.blobs.Delete(ctx, superseded.URI, caller); err != nil {
		logger.FromContext(ctx).Warn("failed to delete superseded artifact",
			"artifact_id", superseded.ID,
			"uri", superseded.URI,
			"error", err)
	}
}

// reportFilename builds the display name of a freshly generated report,
// e.g. "VR 2024-21 - punt 0003.pdf".
func reportFilename(rctx *domain.ReportContext) string {
	word := "punt"
	if rctx.AgendaItem.IsAnnouncement {
		word = "mededeling"
	}
	name := fmt.Sprintf("%s - %s %04d.pdf", rctx.Meeting.Label, word, rctx.AgendaItem.Number)
	return strings.ReplaceAll(name, "/", "-")
}
