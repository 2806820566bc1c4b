package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// MeetingKind categorizes the government meeting a report belongs to.
type MeetingKind string

const (
	MeetingKindRegular      MeetingKind = "regular"
	MeetingKindElectronic   MeetingKind = "electronic"
	MeetingKindSpecial      MeetingKind = "special"
	MeetingKindRecoveryPlan MeetingKind = "recovery-plan"
	MeetingKindAnnex        MeetingKind = "annex"
)

// ConfidentialityTier is the access tier carried on reports and pieces.
// The service does not implement an access-control model; the tier is
// passed through to generated output and used to exclude
// secretariat-only pieces from citations.
type ConfidentialityTier string

const (
	TierSecretariat  ConfidentialityTier = "internal-secretariat"
	TierConfidential ConfidentialityTier = "confidential"
	TierGovernment   ConfidentialityTier = "internal-government"
	TierPublic       ConfidentialityTier = "public"
)

// SignFlowStatusMarked is the only signature-flow status under which a
// report may still be regenerated. Any other active status means the
// document is in or past signing.
const SignFlowStatusMarked = "marked"

// Common validation errors for report content.
var (
	ErrMissingConcerns = errors.New("report is missing its concerns section")
	ErrMissingDecision = errors.New("report is missing its decision section")
)

// Meeting is the parent meeting of a report, as needed for rendering.
type Meeting struct {
	ID           uuid.UUID
	Label        string // sequence label, e.g. "VR 2024/21"
	Kind         MeetingKind
	MainKind     MeetingKind // set when this meeting is an annex of another
	PlannedStart time.Time
}

// AgendaItem carries the agenda position data rendered into a report.
type AgendaItem struct {
	Number         int
	IsAnnouncement bool
	TypeOrdinal    int
}

// ReportContext is the read-only snapshot of meeting, agenda item and
// confidentiality data needed to render one report. It is fetched fresh
// per generation and never cached across calls.
type ReportContext struct {
	Meeting           *Meeting
	AgendaItem        AgendaItem
	Confidentiality   ConfidentialityTier
	ReportName        string
	IsMinutesApproval bool
}

// ReportParts holds the current revision of each textual section of a
// report. Concerns and Decision are mandatory; Annotation is optional.
// Prior revisions are kept in the store through a previous-version
// relation and are never overwritten or deleted.
type ReportParts struct {
	Concerns   string
	Decision   string
	Annotation string
}

// Validate checks that the two mandatory sections are present.
func (p *ReportParts) Validate() error {
	if p.Concerns == "" {
		return ErrMissingConcerns
	}
	if p.Decision == "" {
		return ErrMissingDecision
	}
	return nil
}

// Secretary identifies the government secretary whose signature block is
// rendered at the bottom of a report. Optional; reports without an
// associated secretary render no signature block.
type Secretary struct {
	FirstName string
	LastName  string
	Title     string
}

// Piece is a citable source document attached to an agenda item, as
// consumed by the citation sequencer. Position is nil when no explicit
// ordering position was recorded.
type Piece struct {
	Name     string
	Position *int
	Created  time.Time
}

// AgendaItemDetail is the agenda item content used when the concerns
// section is regenerated: titles, the optional procedure-step name and
// the optional ratification reference.
type AgendaItemDetail struct {
	ShortTitle        string
	Title             string
	ProcedureStepName string
	Ratification      string
	IsMinutesApproval bool
	IsNote            bool
}
