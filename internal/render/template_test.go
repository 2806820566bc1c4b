package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbesluit/reportgen/internal/domain"
)

func testMeeting(kind domain.MeetingKind) *domain.Meeting {
	return &domain.Meeting{
		Label:        "VR 2024/21",
		Kind:         kind,
		PlannedStart: time.Date(2024, time.April, 12, 10, 0, 0, 0, time.UTC),
	}
}

func TestMeetingTitle(t *testing.T) {
	t.Parallel()

	t.Run("regular meeting", func(t *testing.T) {
		t.Parallel()
		title, err := meetingTitle(testMeeting(domain.MeetingKindRegular))
		require.NoError(t, err)
		assert.Equal(t, "Vergadering van vrijdag 12 april 2024", string(title))
	})

	t.Run("electronic meeting", func(t *testing.T) {
		t.Parallel()
		title, err := meetingTitle(testMeeting(domain.MeetingKindElectronic))
		require.NoError(t, err)
		assert.Equal(t, "Elektronische vergadering van vrijdag 12 april 2024", string(title))
	})

	t.Run("special meeting", func(t *testing.T) {
		t.Parallel()
		title, err := meetingTitle(testMeeting(domain.MeetingKindSpecial))
		require.NoError(t, err)
		assert.Equal(t, "Bijzondere vergadering van vrijdag 12 april 2024", string(title))
	})

	t.Run("recovery-plan annex titled after its main meeting", func(t *testing.T) {
		t.Parallel()
		meeting := testMeeting(domain.MeetingKindRecoveryPlan)
		meeting.MainKind = domain.MeetingKindRegular
		title, err := meetingTitle(meeting)
		require.NoError(t, err)
		assert.Equal(t, "Vergadering van vrijdag 12 april 2024<br />Plan Vlaamse Veerkracht", string(title))
	})

	t.Run("recovery-plan main meeting is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := meetingTitle(testMeeting(domain.MeetingKindRecoveryPlan))
		assert.ErrorIs(t, err, ErrUnrenderableMeetingKind)
	})

	t.Run("annex without main meeting is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := meetingTitle(testMeeting(domain.MeetingKindAnnex))
		assert.ErrorIs(t, err, ErrUnrenderableMeetingKind)
	})
}

func TestDocumentHTML(t *testing.T) {
	t.Parallel()

	parts := domain.ReportParts{
		Concerns: "<div><p>Ontwerpbesluit</p></div>",
		Decision: "<div><p>Goedgekeurd</p></div>",
	}
	rctx := &domain.ReportContext{
		Meeting:         testMeeting(domain.MeetingKindRegular),
		Confidentiality: domain.TierGovernment,
		ReportName:      "VR 2024/21 - punt 0003.pdf",
	}

	t.Run("contains parts, name and headings", func(t *testing.T) {
		t.Parallel()
		html, err := DocumentHTML(parts, rctx, nil)
		require.NoError(t, err)

		assert.Contains(t, html, "Vergadering van vrijdag 12 april 2024")
		assert.Contains(t, html, "VR 2024/21 - punt 0003.pdf")
		assert.Contains(t, html, `<span class="part-title">Betreft</span>`)
		assert.Contains(t, html, `<span class="part-title">Beslissing</span>`)
		assert.Contains(t, html, "<div><p>Ontwerpbesluit</p></div>")
		assert.Contains(t, html, "<div><p>Goedgekeurd</p></div>")
		assert.NotContains(t, html, "VERTROUWELIJK")
		assert.NotContains(t, html, "signature-container")
	})

	t.Run("confidential reports carry the marker", func(t *testing.T) {
		t.Parallel()
		confidential := *rctx
		confidential.Confidentiality = domain.TierConfidential
		html, err := DocumentHTML(parts, &confidential, nil)
		require.NoError(t, err)
		assert.Contains(t, html, `<p class="confidential-statement">VERTROUWELIJK</p>`)
	})

	t.Run("secretary renders with upper-cased last name", func(t *testing.T) {
		t.Parallel()
		secretary := &domain.Secretary{
			FirstName: "Jeroen",
			LastName:  "Overmeer",
			Title:     "Secretaris van de Vlaamse Regering",
		}
		html, err := DocumentHTML(parts, rctx, secretary)
		require.NoError(t, err)
		assert.Contains(t, html, "Jeroen OVERMEER,")
		assert.Contains(t, html, "Secretaris van de Vlaamse Regering.")
	})

	t.Run("annotation replaces the spacer", func(t *testing.T) {
		t.Parallel()
		annotated := parts
		annotated.Annotation = "In uitvoering van het regeerakkoord"
		html, err := DocumentHTML(annotated, rctx, nil)
		require.NoError(t, err)
		assert.Contains(t, html, `<p class="annotation">In uitvoering van het regeerakkoord</p>`)
	})

	t.Run("unrenderable meeting kind propagates", func(t *testing.T) {
		t.Parallel()
		broken := *rctx
		broken.Meeting = testMeeting(domain.MeetingKindAnnex)
		_, err := DocumentHTML(parts, &broken, nil)
		assert.ErrorIs(t, err, ErrUnrenderableMeetingKind)
	})
}
