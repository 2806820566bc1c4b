package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/openbesluit/reportgen/internal/domain"
)

//go:embed style/report.css
var reportStyle string

// ErrUnrenderableMeetingKind is returned when a report's meeting kind
// has no document heading, e.g. an annex meeting presented as a main
// meeting.
var ErrUnrenderableMeetingKind = fmt.Errorf("meeting kind cannot be rendered")

var documentTemplate = template.Must(template.New("report").Parse(`<head>
  <style>
{{.Style}}
  </style>
</head>
<div lang="nl">
  <div>
    <div style="text-align: center;">
      <br />
      <p style="font-size: 12pt;">{{.MeetingTitle}}</p>
      <p>________________________________________</p>
    </div>
    {{if .Confidential}}<p class="confidential-statement">VERTROUWELIJK</p>{{end}}
    {{if .Annotation}}<p class="annotation">{{.Annotation}}</p>
    <br />{{else}}<br />
    <br />{{end}}
    <p style="font-weight: 500; text-decoration: underline; font-size: 12pt;">
      {{.ReportName}}
    </p>
    <br />

    <p><span class="part-title">Betreft</span> :</p>
    {{.Concerns}}
    <br />

    <p><span class="part-title">Beslissing</span> :</p>
    {{.Decision}}
  </div>
  {{if .Secretary}}<div class="signature-container">
    <div>
      <p style="font-weight: 500;">
        {{.Secretary.FirstName}} {{.SecretaryLastName}},
      </p>
      <p>{{.Secretary.Title}}.</p>
    </div>
  </div>{{end}}
</div>
`))

type documentData struct {
	Style             template.CSS
	MeetingTitle      template.HTML
	Confidential      bool
	Annotation        template.HTML
	ReportName        string
	Concerns          template.HTML
	Decision          template.HTML
	Secretary         *domain.Secretary
	SecretaryLastName string
}

// DocumentHTML renders the complete document body for one report. The
// parts are expected to be sanitized already; they are inserted as-is.
func DocumentHTML(
	parts domain.ReportParts,
	rctx *domain.ReportContext,
	secretary *domain.Secretary,
) (string, error) {
	title, err := meetingTitle(rctx.Meeting)
	if err != nil {
		return "", err
	}

	data := documentData{
		Style:        template.CSS(reportStyle),
		MeetingTitle: title,
		Confidential: rctx.Confidentiality == domain.TierConfidential,
		Annotation:   template.HTML(parts.Annotation),
		ReportName:   rctx.ReportName,
		Concerns:     template.HTML(parts.Concerns),
		Decision:     template.HTML(parts.Decision),
		Secretary:    secretary,
	}
	if secretary != nil {
		data.SecretaryLastName = strings.ToUpper(secretary.LastName)
	}

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render document body: %w", err)
	}
	return buf.String(), nil
}

// meetingTitle builds the heading line naming the meeting and its date.
// An annex meeting is titled after the main meeting it belongs to; a
// recovery-plan meeting gets its marker line appended.
func meetingTitle(meeting *domain.Meeting) (template.HTML, error) {
	formattedDate := FormatDate(meeting.PlannedStart)

	kind := meeting.Kind
	if meeting.MainKind != "" {
		kind = meeting.MainKind
	}

	var title string
	switch kind {
	case domain.MeetingKindRegular:
		title = fmt.Sprintf("Vergadering van %s", formattedDate)
	case domain.MeetingKindElectronic:
		title = fmt.Sprintf("Elektronische vergadering van %s", formattedDate)
	case domain.MeetingKindSpecial:
		title = fmt.Sprintf("Bijzondere vergadering van %s", formattedDate)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnrenderableMeetingKind, kind)
	}

	if meeting.Kind == domain.MeetingKindRecoveryPlan {
		title += "<br />Plan Vlaamse Veerkracht"
	}

	return template.HTML(title), nil
}
