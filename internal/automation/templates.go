package automation

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/jonathan/resume-screener/internal/types"
)

// Known email template names. An unknown template parameter falls back to
// TemplateHighScore.
const (
	TemplateHighScore       = "high_score"
	TemplateRejection       = "rejection"
	TemplateInterviewInvite = "interview_invite"
)

var emailTemplates = template.Must(template.New("emails").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`
{{define "high_score" -}}
Congratulations {{.Candidate.Name}}!

We're impressed with your application. Your screening score was {{printf "%.0f" .Decision.OverallScore}}/100.
Next steps: {{join .Decision.NextSteps ", "}}
We'll be in touch soon!
{{- end}}

{{define "rejection" -}}
Thank you for your interest, {{.Candidate.Name}}.

After careful consideration, we've decided to move forward with other candidates.
We encourage you to apply for future opportunities that match your skills.
{{- end}}

{{define "interview_invite" -}}
Interview Invitation - {{.Candidate.Name}}

We'd like to schedule an interview with you. Your screening score was {{printf "%.0f" .Decision.OverallScore}}/100.
Please reply with your availability for the next week.
{{- end}}
`))

// emailContext is the data available to email templates.
type emailContext struct {
	Candidate *types.Candidate
	Decision  *types.ScreeningDecision
}

// RenderEmail renders a named email template for a candidate and decision.
// Unknown names fall back to the high_score template.
func RenderEmail(name string, candidate *types.Candidate, decision *types.ScreeningDecision) (string, error) {
	switch name {
	case TemplateHighScore, TemplateRejection, TemplateInterviewInvite:
	default:
		name = TemplateHighScore
	}

	var sb strings.Builder
	if err := emailTemplates.ExecuteTemplate(&sb, name, emailContext{Candidate: candidate, Decision: decision}); err != nil {
		return "", fmt.Errorf("rendering email template %s: %w", name, err)
	}
	return strings.TrimSpace(sb.String()), nil
}
