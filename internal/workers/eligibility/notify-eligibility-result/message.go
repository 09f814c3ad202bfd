// internal/workers/eligibility/notify-eligibility-result/message.go
package notifyeligibilityresult

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"loan-eligibility-workers/internal/eligibility"
)

var (
	subjectTemplate = template.Must(template.New("subject").Parse(
		`Your loan eligibility result: {{.ApprovalProbability}}% approval chance`))

	emailTemplate = template.Must(template.New("email").Parse(`Hello,

Your estimated loan approval probability is {{.ApprovalProbability}}%.
Risk category: {{.RiskCategory}}
Bank fit: {{.BankFitCategory}}
{{- with .TopBank}}

Best match: {{.Name}} at {{.InterestRate}} ({{.MatchScore}}% match)
{{- end}}
{{- if .RoadmapSteps}}

Your next steps:
{{- range .RoadmapSteps}}
{{.Step}}. {{.Title}} ({{.Duration}})
{{- end}}
{{- end}}
`))

	smsTemplate = template.Must(template.New("sms").Parse(
		`Loan eligibility: {{.ApprovalProbability}}% approval chance, {{.RiskCategory}} risk.{{with .TopBank}} Best match: {{.Name}}.{{end}}`))
)

type messageData struct {
	eligibility.Assessment
	TopBank *eligibility.BankRecommendation
}

type message struct {
	Subject string
	Body    string
	SMS     string
}

func newMessageData(a eligibility.Assessment) messageData {
	data := messageData{Assessment: a}
	for i := range a.RecommendedBanks {
		if data.TopBank == nil || a.RecommendedBanks[i].MatchScore > data.TopBank.MatchScore {
			data.TopBank = &a.RecommendedBanks[i]
		}
	}
	return data
}

func renderMessage(a eligibility.Assessment) (*message, error) {
	data := newMessageData(a)

	subject, err := renderTemplate(subjectTemplate, data)
	if err != nil {
		return nil, err
	}
	body, err := renderTemplate(emailTemplate, data)
	if err != nil {
		return nil, err
	}
	sms, err := renderTemplate(smsTemplate, data)
	if err != nil {
		return nil, err
	}
	return &message{Subject: subject, Body: body, SMS: sms}, nil
}

func renderTemplate(t *template.Template, data messageData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s template: %w", t.Name(), err)
	}
	return strings.TrimSpace(buf.String()), nil
}
