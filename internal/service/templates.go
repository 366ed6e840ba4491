package service

import (
	"bytes"
	"fmt"
	"html/template"
)

// mailVars feeds every mail template.
type mailVars struct {
	Name          string
	Email         string
	Position      string
	Event         string
	Location      string
	StartDatetime string
}

var mailTemplates = template.Must(template.New("mail").Parse(`
{{define "received"}}
<html><body>
<p>Dear {{.Name}},</p>
<p>Thank you for applying for the <strong>{{.Position}}</strong> position. We have received your CV and our team will review it shortly.</p>
<p>We will contact you at {{.Email}} with the outcome of the initial review.</p>
<p>Best regards,<br/>The Recruitment Team</p>
</body></html>
{{end}}

{{define "selected"}}
<html><body>
<p>Dear {{.Name}},</p>
<p>Congratulations! After reviewing your application for the <strong>{{.Position}}</strong> position, we are pleased to inform you that you have been selected for the next stage of our recruitment process.</p>
<p>We will reach out to you at {{.Email}} with the details of the next steps.</p>
<p>Best regards,<br/>The Recruitment Team</p>
</body></html>
{{end}}

{{define "rejected"}}
<html><body>
<p>Dear {{.Name}},</p>
<p>Thank you for your interest in the <strong>{{.Position}}</strong> position and for the time you invested in your application.</p>
<p>After careful consideration we have decided not to move forward with your application at this time. We encourage you to apply for future openings that match your profile.</p>
<p>Best regards,<br/>The Recruitment Team</p>
</body></html>
{{end}}

{{define "interview"}}
<html><body>
<p>Dear {{.Name}},</p>
<p>We are pleased to invite you to the <strong>{{.Event}}</strong> for the <strong>{{.Position}}</strong> position.</p>
<p><strong>When:</strong> {{.StartDatetime}}<br/>
<strong>Where:</strong> {{.Location}}</p>
<p>A calendar invitation has been sent to {{.Email}}. Please confirm your attendance.</p>
<p>Best regards,<br/>The Recruitment Team</p>
</body></html>
{{end}}
`))

// renderMailTemplate renders one named template to an HTML string.
func renderMailTemplate(name string, vars mailVars) (string, error) {
	var buf bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&buf, name, vars); err != nil {
		return "", fmt.Errorf("failed to render mail template %s: %w", name, err)
	}
	return buf.String(), nil
}
