package service

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"lattesdocs/internal/attachment"
	"lattesdocs/internal/model"
	"lattesdocs/internal/notification"
)

const notInformed = "Not informed"

// listedDocument is one line of the internal email listing.
type listedDocument struct {
	Label       string
	Filename    string
	Description string
}

func (d listedDocument) String() string {
	if d.Description == "" {
		return fmt.Sprintf("- %s: %s", d.Label, d.Filename)
	}
	return fmt.Sprintf("- %s: %s (%s)", d.Label, d.Filename, d.Description)
}

type internalView struct {
	Request   *model.Request
	Phone     string
	Deadline  string
	Attached  int
	Skipped   int
	Documents []listedDocument
}

var internalHTML = template.Must(template.New("internal").Parse(`<h2>Request finalized</h2>
<ul>
<li><strong>Code:</strong> {{.Request.PublicID}}</li>
<li><strong>Customer name:</strong> {{.Request.FullName}}</li>
<li><strong>Customer email:</strong> {{.Request.Email}}</li>
<li><strong>Customer phone:</strong> {{.Phone}}</li>
{{- if .Request.Goal}}
<li><strong>Goal:</strong> {{.Request.Goal}}</li>
{{- end}}
{{- if .Deadline}}
<li><strong>Deadline:</strong> {{.Deadline}}</li>
{{- end}}
<li><strong>Documents attached:</strong> {{.Attached}}</li>
{{- if .Skipped}}
<li><strong>Documents not attached:</strong> {{.Skipped}} skipped (missing or unreadable file)</li>
{{- end}}
</ul>
{{- if .Documents}}
<ul>
{{- range .Documents}}
<li>{{.Label}}: {{.Filename}}{{if .Description}} ({{.Description}}){{end}}</li>
{{- end}}
</ul>
{{- end}}
{{- if .Request.Notes}}
<p><strong>Notes:</strong> {{.Request.Notes}}</p>
{{- end}}
`))

type customerView struct {
	FirstName string
	PublicID  string
}

var customerHTML = template.Must(template.New("customer").Parse(`<p>Hello {{.FirstName}},</p>
<p>We received the documents for request <strong>{{.PublicID}}</strong>. Our team will review them and contact you soon.</p>
<p>Keep this code to look up your request later: <strong>{{.PublicID}}</strong></p>
`))

func buildInternalMessage(to string, req *model.Request, docs []listedDocument, atts []attachment.Attachment, skipped int) (notification.Message, error) {
	v := internalView{
		Request:   req,
		Phone:     notInformed,
		Attached:  len(atts),
		Skipped:   skipped,
		Documents: docs,
	}
	if p := strings.TrimSpace(req.Phone); p != "" {
		v.Phone = p
	}
	if req.Deadline != nil {
		v.Deadline = req.Deadline.Format(DeadlineLayout)
	}

	var b strings.Builder
	b.WriteString("Request finalized (Lattes)\n\n")
	fmt.Fprintf(&b, "Code: %s\n", req.PublicID)
	fmt.Fprintf(&b, "Customer name: %s\n", req.FullName)
	fmt.Fprintf(&b, "Customer email: %s\n", req.Email)
	fmt.Fprintf(&b, "Customer phone: %s\n", v.Phone)
	if req.Goal != "" {
		fmt.Fprintf(&b, "Goal: %s\n", req.Goal)
	}
	if v.Deadline != "" {
		fmt.Fprintf(&b, "Deadline: %s\n", v.Deadline)
	}
	fmt.Fprintf(&b, "Documents attached: %d\n", v.Attached)
	if skipped > 0 {
		fmt.Fprintf(&b, "Documents not attached: %d skipped (missing or unreadable file)\n", skipped)
	}
	if len(docs) > 0 {
		b.WriteString("\nDocuments:\n")
		for _, d := range docs {
			b.WriteString(d.String())
			b.WriteByte('\n')
		}
	}
	if req.Notes != "" {
		fmt.Fprintf(&b, "\nNotes:\n%s\n", req.Notes)
	}

	var html bytes.Buffer
	if err := internalHTML.Execute(&html, v); err != nil {
		return notification.Message{}, fmt.Errorf("render internal email: %w", err)
	}

	return notification.Message{
		To:          to,
		ReplyTo:     req.Email,
		Subject:     "Request finalized - " + req.PublicID,
		Text:        b.String(),
		HTML:        html.String(),
		Attachments: atts,
	}, nil
}

func buildCustomerMessage(replyTo string, req *model.Request) (notification.Message, error) {
	v := customerView{PublicID: req.PublicID, FirstName: "there"}
	if f := strings.Fields(req.FullName); len(f) > 0 {
		v.FirstName = f[0]
	}

	text := fmt.Sprintf("Hello %s,\n\n"+
		"We received the documents for request %s. Our team will review them and contact you soon.\n\n"+
		"Keep this code to look up your request later: %s\n", v.FirstName, req.PublicID, req.PublicID)

	var html bytes.Buffer
	if err := customerHTML.Execute(&html, v); err != nil {
		return notification.Message{}, fmt.Errorf("render customer email: %w", err)
	}

	return notification.Message{
		To:      req.Email,
		ReplyTo: replyTo,
		Subject: "We received your documents - " + req.PublicID,
		Text:    text,
		HTML:    html.String(),
	}, nil
}
