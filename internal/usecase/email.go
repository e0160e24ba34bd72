package usecase

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"tekmakon-site/internal/domain"
)

const (
	htmlTimeLayout = "Monday, January 2, 2006 at 3:04 PM"
	textTimeLayout = "1/2/2006, 3:04:05 PM"
)

type emailView struct {
	FirstName   string
	FullName    string
	Email       string
	InquiryType string
	Message     string
	MessageHTML htmltemplate.HTML
	ReceivedAt  string
	SubmittedAt string
}

var contactHTML = htmltemplate.Must(htmltemplate.New("contact.html").Parse(`<!DOCTYPE html>
<html>
  <head>
    <style>
      body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 0; }
      .container { max-width: 600px; margin: 0 auto; background: #ffffff; }
      .header { background: linear-gradient(135deg, #4cc8a3, #6a0dac); padding: 40px 30px; text-align: center; color: white; }
      .header h1 { margin: 0; font-size: 28px; font-weight: 600; }
      .header p { margin: 10px 0 0 0; opacity: 0.9; font-size: 14px; }
      .content { background: #f9fafb; padding: 40px 30px; }
      .field { margin-bottom: 24px; background: white; padding: 20px; border-radius: 8px; border-left: 4px solid #4cc8a3; }
      .label { font-weight: 600; color: #4cc8a3; margin-bottom: 8px; font-size: 12px; text-transform: uppercase; letter-spacing: 0.5px; }
      .value { color: #1f2937; font-size: 15px; word-wrap: break-word; }
      .value a { color: #4cc8a3; text-decoration: none; }
      .footer { text-align: center; padding: 30px; color: #6b7280; font-size: 13px; border-top: 1px solid #e5e7eb; }
      .footer p { margin: 5px 0; }
      .reply-button { display: inline-block; margin-top: 20px; padding: 12px 24px; background: #4cc8a3; color: white; text-decoration: none; border-radius: 6px; font-weight: 500; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header">
        <h1>📧 New Contact Form Submission</h1>
        <p>From TekMakon Website</p>
      </div>
      <div class="content">
        <div class="field">
          <div class="label">👤 Name</div>
          <div class="value">{{.FullName}}</div>
        </div>
        <div class="field">
          <div class="label">✉️ Email</div>
          <div class="value"><a href="mailto:{{.Email}}">{{.Email}}</a></div>
        </div>
        <div class="field">
          <div class="label">📋 Inquiry Type</div>
          <div class="value">{{.InquiryType}}</div>
        </div>
        <div class="field">
          <div class="label">💬 Message</div>
          <div class="value">{{.MessageHTML}}</div>
        </div>
        <div style="text-align: center;">
          <a href="mailto:{{.Email}}" class="reply-button">Reply to {{.FirstName}}</a>
        </div>
      </div>
      <div class="footer">
        <p><strong>This email was sent from the TekMakon contact form</strong></p>
        <p>Received on {{.ReceivedAt}}</p>
      </div>
    </div>
  </body>
</html>
`))

var contactText = texttemplate.Must(texttemplate.New("contact.txt").Parse(`New Contact Form Submission

Name: {{.FullName}}
Email: {{.Email}}
Inquiry Type: {{.InquiryType}}

Message:
{{.Message}}

---
Reply to: {{.Email}}
Submitted: {{.SubmittedAt}}
`))

func subjectFor(inquiryType string) string {
	return "New Contact Form Submission: " + inquiryType
}

// messageToHTML escapes the message and turns newlines into line breaks.
func messageToHTML(msg string) htmltemplate.HTML {
	escaped := htmltemplate.HTMLEscapeString(strings.ReplaceAll(msg, "\r\n", "\n"))
	return htmltemplate.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

// renderContactEmail builds the subject and both bodies for sub, stamped at now.
func renderContactEmail(sub domain.ContactSubmission, now time.Time) (subject, html, text string, err error) {
	view := emailView{
		FirstName:   sub.FirstName,
		FullName:    sub.FullName(),
		Email:       sub.Email,
		InquiryType: sub.InquiryType,
		Message:     sub.Message,
		MessageHTML: messageToHTML(sub.Message),
		ReceivedAt:  now.Format(htmlTimeLayout),
		SubmittedAt: now.Format(textTimeLayout),
	}

	var htmlBuf, textBuf bytes.Buffer
	if err := contactHTML.Execute(&htmlBuf, view); err != nil {
		return "", "", "", fmt.Errorf("usecase: render html email: %w", err)
	}
	if err := contactText.Execute(&textBuf, view); err != nil {
		return "", "", "", fmt.Errorf("usecase: render text email: %w", err)
	}
	return subjectFor(sub.InquiryType), htmlBuf.String(), textBuf.String(), nil
}
