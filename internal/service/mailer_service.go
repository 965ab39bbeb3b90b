package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/360ace-tech/contact-gateway/internal/api/dto/v1/contact"
	"github.com/360ace-tech/contact-gateway/internal/config"
)

const (
	sendgridSendURL    = "https://api.sendgrid.com/v3/mail/send"
	mailClientTimeout  = 10 * time.Second
	fromDisplayName    = "360ace.Tech Contact Form"
	maxProviderErrBody = 2 << 10
)

// MailerService relays contact submissions as transactional email via
// the SendGrid v3 API
type MailerService struct {
	apiKey        string
	to            string
	from          string
	subjectPrefix string

	sendURL string
	client  *http.Client
}

// NewMailerService creates a new mail dispatch service
func NewMailerService(cfg *config.Config) *MailerService {
	sendURL := cfg.SendgridAPIURL
	if sendURL == "" {
		sendURL = sendgridSendURL
	}
	return &MailerService{
		apiKey:        cfg.SendgridAPIKey,
		to:            cfg.ContactToEmail,
		from:          cfg.ContactFromEmail,
		subjectPrefix: cfg.SubjectPrefix,
		sendURL:       sendURL,
		client: &http.Client{
			Timeout: mailClientTimeout,
		},
	}
}

// Configured reports whether a delivery credential is present
func (s *MailerService) Configured() bool {
	return s.apiKey != ""
}

// sendgrid v3 mail/send envelope
type sgAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sgPersonalization struct {
	To      []sgAddress `json:"to"`
	Subject string      `json:"subject"`
}

type sgContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sgPayload struct {
	Personalizations []sgPersonalization `json:"personalizations"`
	From             sgAddress           `json:"from"`
	ReplyTo          sgAddress           `json:"reply_to"`
	Content          []sgContent         `json:"content"`
}

// SendContactMessage formats and delivers one submission. Errors wrap
// the sentinel that tells the handler which degraded response to give.
func (s *MailerService) SendContactMessage(ctx context.Context, sub *contact.SubmitRequest) error {
	if !s.Configured() {
		return ErrMailNotConfigured
	}

	payload := sgPayload{
		Personalizations: []sgPersonalization{{
			To:      []sgAddress{{Email: s.to}},
			Subject: fmt.Sprintf("%s: %s", s.subjectPrefix, sub.Subject),
		}},
		From:    sgAddress{Email: s.from, Name: fromDisplayName},
		ReplyTo: sgAddress{Email: sub.Email},
		Content: []sgContent{
			{Type: "text/plain", Value: s.textBody(sub)},
			{Type: "text/html", Value: s.htmlBody(sub)},
		},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.sendURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build mail request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMailUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxProviderErrBody))
		return fmt.Errorf("%w: status %d: %s", ErrMailRejected, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	return nil
}

// textBody renders the plain-text part: label/value lines with absent
// optional fields omitted
func (s *MailerService) textBody(sub *contact.SubmitRequest) string {
	lines := []string{
		"New contact message",
		"",
		"From: " + sub.Email,
	}
	if sub.Company != "" {
		lines = append(lines, "Company: "+sub.Company)
	}
	if sub.Phone != "" {
		lines = append(lines, "Phone: "+sub.Phone)
	}
	lines = append(lines,
		"Subject: "+sub.Subject,
		"",
		sub.Message,
	)
	return strings.Join(lines, "\n")
}

// htmlBody renders the HTML part. Every user-supplied value is escaped;
// the submission must not be able to inject markup into the email.
func (s *MailerService) htmlBody(sub *contact.SubmitRequest) string {
	var meta strings.Builder
	writeMetaRow(&meta, "From", sub.Email)
	if sub.Company != "" {
		writeMetaRow(&meta, "Company", sub.Company)
	}
	if sub.Phone != "" {
		writeMetaRow(&meta, "Phone", sub.Phone)
	}

	return fmt.Sprintf(`<!doctype html>
<html><head><meta charset="utf-8"></head><body style="margin:0;padding:24px;background:#0b0b0b;color:#fff;font-family:system-ui,-apple-system,Segoe UI,Roboto,Inter,Ubuntu,Arial,sans-serif;">
  <div style="max-width:640px;margin:0 auto;background:#101014;border:1px solid rgba(255,255,255,0.1);border-radius:16px;">
    <div style="padding:20px 24px;border-bottom:1px solid rgba(255,255,255,0.08);">
      <h2 style="margin:0;font-size:18px;line-height:1.4;">%s: %s</h2>
    </div>
    <div style="padding:20px 24px;">
      <table style="width:100%%;border-collapse:collapse;color:#d6d6d6;font-size:14px;">%s</table>
      <div style="margin-top:16px;">
        <div style="font-size:12px;letter-spacing:0.06em;text-transform:uppercase;opacity:0.75;margin-bottom:8px;">Message</div>
        <div style="border:1px solid rgba(255,255,255,0.1);border-radius:12px;background:#0e0e12;padding:16px;color:#fff;">
          <pre style="margin:0;white-space:pre-wrap;word-wrap:break-word;font:inherit;">%s</pre>
        </div>
      </div>
    </div>
  </div>
</body></html>`,
		escapeHTML(s.subjectPrefix),
		escapeHTML(sub.Subject),
		meta.String(),
		escapeHTML(sub.Message),
	)
}

func writeMetaRow(b *strings.Builder, label, value string) {
	fmt.Fprintf(b,
		`<tr><td style="padding:8px 0;opacity:0.8;width:120px;vertical-align:top;">%s</td><td style="padding:8px 0;color:#fff;">%s</td></tr>`,
		label, escapeHTML(value))
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// escapeHTML neutralizes the characters that could break out of the
// email template
func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
