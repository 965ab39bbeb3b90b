package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/360ace-tech/contact-gateway/internal/api/dto/v1/contact"
	"github.com/360ace-tech/contact-gateway/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMailConfig(url string) *config.Config {
	return &config.Config{
		SendgridAPIKey:   "SG.test-key",
		SendgridAPIURL:   url,
		ContactToEmail:   "hello@360ace.tech",
		ContactFromEmail: "no-reply@360ace.tech",
		SubjectPrefix:    "New contact",
	}
}

func fullSubmission() *contact.SubmitRequest {
	return &contact.SubmitRequest{
		Email:   "visitor@example.com",
		Company: "Acme",
		Phone:   "+1 555 0100",
		Subject: "Hello",
		Message: "We need help with cloud migration.",
	}
}

func TestSendContactMessageNotConfigured(t *testing.T) {
	s := NewMailerService(&config.Config{})

	err := s.SendContactMessage(context.Background(), fullSubmission())
	assert.ErrorIs(t, err, ErrMailNotConfigured)
	assert.False(t, s.Configured())
}

func TestSendContactMessagePayload(t *testing.T) {
	var got sgPayload
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	s := NewMailerService(testMailConfig(srv.URL))
	require.NoError(t, s.SendContactMessage(context.Background(), fullSubmission()))

	assert.Equal(t, "Bearer SG.test-key", auth)
	require.Len(t, got.Personalizations, 1)
	assert.Equal(t, []sgAddress{{Email: "hello@360ace.tech"}}, got.Personalizations[0].To)
	assert.Equal(t, "New contact: Hello", got.Personalizations[0].Subject)
	assert.Equal(t, "no-reply@360ace.tech", got.From.Email)
	assert.Equal(t, "visitor@example.com", got.ReplyTo.Email, "reply-to must point at the submitter")

	require.Len(t, got.Content, 2)
	assert.Equal(t, "text/plain", got.Content[0].Type)
	assert.Equal(t, "text/html", got.Content[1].Type)
	assert.Contains(t, got.Content[0].Value, "From: visitor@example.com")
	assert.Contains(t, got.Content[0].Value, "Company: Acme")
	assert.Contains(t, got.Content[1].Value, "We need help with cloud migration.")
}

func TestSendContactMessageRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
	}))
	defer srv.Close()

	s := NewMailerService(testMailConfig(srv.URL))
	err := s.SendContactMessage(context.Background(), fullSubmission())
	assert.ErrorIs(t, err, ErrMailRejected)
}

func TestSendContactMessageUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	s := NewMailerService(testMailConfig(srv.URL))
	err := s.SendContactMessage(context.Background(), fullSubmission())
	assert.ErrorIs(t, err, ErrMailUnreachable)
	assert.False(t, errors.Is(err, ErrMailRejected))
}

func TestTextBodyOmitsAbsentOptionals(t *testing.T) {
	s := NewMailerService(testMailConfig(""))
	sub := &contact.SubmitRequest{
		Email:   "a@b.com",
		Subject: "Hi",
		Message: "Test",
	}

	body := s.textBody(sub)
	assert.NotContains(t, body, "Company:")
	assert.NotContains(t, body, "Phone:")
	assert.Contains(t, body, "From: a@b.com")
	assert.Contains(t, body, "Subject: Hi")
	assert.True(t, strings.HasSuffix(body, "Test"))
}

func TestHTMLBodyEscapesUserValues(t *testing.T) {
	s := NewMailerService(testMailConfig(""))
	sub := &contact.SubmitRequest{
		Email:   "a@b.com",
		Company: `Acme & "Sons"`,
		Subject: "<script>alert('x')</script>",
		Message: `<img src=x onerror="steal()"> & 'quotes'`,
	}

	html := s.htmlBody(sub)
	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "<img")
	assert.NotContains(t, html, `"Sons"`)
	assert.NotContains(t, html, "'quotes'")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "&amp;")
	assert.Contains(t, html, "&quot;Sons&quot;")
	assert.Contains(t, html, "&#39;quotes&#39;")
}

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain`, `plain`},
		{`a&b`, `a&amp;b`},
		{`<b>`, `&lt;b&gt;`},
		{`"x"`, `&quot;x&quot;`},
		{`it's`, `it&#39;s`},
		{`<>&"'`, `&lt;&gt;&amp;&quot;&#39;`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := escapeHTML(tt.in); got != tt.want {
				t.Errorf("escapeHTML(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
