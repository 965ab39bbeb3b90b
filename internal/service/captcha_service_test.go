package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/360ace-tech/contact-gateway/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifySkippedWhenDisabled(t *testing.T) {
	s := NewCaptchaService(&config.Config{})

	verdict, err := s.Verify(context.Background(), "some-token")
	require.NoError(t, err)
	assert.True(t, verdict.Valid)
	assert.False(t, s.Enabled())
}

func TestVerifySkippedWithoutToken(t *testing.T) {
	s := NewCaptchaService(&config.Config{RecaptchaSecret: "secret"})

	verdict, err := s.Verify(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, verdict.Valid, "missing token with captcha enabled must not block; the form may render without the widget")
}

func TestVerifyCheckboxSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "secret", r.PostForm.Get("secret"))
		assert.Equal(t, "tok", r.PostForm.Get("response"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	s := NewCaptchaService(&config.Config{
		RecaptchaSecret:    "secret",
		RecaptchaVerifyURL: srv.URL,
	})

	verdict, err := s.Verify(context.Background(), "tok")
	require.NoError(t, err)
	assert.True(t, verdict.Valid)
}

func TestVerifyCheckboxRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": false, "error-codes": ["invalid-input-response"]}`))
	}))
	defer srv.Close()

	s := NewCaptchaService(&config.Config{
		RecaptchaSecret:    "secret",
		RecaptchaVerifyURL: srv.URL,
	})

	verdict, err := s.Verify(context.Background(), "bad-tok")
	require.NoError(t, err)
	assert.False(t, verdict.Valid)
	assert.Contains(t, verdict.Reason, "invalid-input-response")
}

func TestVerifyCheckboxUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	s := NewCaptchaService(&config.Config{
		RecaptchaSecret:    "secret",
		RecaptchaVerifyURL: srv.URL,
	})

	_, err := s.Verify(context.Background(), "tok")
	assert.Error(t, err)
}

func TestVerifyCheckboxBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewCaptchaService(&config.Config{
		RecaptchaSecret:    "secret",
		RecaptchaVerifyURL: srv.URL,
	})

	_, err := s.Verify(context.Background(), "tok")
	assert.Error(t, err)
}

func newRiskScoreService(t *testing.T, responseBody string) *CaptchaService {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(responseBody))
	}))
	t.Cleanup(srv.Close)

	s := NewCaptchaService(&config.Config{
		RecaptchaProjectID: "proj",
		RecaptchaAPIKey:    "key",
		RecaptchaSiteKey:   "site",
		CaptchaMinScore:    0.5,
	})
	s.assessURL = srv.URL
	return s
}

func TestVerifyRiskScoreAboveMinimum(t *testing.T) {
	s := newRiskScoreService(t, `{"tokenProperties":{"valid":true},"riskAnalysis":{"score":0.9}}`)

	verdict, err := s.Verify(context.Background(), "tok")
	require.NoError(t, err)
	assert.True(t, verdict.Valid)
	assert.InDelta(t, 0.9, verdict.Score, 0.001)
}

func TestVerifyRiskScoreBelowMinimum(t *testing.T) {
	s := newRiskScoreService(t, `{"tokenProperties":{"valid":true},"riskAnalysis":{"score":0.2}}`)

	verdict, err := s.Verify(context.Background(), "tok")
	require.NoError(t, err)
	assert.False(t, verdict.Valid)
	assert.Contains(t, verdict.Reason, "below minimum")
}

func TestVerifyRiskScoreInvalidToken(t *testing.T) {
	s := newRiskScoreService(t, `{"tokenProperties":{"valid":false,"invalidReason":"EXPIRED"},"riskAnalysis":{"score":0.9}}`)

	verdict, err := s.Verify(context.Background(), "tok")
	require.NoError(t, err)
	assert.False(t, verdict.Valid)
	assert.Contains(t, verdict.Reason, "EXPIRED")
}

func TestCheckboxBackendWinsWhenBothConfigured(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.NotEmpty(t, r.PostForm.Get("secret"), "expected the checkbox backend to be used")
		w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	s := NewCaptchaService(&config.Config{
		RecaptchaSecret:    "secret",
		RecaptchaVerifyURL: srv.URL,
		RecaptchaProjectID: "proj",
		RecaptchaAPIKey:    "key",
	})

	verdict, err := s.Verify(context.Background(), "tok")
	require.NoError(t, err)
	assert.True(t, verdict.Valid)
}
