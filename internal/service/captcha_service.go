package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/360ace-tech/contact-gateway/internal/config"
)

const (
	siteVerifyURL        = "https://www.google.com/recaptcha/api/siteverify"
	assessmentURLFormat  = "https://recaptchaenterprise.googleapis.com/v1/projects/%s/assessments?key=%s"
	captchaClientTimeout = 5 * time.Second
)

// CaptchaVerdict is the outcome of verifying a challenge token
type CaptchaVerdict struct {
	Valid  bool
	Score  float64
	Reason string
}

// CaptchaService validates challenge tokens against one of two backends:
// checkbox-style siteverify (shared secret) or risk-score-style
// Enterprise assessments (project + API key). With neither configured,
// verification is skipped and submissions pass through.
type CaptchaService struct {
	secret string

	projectID string
	apiKey    string
	siteKey   string
	minScore  float64

	verifyURL string
	assessURL string
	client    *http.Client
}

// NewCaptchaService creates a new captcha verification service
func NewCaptchaService(cfg *config.Config) *CaptchaService {
	s := &CaptchaService{
		secret:    cfg.RecaptchaSecret,
		projectID: cfg.RecaptchaProjectID,
		apiKey:    cfg.RecaptchaAPIKey,
		siteKey:   cfg.RecaptchaSiteKey,
		minScore:  cfg.CaptchaMinScore,
		verifyURL: cfg.RecaptchaVerifyURL,
		client: &http.Client{
			Timeout: captchaClientTimeout,
		},
	}
	if s.verifyURL == "" {
		s.verifyURL = siteVerifyURL
	}
	if s.projectID != "" && s.apiKey != "" {
		s.assessURL = fmt.Sprintf(assessmentURLFormat, url.PathEscape(s.projectID), url.QueryEscape(s.apiKey))
	}
	return s
}

// Enabled reports whether any verification backend is configured
func (s *CaptchaService) Enabled() bool {
	return s.secret != "" || s.assessURL != ""
}

// Verify checks a challenge token. A nil error with Valid=false means
// the token was rejected; a non-nil error means verification could not
// complete and the caller decides how to degrade.
func (s *CaptchaService) Verify(ctx context.Context, token string) (*CaptchaVerdict, error) {
	// Verification only runs when a backend is configured and the client
	// sent a token. An intentionally disabled captcha must not block
	// submissions.
	if !s.Enabled() || token == "" {
		return &CaptchaVerdict{Valid: true, Reason: "verification skipped"}, nil
	}

	if s.secret != "" {
		return s.verifyCheckbox(ctx, token)
	}
	return s.verifyRiskScore(ctx, token)
}

// siteVerifyResponse is the checkbox backend's reply
type siteVerifyResponse struct {
	Success    bool     `json:"success"`
	Hostname   string   `json:"hostname"`
	ErrorCodes []string `json:"error-codes,omitempty"`
}

func (s *CaptchaService) verifyCheckbox(ctx context.Context, token string) (*CaptchaVerdict, error) {
	form := url.Values{}
	form.Set("secret", s.secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build siteverify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("siteverify call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("siteverify returned status %d", resp.StatusCode)
	}

	var result siteVerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse siteverify response: %w", err)
	}

	if !result.Success {
		return &CaptchaVerdict{
			Valid:  false,
			Reason: fmt.Sprintf("token rejected: %v", result.ErrorCodes),
		}, nil
	}

	return &CaptchaVerdict{Valid: true}, nil
}

// assessmentRequest is the risk-score backend's request body
type assessmentRequest struct {
	Event struct {
		Token   string `json:"token"`
		SiteKey string `json:"siteKey"`
	} `json:"event"`
}

// assessmentResponse is the risk-score backend's reply
type assessmentResponse struct {
	TokenProperties struct {
		Valid         bool   `json:"valid"`
		InvalidReason string `json:"invalidReason"`
	} `json:"tokenProperties"`
	RiskAnalysis struct {
		Score   float64  `json:"score"`
		Reasons []string `json:"reasons"`
	} `json:"riskAnalysis"`
}

func (s *CaptchaService) verifyRiskScore(ctx context.Context, token string) (*CaptchaVerdict, error) {
	var body assessmentRequest
	body.Event.Token = token
	body.Event.SiteKey = s.siteKey

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal assessment request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.assessURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build assessment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("assessment call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("assessment returned status %d", resp.StatusCode)
	}

	var result assessmentResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse assessment response: %w", err)
	}

	if !result.TokenProperties.Valid {
		return &CaptchaVerdict{
			Valid:  false,
			Reason: fmt.Sprintf("token invalid: %s", result.TokenProperties.InvalidReason),
		}, nil
	}

	if result.RiskAnalysis.Score < s.minScore {
		return &CaptchaVerdict{
			Valid:  false,
			Score:  result.RiskAnalysis.Score,
			Reason: fmt.Sprintf("score %.2f below minimum %.2f", result.RiskAnalysis.Score, s.minScore),
		}, nil
	}

	return &CaptchaVerdict{Valid: true, Score: result.RiskAnalysis.Score}, nil
}
