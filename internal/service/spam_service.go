package service

import (
	"strings"
	"time"

	"github.com/360ace-tech/contact-gateway/internal/api/dto/v1/contact"
	"github.com/360ace-tech/contact-gateway/internal/config"
)

// Spam rejection reasons
const (
	SpamReasonHoneypot = "honeypot"
	SpamReasonTooFast  = "submitted too fast"
)

// SpamVerdict is the outcome of the lightweight anti-bot checks
type SpamVerdict struct {
	Suspect bool
	Reason  string
}

// SpamCheckService evaluates bot signals that need no external calls
type SpamCheckService struct {
	minSubmit time.Duration
}

// NewSpamCheckService creates a new spam heuristics service
func NewSpamCheckService(cfg *config.Config) *SpamCheckService {
	return &SpamCheckService{
		minSubmit: cfg.MinSubmitDelay(),
	}
}

// Evaluate runs the honeypot and dwell-time checks on a submission.
// Callers must report suspect verdicts with a success-shaped response;
// a distinguishable rejection would tell bots they were detected.
func (s *SpamCheckService) Evaluate(sub *contact.SubmitRequest, now time.Time) SpamVerdict {
	// The honeypot field is invisible to humans; only automated fillers
	// populate it.
	if strings.TrimSpace(sub.Honeypot) != "" {
		return SpamVerdict{Suspect: true, Reason: SpamReasonHoneypot}
	}

	// Submissions faster than plausible human form-filling are presumed
	// automated. FormStart is the client-side render timestamp in ms.
	if s.minSubmit > 0 && sub.FormStart > 0 {
		elapsed := now.UnixMilli() - sub.FormStart
		if elapsed < s.minSubmit.Milliseconds() {
			return SpamVerdict{Suspect: true, Reason: SpamReasonTooFast}
		}
	}

	return SpamVerdict{}
}
