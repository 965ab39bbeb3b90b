package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/360ace-tech/contact-gateway/internal/api/constants"
	"github.com/360ace-tech/contact-gateway/internal/api/dto/v1/contact"
	"github.com/360ace-tech/contact-gateway/internal/logging"
	"github.com/360ace-tech/contact-gateway/internal/service"
	"github.com/360ace-tech/contact-gateway/internal/utils"

	"github.com/gin-gonic/gin"
)

// Masked responses for suspected bots. Success-shaped on purpose: a
// distinguishable rejection would tell automated senders they were
// detected. Do not unify these with the real error paths.
var spamMaskedMessages = map[string]string{
	service.SpamReasonHoneypot: "Unable to send at this time.",
	service.SpamReasonTooFast:  "Please wait a moment and try again.",
}

// ContactHandler runs the contact pipeline: spam heuristics, captcha
// verification, then mail dispatch. Throttling and field validation run
// as route middleware before it.
type ContactHandler struct {
	spam    *service.SpamCheckService
	captcha *service.CaptchaService
	mailer  *service.MailerService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(spam *service.SpamCheckService, captcha *service.CaptchaService, mailer *service.MailerService) *ContactHandler {
	return &ContactHandler{
		spam:    spam,
		captcha: captcha,
		mailer:  mailer,
	}
}

// Submit processes one contact form submission
func (h *ContactHandler) Submit(c *gin.Context) {
	logger := logging.GetLogger()

	// Get contact data from context (set by validation middleware)
	data, exists := c.Get(constants.ContextKeyContact)
	if !exists {
		logger.Error("contact submission missing from context")
		c.JSON(http.StatusOK, contact.SubmitResponse{OK: false, Error: "Unexpected error."})
		return
	}
	sub, ok := data.(*contact.SubmitRequest)
	if !ok {
		logger.Error("contact submission has unexpected type %T", data)
		c.JSON(http.StatusOK, contact.SubmitResponse{OK: false, Error: "Unexpected error."})
		return
	}

	clientIP := utils.GetRealIP(c)

	// Lightweight anti-bot checks, masked as success on rejection
	if verdict := h.spam.Evaluate(sub, time.Now()); verdict.Suspect {
		logger.Warn("contact submission flagged (%s) from %s", verdict.Reason, clientIP)
		c.JSON(http.StatusOK, contact.SubmitResponse{
			OK:    false,
			Error: spamMaskedMessages[verdict.Reason],
		})
		return
	}

	// Captcha. An outage at the verifier degrades softly: the visitor
	// sees a retryable message, never a 5xx, and the detail stays in
	// the server log.
	verdict, err := h.captcha.Verify(c.Request.Context(), sub.Token)
	if err != nil {
		logger.Error("captcha verification unavailable: %v", err)
		c.JSON(http.StatusOK, contact.SubmitResponse{OK: false, Error: "Captcha verification error."})
		return
	}
	if !verdict.Valid {
		logger.Warn("captcha rejected submission from %s: %s", clientIP, verdict.Reason)
		c.JSON(http.StatusBadRequest, contact.SubmitResponse{OK: false, Error: "Captcha validation failed."})
		return
	}

	// Dispatch. Provider failures also degrade softly; only a missing
	// credential is surfaced as a service error so operators notice.
	if err := h.mailer.SendContactMessage(c.Request.Context(), sub); err != nil {
		switch {
		case errors.Is(err, service.ErrMailNotConfigured):
			logger.Error("contact mail dropped: %v", err)
			c.JSON(http.StatusServiceUnavailable, contact.SubmitResponse{OK: false, Error: "Email service not configured."})
		case errors.Is(err, service.ErrMailRejected):
			logger.Error("contact mail rejected by provider: %v", err)
			c.JSON(http.StatusOK, contact.SubmitResponse{OK: false, Error: "Email failed"})
		default:
			logger.Error("contact mail delivery failed: %v", err)
			c.JSON(http.StatusOK, contact.SubmitResponse{OK: false, Error: "Email service unreachable."})
		}
		return
	}

	logger.Info("contact submission delivered from %s", clientIP)
	c.JSON(http.StatusOK, contact.SubmitResponse{OK: true})
}
