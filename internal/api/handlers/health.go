package handlers

import (
	"github.com/360ace-tech/contact-gateway/internal/service"
	"github.com/360ace-tech/contact-gateway/internal/utils"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	captcha *service.CaptchaService
	mailer  *service.MailerService
}

func NewHealthHandler(captcha *service.CaptchaService, mailer *service.MailerService) *HealthHandler {
	return &HealthHandler{captcha: captcha, mailer: mailer}
}

// Check reports liveness plus which pipeline subsystems are configured,
// so a missing mail credential shows up here before visitors hit it
func (h *HealthHandler) Check(c *gin.Context) {
	utils.HandleSuccess(c, gin.H{
		"status":          "ok",
		"mail_configured": h.mailer.Configured(),
		"captcha_enabled": h.captcha.Enabled(),
	})
}
