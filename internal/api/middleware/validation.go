package middleware

import (
	"net/http"

	"github.com/360ace-tech/contact-gateway/internal/api/constants"
	"github.com/360ace-tech/contact-gateway/internal/api/dto/v1/contact"
	"github.com/360ace-tech/contact-gateway/internal/api/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// maxContactBodyBytes caps the contact request body. The form itself
// stays well under this; anything larger is not a browser submission.
const maxContactBodyBytes = 64 << 10

// ValidationMiddleware handles request validation
type ValidationMiddleware struct{}

// NewValidationMiddleware creates a new validation middleware and hooks
// the custom validators into Gin's binding engine
func NewValidationMiddleware() *ValidationMiddleware {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}
	return &ValidationMiddleware{}
}

// ValidateContactRequest binds and validates a contact submission,
// stashing the parsed request in the context for the handler. Failures
// answer in the form's own wire format, not the internal envelope.
func (m *ValidationMiddleware) ValidateContactRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxContactBodyBytes)

		var req contact.SubmitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, contact.SubmitResponse{
				OK:    false,
				Error: validation.ContactErrorMessage(err),
			})
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyContact, &req)
		c.Next()
	}
}
