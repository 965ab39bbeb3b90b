package constants

// Context keys for validated requests
const (
	// ContextKeyContact holds the parsed contact submission set by the
	// validation middleware
	ContextKeyContact = "contact"

	// ContextKeyRequestID holds the request correlation ID
	ContextKeyRequestID = "requestID"
)

// HeaderRequestID is the correlation header echoed back to clients
const HeaderRequestID = "X-Request-ID"
