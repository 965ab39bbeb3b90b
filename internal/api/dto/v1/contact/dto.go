package contact

// SubmitRequest represents a contact form submission from the site.
// Honeypot and FormStart are anti-bot signals filled in by the form
// markup, not by human visitors.
type SubmitRequest struct {
	Email     string `json:"email" binding:"required,contactemail"`
	Company   string `json:"company"`
	Phone     string `json:"phone" binding:"omitempty,phone"`
	Subject   string `json:"subject" binding:"required,max=160"`
	Message   string `json:"message" binding:"required,max=5000"`
	Token     string `json:"token"`
	Honeypot  string `json:"hp"`
	FormStart int64  `json:"formStart"`
}

// SubmitResponse is the wire contract the site's contact form expects
type SubmitResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}
