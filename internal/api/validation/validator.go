package validation

import (
	"github.com/360ace-tech/contact-gateway/internal/utils"

	"github.com/go-playground/validator/v10"
)

// Messages returned for contact form validation failures. These match
// what the site's form JavaScript displays, so wording is part of the
// wire contract.
const (
	MsgMissingFields = "Missing required fields."
	MsgInvalidEmail  = "Invalid email."
	MsgContentLong   = "Content too long."
	MsgInvalidPhone  = "Invalid phone number."
	MsgInvalidBody   = "Invalid request body."
)

// RegisterValidators registers custom validators used by binding tags
func RegisterValidators(v *validator.Validate) {
	v.RegisterValidation("contactemail", validateContactEmail)
	v.RegisterValidation("phone", validatePhone)
}

func validateContactEmail(fl validator.FieldLevel) bool {
	return utils.IsValidEmail(fl.Field().String())
}

func validatePhone(fl validator.FieldLevel) bool {
	return utils.IsValidPhone(fl.Field().String())
}

// ContactErrorMessage maps a binding error on the contact submission to
// the single user-facing message the form expects. Missing fields win
// over format errors, format errors over length, matching the order the
// checks are presented to visitors.
func ContactErrorMessage(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return MsgInvalidBody
	}

	byTag := make(map[string]bool, len(validationErrors))
	for _, e := range validationErrors {
		byTag[e.Tag()] = true
	}

	switch {
	case byTag["required"]:
		return MsgMissingFields
	case byTag["contactemail"]:
		return MsgInvalidEmail
	case byTag["max"]:
		return MsgContentLong
	case byTag["phone"]:
		return MsgInvalidPhone
	default:
		return MsgInvalidBody
	}
}
