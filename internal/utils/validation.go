package utils

import (
	"regexp"
)

// EmailRegex matches a plausible submitter address: one @, no whitespace,
// a dot in the domain part. Deliverability is the mail provider's problem.
var EmailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// PhoneRegex accepts digits, spaces and common separators, 6-20 characters
var PhoneRegex = regexp.MustCompile(`^[- +()0-9]{6,20}$`)

// IsValidEmail checks if the provided string is an acceptable email address
func IsValidEmail(email string) bool {
	if len(email) > 255 {
		return false
	}
	return EmailRegex.MatchString(email)
}

// IsValidPhone checks if the provided string is an acceptable phone number
func IsValidPhone(phone string) bool {
	return PhoneRegex.MatchString(phone)
}
