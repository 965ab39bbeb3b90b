package service

import "errors"

// Sentinel errors for service layer
var (
	// ErrMailNotConfigured means no delivery credential is present;
	// operators see a 503, distinct from user errors.
	ErrMailNotConfigured = errors.New("email delivery not configured")

	// ErrMailRejected means the provider answered with a non-2xx status
	ErrMailRejected = errors.New("email provider rejected the message")

	// ErrMailUnreachable means the provider could not be reached at all
	ErrMailUnreachable = errors.New("email provider unreachable")
)
