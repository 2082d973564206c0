package email

import "errors"

var (
	ErrFailedToSendEmail = errors.New("failed to send email")
	ErrInvalidConfig     = errors.New("invalid email configuration")
	ErrInvalidParams     = errors.New("invalid email parameters")
	// ErrMailableNotFound is returned by Registry for unregistered template keys.
	ErrMailableNotFound = errors.New("mailable not found")
)
