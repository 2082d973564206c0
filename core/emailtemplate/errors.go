package emailtemplate

import "errors"

var (
	// ErrNotFound is returned when no template matches the key in the
	// requested locale or the default locale.
	ErrNotFound = errors.New("email template not found")
	// ErrThemeNotFound is returned when a template has no usable theme and no
	// theme is flagged as default.
	ErrThemeNotFound = errors.New("email template theme not found")
	// ErrInvalidTemplate is returned when a template fails validation.
	ErrInvalidTemplate = errors.New("invalid email template")
	// ErrViewNotFound is returned when a template names a view that is not
	// registered with the service.
	ErrViewNotFound = errors.New("email template view not found")
)
