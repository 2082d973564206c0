package email

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// EmailSender delivers rendered emails. Implementations live in
// integration/email and in DevSender.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams is one outgoing message. FromName and FromEmail are
// optional; senders use their configured address when FromEmail is empty.
// Attachments must already be loaded.
type SendEmailParams struct {
	SendTo      string
	FromName    string
	FromEmail   string
	Subject     string
	BodyHTML    string
	Tag         string
	Attachments []Attachment
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// IsValidEmail reports whether s looks like a deliverable address.
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// Validate checks that params can be sent. Header fields must be single line.
func (p SendEmailParams) Validate() error {
	var errs []error

	switch {
	case p.SendTo == "":
		errs = append(errs, errors.New("recipient is required"))
	case !IsValidEmail(p.SendTo):
		errs = append(errs, fmt.Errorf("recipient %q is not a valid email address", p.SendTo))
	}
	if p.FromEmail != "" && !IsValidEmail(p.FromEmail) {
		errs = append(errs, fmt.Errorf("sender %q is not a valid email address", p.FromEmail))
	}
	if strings.TrimSpace(p.Subject) == "" {
		errs = append(errs, errors.New("subject is required"))
	}
	if strings.TrimSpace(p.BodyHTML) == "" {
		errs = append(errs, errors.New("body is required"))
	}
	for _, h := range []struct{ name, value string }{
		{"subject", p.Subject},
		{"sender name", p.FromName},
		{"tag", p.Tag},
	} {
		if strings.ContainsAny(h.value, "\r\n") {
			errs = append(errs, fmt.Errorf("%s must not contain line breaks", h.name))
		}
	}

	for _, a := range p.Attachments {
		if err := a.validate(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errors.Join(ErrInvalidParams, errors.Join(errs...))
	}
	return nil
}
