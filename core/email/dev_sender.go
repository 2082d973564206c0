package email

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DevSender writes emails to a directory instead of delivering them. Each
// message produces an .html body and a .json metadata file, plus one file
// per attachment prefixed with the same base name.
type DevSender struct {
	dir string
	now func() time.Time
}

// NewDevSender creates a sender that writes into dir, creating it on demand.
func NewDevSender(dir string) *DevSender {
	return &DevSender{dir: dir, now: time.Now}
}

type devMetadata struct {
	Timestamp   string   `json:"timestamp"`
	SendTo      string   `json:"send_to"`
	FromName    string   `json:"from_name,omitempty"`
	FromEmail   string   `json:"from_email,omitempty"`
	Subject     string   `json:"subject"`
	Tag         string   `json:"tag,omitempty"`
	Attachments []string `json:"attachments,omitempty"`
}

// SendEmail implements EmailSender.
func (d *DevSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToSendEmail, err)
	}
	if err := params.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("%w: failed to create directory: %v", ErrFailedToSendEmail, err)
	}

	now := d.now()
	name := params.Tag
	if name == "" {
		name = params.Subject
	}
	base := now.Format("2006_01_02_150405") + "_" + safeFilename(name)

	if err := os.WriteFile(filepath.Join(d.dir, base+".html"), []byte(params.BodyHTML), 0o644); err != nil {
		return fmt.Errorf("%w: failed to write body: %v", ErrFailedToSendEmail, err)
	}

	var attached []string
	for _, a := range params.Attachments {
		name := base + "_" + safeFilename(a.Filename)
		if err := os.WriteFile(filepath.Join(d.dir, name), a.Content, 0o644); err != nil {
			return fmt.Errorf("%w: failed to write attachment: %v", ErrFailedToSendEmail, err)
		}
		attached = append(attached, name)
	}

	meta, err := json.MarshalIndent(devMetadata{
		Timestamp:   now.Format(time.RFC3339),
		SendTo:      params.SendTo,
		FromName:    params.FromName,
		FromEmail:   params.FromEmail,
		Subject:     params.Subject,
		Tag:         params.Tag,
		Attachments: attached,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to encode metadata: %v", ErrFailedToSendEmail, err)
	}
	if err := os.WriteFile(filepath.Join(d.dir, base+".json"), meta, 0o644); err != nil {
		return fmt.Errorf("%w: failed to write metadata: %v", ErrFailedToSendEmail, err)
	}
	return nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// safeFilename lowercases s and keeps it to 100 filesystem-safe characters.
func safeFilename(s string) string {
	s = unsafeFilenameChars.ReplaceAllString(strings.ReplaceAll(s, " ", "_"), "")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		return "email"
	}
	return strings.ToLower(s)
}
