package email

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// Attachment is a file sent alongside the HTML body. Content is used as is;
// when it is nil the file at Path is read by Load.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
	Path        string
}

// Attacher is implemented by mailables that carry attachments.
type Attacher interface {
	Attachments() []Attachment
}

// Load returns a copy of a with Content read from Path when needed, Filename
// defaulting to the base name of Path and ContentType guessed from the
// extension.
func (a Attachment) Load() (Attachment, error) {
	if a.Content == nil {
		if a.Path == "" {
			return Attachment{}, fmt.Errorf("attachment %q has neither content nor path", a.Filename)
		}
		content, err := os.ReadFile(a.Path)
		if err != nil {
			return Attachment{}, fmt.Errorf("read attachment: %w", err)
		}
		a.Content = content
	}
	if a.Filename == "" {
		a.Filename = filepath.Base(a.Path)
	}
	if a.ContentType == "" {
		a.ContentType = mime.TypeByExtension(filepath.Ext(a.Filename))
	}
	if a.ContentType == "" {
		a.ContentType = "application/octet-stream"
	}
	return a, nil
}

func (a Attachment) validate() error {
	name := strings.TrimSpace(a.Filename)
	switch {
	case name == "" || name == "." || name == string(filepath.Separator):
		return errors.New("attachment filename is required")
	case strings.ContainsAny(a.Filename, "\r\n\"/\\"):
		return fmt.Errorf("attachment filename %q contains invalid characters", a.Filename)
	case strings.ContainsAny(a.ContentType, "\r\n"):
		return fmt.Errorf("attachment %q content type must be single line", a.Filename)
	case a.Content == nil:
		return fmt.Errorf("attachment %q has no content", a.Filename)
	}
	return nil
}
