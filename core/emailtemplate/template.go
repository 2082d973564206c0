package emailtemplate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abdosaeedelhassan/email-templates/core/email/templates"
)

// Sender is the name and address a template is sent from.
type Sender struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Template is a stored email template for one key and language.
type Template struct {
	ID        uuid.UUID  `json:"id"`
	Key       string     `json:"key"`
	Language  string     `json:"language"`
	Name      string     `json:"name"`
	View      string     `json:"view"`
	From      Sender     `json:"from"`
	Subject   string     `json:"subject"`
	Title     string     `json:"title"`
	Preheader string     `json:"preheader"`
	Content   string     `json:"content"`
	Logo      string     `json:"logo,omitempty"`
	ThemeID   *uuid.UUID `json:"theme_id,omitempty"`
	Theme     *Theme     `json:"theme,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Colours is a theme palette. JSON names match the stored column layout and
// are the names used by ##emailTemplate.theme.colours.*## tokens.
type Colours struct {
	HeaderBackground  string `json:"header_bg_color"`
	BodyBackground    string `json:"body_bg_color"`
	ContentBackground string `json:"content_bg_color"`
	FooterBackground  string `json:"footer_bg_color"`
	CalloutBackground string `json:"callout_bg_color"`
	ButtonBackground  string `json:"button_bg_color"`
	BodyText          string `json:"body_color"`
	CalloutText       string `json:"callout_color"`
	ButtonText        string `json:"button_color"`
	AnchorText        string `json:"anchor_color"`
}

// Palette converts the colours into the layout palette.
func (c Colours) Palette() templates.Palette {
	return templates.Palette{
		HeaderBackground:  c.HeaderBackground,
		BodyBackground:    c.BodyBackground,
		ContentBackground: c.ContentBackground,
		FooterBackground:  c.FooterBackground,
		CalloutBackground: c.CalloutBackground,
		ButtonBackground:  c.ButtonBackground,
		BodyText:          c.BodyText,
		CalloutText:       c.CalloutText,
		ButtonText:        c.ButtonText,
		AnchorText:        c.AnchorText,
	}
}

// Theme is a named colour palette. At most one theme should be the default.
type Theme struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Colours   Colours    `json:"colours"`
	IsDefault bool       `json:"is_default"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Clone returns a deep copy of the theme.
func (th *Theme) Clone() *Theme {
	if th == nil {
		return nil
	}
	c := *th
	if th.DeletedAt != nil {
		d := *th.DeletedAt
		c.DeletedAt = &d
	}
	return &c
}

// Clone returns a deep copy of the template, so cached values are never
// shared with callers.
func (t *Template) Clone() *Template {
	if t == nil {
		return nil
	}
	c := *t
	if t.ThemeID != nil {
		id := *t.ThemeID
		c.ThemeID = &id
	}
	if t.DeletedAt != nil {
		d := *t.DeletedAt
		c.DeletedAt = &d
	}
	c.Theme = t.Theme.Clone()
	return &c
}

// IsDeleted reports whether the template was soft deleted.
func (t *Template) IsDeleted() bool {
	return t.DeletedAt != nil
}

// String returns the admin label, falling back to the key.
func (t *Template) String() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Key
}

var (
	keyRegex   = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// Validate checks the fields required to store a template and normalizes its
// language tag.
func (t *Template) Validate() error {
	var errs []error

	if t.Key == "" {
		errs = append(errs, errors.New("key is required"))
	} else if !keyRegex.MatchString(t.Key) {
		errs = append(errs, fmt.Errorf("key %q may only contain letters, digits, '.', '_' and '-'", t.Key))
	}

	t.Language = NormalizeLocale(t.Language)
	if t.Language == "" {
		errs = append(errs, errors.New("language is required"))
	}

	if t.From.Email != "" && !emailRegex.MatchString(t.From.Email) {
		errs = append(errs, fmt.Errorf("from email %q is not a valid address", t.From.Email))
	}

	if len(errs) > 0 {
		return errors.Join(ErrInvalidTemplate, errors.Join(errs...))
	}
	return nil
}

// CacheKeyPrefix returns the prefix shared by every cached locale of key.
func CacheKeyPrefix(key string) string {
	return "emailtemplate:" + key + ":"
}

// CacheKey builds the cache key for a lookup of key in the given locale order.
func CacheKey(key string, locales ...string) string {
	return CacheKeyPrefix(key) + strings.Join(locales, "|")
}
