package mongostore

import (
	"time"

	"github.com/google/uuid"

	"github.com/abdosaeedelhassan/email-templates/core/emailtemplate"
)

// templateDoc is the stored form of a template. IDs are kept as canonical
// UUID strings so documents stay readable in the shell.
type templateDoc struct {
	ID        string     `bson:"_id"`
	Key       string     `bson:"key"`
	Language  string     `bson:"language"`
	Name      string     `bson:"name"`
	View      string     `bson:"view"`
	FromName  string     `bson:"from_name"`
	FromEmail string     `bson:"from_email"`
	Subject   string     `bson:"subject"`
	Title     string     `bson:"title"`
	Preheader string     `bson:"preheader"`
	Content   string     `bson:"content"`
	Logo      string     `bson:"logo,omitempty"`
	ThemeID   string     `bson:"theme_id,omitempty"`
	CreatedAt time.Time  `bson:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty"`
	// Deleted mirrors DeletedAt for the partial unique index, which cannot
	// match on a missing field.
	Deleted bool `bson:"deleted"`
}

func toTemplateDoc(t *emailtemplate.Template) templateDoc {
	d := templateDoc{
		ID:        t.ID.String(),
		Key:       t.Key,
		Language:  t.Language,
		Name:      t.Name,
		View:      t.View,
		FromName:  t.From.Name,
		FromEmail: t.From.Email,
		Subject:   t.Subject,
		Title:     t.Title,
		Preheader: t.Preheader,
		Content:   t.Content,
		Logo:      t.Logo,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		DeletedAt: t.DeletedAt,
		Deleted:   t.DeletedAt != nil,
	}
	if t.ThemeID != nil {
		d.ThemeID = t.ThemeID.String()
	}
	return d
}

func (d templateDoc) template() (*emailtemplate.Template, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	t := &emailtemplate.Template{
		ID:        id,
		Key:       d.Key,
		Language:  d.Language,
		Name:      d.Name,
		View:      d.View,
		From:      emailtemplate.Sender{Name: d.FromName, Email: d.FromEmail},
		Subject:   d.Subject,
		Title:     d.Title,
		Preheader: d.Preheader,
		Content:   d.Content,
		Logo:      d.Logo,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		DeletedAt: d.DeletedAt,
	}
	if d.ThemeID != "" {
		themeID, err := uuid.Parse(d.ThemeID)
		if err != nil {
			return nil, err
		}
		t.ThemeID = &themeID
	}
	return t, nil
}

type themeDoc struct {
	ID        string                `bson:"_id"`
	Name      string                `bson:"name"`
	Colours   emailtemplate.Colours `bson:"colours"`
	IsDefault bool                  `bson:"is_default"`
	CreatedAt time.Time             `bson:"created_at"`
	UpdatedAt time.Time             `bson:"updated_at"`
	DeletedAt *time.Time            `bson:"deleted_at,omitempty"`
	Deleted   bool                  `bson:"deleted"`
}

func toThemeDoc(th *emailtemplate.Theme) themeDoc {
	return themeDoc{
		ID:        th.ID.String(),
		Name:      th.Name,
		Colours:   th.Colours,
		IsDefault: th.IsDefault,
		CreatedAt: th.CreatedAt,
		UpdatedAt: th.UpdatedAt,
		DeletedAt: th.DeletedAt,
		Deleted:   th.DeletedAt != nil,
	}
}

func (d themeDoc) theme() (*emailtemplate.Theme, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	return &emailtemplate.Theme{
		ID:        id,
		Name:      d.Name,
		Colours:   d.Colours,
		IsDefault: d.IsDefault,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		DeletedAt: d.DeletedAt,
	}, nil
}
