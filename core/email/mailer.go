package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abdosaeedelhassan/email-templates/core/emailtemplate"
	"github.com/abdosaeedelhassan/email-templates/core/logger"
)

// Mailable is a message bound to a stored template. The value itself is the
// data context for token resolution, so its fields are available as
// ##field## paths. Mailables that also implement Attacher send files.
type Mailable interface {
	TemplateKey() string
	Recipient() string
}

// TemplateRenderer finds and renders stored templates.
// *emailtemplate.Service satisfies it.
type TemplateRenderer interface {
	FindByKey(ctx context.Context, key, locale string) (*emailtemplate.Template, error)
	RenderData(ctx context.Context, t *emailtemplate.Template, data any) (emailtemplate.RenderData, error)
	RenderHTML(ctx context.Context, rd emailtemplate.RenderData) (string, error)
}

// Mailer renders mailables through their templates and hands them to a sender.
type Mailer struct {
	templates TemplateRenderer
	sender    EmailSender
	from      emailtemplate.Sender
	logger    *slog.Logger
}

// MailerOption configures a Mailer.
type MailerOption func(*Mailer)

// WithDefaultFrom sets the sender used when a template has no From address.
func WithDefaultFrom(name, address string) MailerOption {
	return func(m *Mailer) {
		m.from = emailtemplate.Sender{Name: name, Email: address}
	}
}

// WithMailerLogger sets the logger.
func WithMailerLogger(l *slog.Logger) MailerOption {
	return func(m *Mailer) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewMailer creates a Mailer.
func NewMailer(templates TemplateRenderer, sender EmailSender, opts ...MailerOption) *Mailer {
	m := &Mailer{
		templates: templates,
		sender:    sender,
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Compose renders msg in locale without sending it.
func (m *Mailer) Compose(ctx context.Context, locale string, msg Mailable) (SendEmailParams, error) {
	key := msg.TemplateKey()

	tpl, err := m.templates.FindByKey(ctx, key, locale)
	if err != nil {
		return SendEmailParams{}, fmt.Errorf("mailable %q: %w", key, err)
	}

	rd, err := m.templates.RenderData(ctx, tpl, msg)
	if err != nil {
		return SendEmailParams{}, fmt.Errorf("mailable %q: %w", key, err)
	}

	html, err := m.templates.RenderHTML(ctx, rd)
	if err != nil {
		return SendEmailParams{}, fmt.Errorf("mailable %q: %w", key, err)
	}

	from := tpl.From
	if from.Email == "" {
		from = m.from
	}

	attachments, err := loadAttachments(msg)
	if err != nil {
		return SendEmailParams{}, fmt.Errorf("mailable %q: %w", key, err)
	}

	return SendEmailParams{
		SendTo:      msg.Recipient(),
		FromName:    from.Name,
		FromEmail:   from.Email,
		Subject:     rd.Subject,
		BodyHTML:    html,
		Tag:         key,
		Attachments: attachments,
	}, nil
}

func loadAttachments(msg Mailable) ([]Attachment, error) {
	a, ok := msg.(Attacher)
	if !ok {
		return nil, nil
	}
	var out []Attachment
	for _, att := range a.Attachments() {
		loaded, err := att.Load()
		if err != nil {
			return nil, err
		}
		out = append(out, loaded)
	}
	return out, nil
}

// Send renders msg in locale and delivers it.
func (m *Mailer) Send(ctx context.Context, locale string, msg Mailable) error {
	start := time.Now()

	params, err := m.Compose(ctx, locale, msg)
	if err != nil {
		return err
	}

	if err := m.sender.SendEmail(ctx, params); err != nil {
		m.logger.ErrorContext(ctx, "email delivery failed",
			logger.Component("mailer"),
			logger.TemplateKey(params.Tag),
			logger.Recipient(params.SendTo),
			logger.Error(err))
		return err
	}

	m.logger.InfoContext(ctx, "email sent",
		logger.Component("mailer"),
		logger.TemplateKey(params.Tag),
		logger.Locale(locale),
		logger.Recipient(params.SendTo),
		logger.Elapsed(start))
	return nil
}
