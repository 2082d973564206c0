package postmark

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/mail"

	"github.com/mrz1836/postmark"

	"github.com/abdosaeedelhassan/email-templates/core/email"
)

// API is the part of the Postmark client used for sending.
type API interface {
	SendEmail(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error)
}

// Client delivers email through Postmark's transactional API.
type Client struct {
	api    API
	config Config
}

// Option configures a Client.
type Option func(*Client)

// WithAPI replaces the Postmark API client, mainly for tests.
func WithAPI(api API) Option {
	return func(c *Client) {
		if api != nil {
			c.api = api
		}
	}
}

// New creates a Postmark sender.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.PostmarkServerToken == "" {
		return nil, fmt.Errorf("%w: PostmarkServerToken is required", email.ErrInvalidConfig)
	}
	if cfg.PostmarkAccountToken == "" {
		return nil, fmt.Errorf("%w: PostmarkAccountToken is required", email.ErrInvalidConfig)
	}
	if !email.IsValidEmail(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", email.ErrInvalidConfig)
	}
	if !email.IsValidEmail(cfg.SupportEmail) {
		return nil, fmt.Errorf("%w: SupportEmail must be a valid email address", email.ErrInvalidConfig)
	}

	c := &Client{
		api:    postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken),
		config: cfg,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// MustNewClient is New that panics on invalid configuration.
func MustNewClient(cfg Config, opts ...Option) *Client {
	client, err := New(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return client
}

// SendEmail implements email.EmailSender. Opens and HTML link clicks are
// tracked and replies go to SupportEmail. The template key is sent as the
// Postmark tag.
func (c *Client) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	from := mail.Address{Name: params.FromName, Address: params.FromEmail}
	if from.Address == "" {
		from.Address = c.config.SenderEmail
	}

	resp, err := c.api.SendEmail(ctx, postmark.Email{
		From:        from.String(),
		ReplyTo:     c.config.SupportEmail,
		To:          params.SendTo,
		Subject:     params.Subject,
		Tag:         params.Tag,
		HTMLBody:    params.BodyHTML,
		TrackOpens:  true,
		TrackLinks:  "HtmlOnly",
		Attachments: attachments(params.Attachments),
	})
	if err != nil {
		return errors.Join(email.ErrFailedToSendEmail, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			email.ErrFailedToSendEmail,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}

// attachments converts to Postmark's base64 payload form.
func attachments(in []email.Attachment) []postmark.Attachment {
	if len(in) == 0 {
		return nil
	}
	out := make([]postmark.Attachment, 0, len(in))
	for _, a := range in {
		out = append(out, postmark.Attachment{
			Name:        a.Filename,
			Content:     base64.StdEncoding.EncodeToString(a.Content),
			ContentType: a.ContentType,
		})
	}
	return out
}
