package smtp

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/abdosaeedelhassan/email-templates/core/email"
)

// Client delivers email over SMTP in starttls, tls or plain mode.
// It is safe for concurrent use.
type Client struct {
	config Config
	auth   smtp.Auth
	now    func() time.Time
}

// New creates an SMTP sender.
func New(cfg Config) (*Client, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("%w: Host is required", email.ErrInvalidConfig)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("%w: Port must be between 1 and 65535", email.ErrInvalidConfig)
	}
	if cfg.Username == "" {
		return nil, fmt.Errorf("%w: Username is required", email.ErrInvalidConfig)
	}
	if cfg.Password == "" {
		return nil, fmt.Errorf("%w: Password is required", email.ErrInvalidConfig)
	}
	switch cfg.TLSMode {
	case "starttls", "tls", "plain":
	default:
		return nil, fmt.Errorf("%w: TLSMode must be starttls, tls, or plain", email.ErrInvalidConfig)
	}
	if !email.IsValidEmail(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", email.ErrInvalidConfig)
	}
	if !email.IsValidEmail(cfg.SupportEmail) {
		return nil, fmt.Errorf("%w: SupportEmail must be a valid email address", email.ErrInvalidConfig)
	}

	return &Client{
		config: cfg,
		auth:   smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host),
		now:    time.Now,
	}, nil
}

// MustNewClient is New that panics on invalid configuration.
func MustNewClient(cfg Config) *Client {
	client, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return client
}

// SendEmail implements email.EmailSender. The template's sender address is
// used when present, otherwise the configured SenderEmail.
func (c *Client) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(email.ErrFailedToSendEmail, err)
	}
	if err := params.Validate(); err != nil {
		return err
	}

	from := c.sender(params)
	msg, err := c.buildMessage(from, params)
	if err != nil {
		return errors.Join(email.ErrFailedToSendEmail, err)
	}

	conn, err := c.dial(ctx)
	if err != nil {
		return errors.Join(email.ErrFailedToSendEmail, err)
	}
	defer func() { _ = conn.Close() }()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, c.config.Host)
	if err != nil {
		return errors.Join(email.ErrFailedToSendEmail, fmt.Errorf("failed to create SMTP client: %w", err))
	}
	defer func() { _ = client.Close() }()

	if c.config.TLSMode == "starttls" {
		if err := client.StartTLS(&tls.Config{ServerName: c.config.Host}); err != nil {
			return errors.Join(email.ErrFailedToSendEmail, fmt.Errorf("failed to start TLS: %w", err))
		}
	}

	if err := c.transmit(client, from.Address, params.SendTo, msg); err != nil {
		return errors.Join(email.ErrFailedToSendEmail, err)
	}
	return nil
}

func (c *Client) dial(ctx context.Context) (net.Conn, error) {
	addr := net.JoinHostPort(c.config.Host, strconv.Itoa(c.config.Port))

	if c.config.TLSMode == "tls" {
		d := &tls.Dialer{Config: &tls.Config{ServerName: c.config.Host}}
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to SMTP server with TLS: %w", err)
		}
		return conn, nil
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	return conn, nil
}

func (c *Client) sender(params email.SendEmailParams) mail.Address {
	if params.FromEmail != "" {
		return mail.Address{Name: params.FromName, Address: params.FromEmail}
	}
	return mail.Address{Name: params.FromName, Address: c.config.SenderEmail}
}

// buildMessage renders the MIME message with headers in a stable order.
// Messages with attachments are sent as multipart/mixed with the HTML body
// as the first part.
func (c *Client) buildMessage(from mail.Address, params email.SendEmailParams) ([]byte, error) {
	now := c.now()
	to := mail.Address{Address: params.SendTo}
	replyTo := mail.Address{Address: c.config.SupportEmail}

	headers := [][2]string{
		{"From", from.String()},
		{"To", to.String()},
		{"Reply-To", replyTo.String()},
		{"Subject", mimeHeader(params.Subject)},
		{"Date", now.Format(time.RFC1123Z)},
		{"Message-ID", fmt.Sprintf("<%d.%s@%s>", now.UnixNano(), strings.ReplaceAll(params.Tag, " ", "_"), c.config.Host)},
		{"MIME-Version", "1.0"},
	}
	if params.Tag != "" {
		headers = append(headers, [2]string{"X-Tag", params.Tag})
	}

	var b bytes.Buffer
	writeHeaders := func(contentType string) {
		for _, h := range append(headers, [2]string{"Content-Type", contentType}) {
			b.WriteString(h[0])
			b.WriteString(": ")
			b.WriteString(h[1])
			b.WriteString("\r\n")
		}
		b.WriteString("\r\n")
	}

	if len(params.Attachments) == 0 {
		writeHeaders(`text/html; charset="UTF-8"`)
		b.WriteString(params.BodyHTML)
		return b.Bytes(), nil
	}

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	htmlPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {`text/html; charset="UTF-8"`},
		"Content-Transfer-Encoding": {"quoted-printable"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create body part: %w", err)
	}
	qp := quotedprintable.NewWriter(htmlPart)
	if _, err := qp.Write([]byte(params.BodyHTML)); err != nil {
		return nil, fmt.Errorf("failed to encode body: %w", err)
	}
	if err := qp.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode body: %w", err)
	}

	for _, a := range params.Attachments {
		part, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {mime.FormatMediaType(a.ContentType, map[string]string{"name": a.Filename})},
			"Content-Disposition":       {mime.FormatMediaType("attachment", map[string]string{"filename": a.Filename})},
			"Content-Transfer-Encoding": {"base64"},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create attachment part: %w", err)
		}
		if err := writeBase64Lines(part, a.Content); err != nil {
			return nil, fmt.Errorf("failed to encode attachment %q: %w", a.Filename, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}

	writeHeaders(mime.FormatMediaType("multipart/mixed", map[string]string{"boundary": mw.Boundary()}))
	b.Write(body.Bytes())
	return b.Bytes(), nil
}

// base64LineLength keeps encoded lines within the RFC 2045 limit.
const base64LineLength = 76

func writeBase64Lines(w io.Writer, content []byte) error {
	encoded := base64.StdEncoding.EncodeToString(content)
	for len(encoded) > 0 {
		n := min(base64LineLength, len(encoded))
		if _, err := io.WriteString(w, encoded[:n]+"\r\n"); err != nil {
			return err
		}
		encoded = encoded[n:]
	}
	return nil
}

// mimeHeader Q-encodes non-ASCII header text.
func mimeHeader(s string) string {
	for _, r := range s {
		if r > 127 {
			return mime.QEncoding.Encode("UTF-8", s)
		}
	}
	return s
}

func (c *Client) transmit(client *smtp.Client, from, to string, msg []byte) error {
	if err := client.Auth(c.auth); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	if err := client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	// Some servers drop the connection right after DATA; the message is
	// already accepted at this point.
	_ = client.Quit()
	return nil
}
