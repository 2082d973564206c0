// Package smtp sends templated emails over SMTP using net/smtp.
//
// Client implements email.EmailSender and supports three connection modes
// selected by Config.TLSMode:
//
//   - starttls: plain connection upgraded with STARTTLS (default, port 587)
//   - tls: implicit TLS from the first byte (port 465)
//   - plain: no encryption, for local relays such as MailHog
//
// The From header and envelope sender use the template's sender when it has
// one, otherwise Config.SenderEmail. Reply-To is Config.SupportEmail and the
// template key is sent in an X-Tag header. Context deadlines bound the whole
// SMTP session.
//
//	var cfg smtp.Config
//	config.MustLoad(&cfg)
//	mailer := email.NewMailer(templates, smtp.MustNewClient(cfg))
//
// Errors wrap email.ErrInvalidConfig, email.ErrInvalidParams or
// email.ErrFailedToSendEmail.
package smtp
