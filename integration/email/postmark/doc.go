// Package postmark sends templated emails through Postmark's transactional
// API (github.com/mrz1836/postmark).
//
// Client implements email.EmailSender. The sender address comes from the
// template when it defines one and from Config.SenderEmail otherwise. Replies
// go to Config.SupportEmail, the template key becomes the Postmark tag, and
// opens and HTML link clicks are tracked.
//
//	var cfg postmark.Config
//	config.MustLoad(&cfg)
//
//	sender := postmark.MustNewClient(cfg)
//	mailer := email.NewMailer(templates, sender)
//
// Configuration is read from POSTMARK_SERVER_TOKEN, POSTMARK_ACCOUNT_TOKEN,
// SENDER_EMAIL and SUPPORT_EMAIL. New returns errors wrapping
// email.ErrInvalidConfig; delivery failures wrap email.ErrFailedToSendEmail,
// including Postmark API error codes.
package postmark
