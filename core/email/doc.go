// Package email composes templated emails and hands them to a delivery
// provider.
//
// EmailSender is the delivery contract. DevSender writes messages to disk for
// local development; SMTP and Postmark senders live in integration/email.
//
// A Mailable names the template it uses and its recipient. The Mailer looks
// the template up in the requested locale, resolves its tokens with the
// mailable as data context and renders the HTML layout:
//
//	type PasswordReset struct {
//		User     *User  `json:"user"`
//		TokenURL string `json:"tokenUrl"`
//	}
//
//	func (PasswordReset) TemplateKey() string  { return "password-reset" }
//	func (m PasswordReset) Recipient() string  { return m.User.Email }
//
//	mailer := email.NewMailer(svc, email.NewDevSender("./tmp/emails"),
//		email.WithDefaultFrom("Acme", "noreply@acme.test"))
//	err := mailer.Send(ctx, "en_GB", PasswordReset{User: u, TokenURL: link})
//
// Mailables that also implement Attacher send files along with the body.
// Attachments with a Path are read when the message is composed:
//
//	func (m Invoice) Attachments() []email.Attachment {
//		return []email.Attachment{{Path: m.PDFPath}}
//	}
//
// The message tag is the template key. Registry maps template keys to
// mailable factories so that admin tooling can build sample messages;
// unknown keys yield ErrMailableNotFound.
//
// Errors wrap ErrInvalidParams, ErrInvalidConfig or ErrFailedToSendEmail and
// can be checked with errors.Is.
package email
