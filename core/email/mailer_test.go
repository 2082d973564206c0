package email_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/abdosaeedelhassan/email-templates/core/email"
	"github.com/abdosaeedelhassan/email-templates/core/emailtemplate"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

type user struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type welcomeMail struct {
	User     user   `json:"user"`
	TokenURL string `json:"tokenUrl"`
}

func (welcomeMail) TemplateKey() string { return "welcome" }

func (w welcomeMail) Recipient() string { return w.User.Email }

func newTemplateService(t *testing.T) *emailtemplate.Service {
	t.Helper()
	ctx := context.Background()

	repo := emailtemplate.NewMemoryRepository()
	require.NoError(t, repo.SaveTheme(ctx, &emailtemplate.Theme{Name: "default", IsDefault: true}))
	require.NoError(t, repo.Create(ctx, &emailtemplate.Template{
		Key:      "welcome",
		Language: "en_GB",
		Subject:  "Welcome ##user.name##",
		Content:  "<p>Confirm at ##tokenUrl##</p>",
	}))
	require.NoError(t, repo.Create(ctx, &emailtemplate.Template{
		Key:      "welcome",
		Language: "fr",
		From:     emailtemplate.Sender{Name: "Acme FR", Email: "bonjour@acme.test"},
		Subject:  "Bienvenue ##user.name##",
		Content:  "<p>Confirmez ##tokenUrl##</p>",
	}))

	return emailtemplate.NewService(emailtemplate.DefaultConfig(), repo, repo)
}

func TestMailer_Send(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	sender := &mockSender{}
	sender.On("SendEmail", ctx, mock.MatchedBy(func(p email.SendEmailParams) bool {
		return p.SendTo == "ada@example.com" &&
			p.Subject == "Welcome Ada" &&
			p.FromEmail == "noreply@acme.test" &&
			p.FromName == "Acme" &&
			p.Tag == "welcome" &&
			strings.Contains(p.BodyHTML, "<!doctype html>") &&
			strings.Contains(p.BodyHTML, "<p>Confirm at https://acme.test/confirm</p>")
	})).Return(nil).Once()

	mailer := email.NewMailer(newTemplateService(t), sender, email.WithDefaultFrom("Acme", "noreply@acme.test"))
	err := mailer.Send(ctx, "en_GB", welcomeMail{
		User:     user{Name: "Ada", Email: "ada@example.com"},
		TokenURL: "https://acme.test/confirm",
	})
	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestMailer_ComposeUsesTemplateSender(t *testing.T) {
	t.Parallel()

	mailer := email.NewMailer(newTemplateService(t), &mockSender{}, email.WithDefaultFrom("Acme", "noreply@acme.test"))
	params, err := mailer.Compose(context.Background(), "fr", welcomeMail{
		User: user{Name: "Ada", Email: "ada@example.com"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Bienvenue Ada", params.Subject)
	assert.Equal(t, "Acme FR", params.FromName)
	assert.Equal(t, "bonjour@acme.test", params.FromEmail)
	assert.Contains(t, params.BodyHTML, "<p>Confirmez </p>")
}

func TestMailer_UnknownTemplate(t *testing.T) {
	t.Parallel()

	sender := &mockSender{}
	mailer := email.NewMailer(emailtemplate.NewService(emailtemplate.DefaultConfig(),
		emailtemplate.NewMemoryRepository(), emailtemplate.NewMemoryRepository()), sender)

	err := mailer.Send(context.Background(), "en_GB", welcomeMail{User: user{Email: "ada@example.com"}})
	assert.ErrorIs(t, err, emailtemplate.ErrNotFound)
	sender.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
}

func TestMailer_SenderFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	sender := &mockSender{}
	sender.On("SendEmail", ctx, mock.Anything).Return(email.ErrFailedToSendEmail).Once()

	mailer := email.NewMailer(newTemplateService(t), sender)
	err := mailer.Send(ctx, "en_GB", welcomeMail{User: user{Name: "Ada", Email: "ada@example.com"}})
	assert.True(t, errors.Is(err, email.ErrFailedToSendEmail))
	sender.AssertExpectations(t)
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	r := email.NewRegistry()
	r.Register("welcome", func() email.Mailable { return welcomeMail{} })
	r.Register("another", func() email.Mailable { return welcomeMail{} })

	m, err := r.New("welcome")
	require.NoError(t, err)
	assert.Equal(t, "welcome", m.TemplateKey())

	_, err = r.New("missing")
	assert.ErrorIs(t, err, email.ErrMailableNotFound)

	assert.Equal(t, []string{"another", "welcome"}, r.Keys())
}

type invoiceMail struct {
	User  user               `json:"user"`
	Files []email.Attachment `json:"-"`
}

func (invoiceMail) TemplateKey() string { return "welcome" }

func (i invoiceMail) Recipient() string { return i.User.Email }

func (i invoiceMail) Attachments() []email.Attachment { return i.Files }

func TestMailer_ComposeAttachments(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "terms.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.7"), 0o600))

	mailer := email.NewMailer(newTemplateService(t), &mockSender{})
	params, err := mailer.Compose(context.Background(), "en_GB", invoiceMail{
		User: user{Name: "Ada", Email: "ada@example.com"},
		Files: []email.Attachment{
			{Filename: "invoice.txt", Content: []byte("total: 10")},
			{Path: path},
		},
	})
	require.NoError(t, err)
	require.Len(t, params.Attachments, 2)

	assert.Equal(t, "invoice.txt", params.Attachments[0].Filename)
	assert.NotEmpty(t, params.Attachments[0].ContentType)
	assert.Equal(t, "terms.pdf", params.Attachments[1].Filename)
	assert.Equal(t, "application/pdf", params.Attachments[1].ContentType)
	assert.Equal(t, []byte("%PDF-1.7"), params.Attachments[1].Content)
	require.NoError(t, params.Validate())
}

func TestMailer_MissingAttachment(t *testing.T) {
	t.Parallel()

	sender := &mockSender{}
	mailer := email.NewMailer(newTemplateService(t), sender)
	err := mailer.Send(context.Background(), "en_GB", invoiceMail{
		User:  user{Name: "Ada", Email: "ada@example.com"},
		Files: []email.Attachment{{Path: filepath.Join(t.TempDir(), "missing.pdf")}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `mailable "welcome"`)
	sender.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
}
