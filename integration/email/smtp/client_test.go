package smtp_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"net"
	"net/mail"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdosaeedelhassan/email-templates/core/email"
	"github.com/abdosaeedelhassan/email-templates/integration/email/smtp"
)

func validConfig() smtp.Config {
	return smtp.Config{
		Host:         "smtp.example.com",
		Port:         587,
		Username:     "user@example.com",
		Password:     "password",
		TLSMode:      "starttls",
		SenderEmail:  "sender@example.com",
		SupportEmail: "support@example.com",
	}
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(c *smtp.Config)
		errMsg string
	}{
		{name: "valid", modify: func(*smtp.Config) {}},
		{name: "tls mode", modify: func(c *smtp.Config) { c.TLSMode = "tls" }},
		{name: "plain mode", modify: func(c *smtp.Config) { c.TLSMode = "plain" }},
		{name: "empty host", modify: func(c *smtp.Config) { c.Host = "" }, errMsg: "Host is required"},
		{name: "port zero", modify: func(c *smtp.Config) { c.Port = 0 }, errMsg: "Port must be between 1 and 65535"},
		{name: "port too high", modify: func(c *smtp.Config) { c.Port = 70000 }, errMsg: "Port must be between 1 and 65535"},
		{name: "empty username", modify: func(c *smtp.Config) { c.Username = "" }, errMsg: "Username is required"},
		{name: "empty password", modify: func(c *smtp.Config) { c.Password = "" }, errMsg: "Password is required"},
		{name: "unknown tls mode", modify: func(c *smtp.Config) { c.TLSMode = "ssl" }, errMsg: "TLSMode must be starttls, tls, or plain"},
		{name: "invalid sender", modify: func(c *smtp.Config) { c.SenderEmail = "not-an-email" }, errMsg: "SenderEmail must be a valid email address"},
		{name: "invalid support", modify: func(c *smtp.Config) { c.SupportEmail = "invalid@" }, errMsg: "SupportEmail must be a valid email address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.modify(&cfg)

			client, err := smtp.New(cfg)
			if tt.errMsg == "" {
				require.NoError(t, err)
				assert.NotNil(t, client)
				return
			}
			assert.Nil(t, client)
			assert.ErrorIs(t, err, email.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestMustNewClient(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() { smtp.MustNewClient(validConfig()) })
	assert.Panics(t, func() { smtp.MustNewClient(smtp.Config{}) })
}

func TestClient_SendEmail_InvalidParams(t *testing.T) {
	t.Parallel()

	client := smtp.MustNewClient(validConfig())
	err := client.SendEmail(context.Background(), email.SendEmailParams{SendTo: "nope"})
	assert.ErrorIs(t, err, email.ErrInvalidParams)
}

func TestClient_SendEmail_ConnectionError(t *testing.T) {
	t.Parallel()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	cfg := validConfig()
	cfg.Host, cfg.Port, cfg.TLSMode = "127.0.0.1", port, "plain"
	client := smtp.MustNewClient(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err = client.SendEmail(ctx, email.SendEmailParams{
		SendTo:   "user@example.com",
		Subject:  "Test",
		BodyHTML: "<p>Test</p>",
	})
	assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
	assert.Contains(t, err.Error(), "failed to connect to SMTP server")
}

// fakeServer accepts a single plain SMTP session and records it.
type fakeServer struct {
	addr *net.TCPAddr

	mu       sync.Mutex
	mailFrom string
	rcptTo   string
	data     string
	done     chan struct{}
}

func startFakeServer(t *testing.T) *fakeServer {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	s := &fakeServer{addr: l.Addr().(*net.TCPAddr), done: make(chan struct{})}
	go func() {
		defer close(s.done)
		conn, err := l.Accept()
		if err != nil {
			return
		}
		defer func() { _ = conn.Close() }()
		s.serve(conn)
	}()
	return s
}

func (s *fakeServer) serve(conn net.Conn) {
	r := bufio.NewReader(conn)
	reply := func(line string) { _, _ = conn.Write([]byte(line + "\r\n")) }

	reply("220 localhost ESMTP")
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimRight(line, "\r\n")
		cmd := strings.ToUpper(line)

		switch {
		case strings.HasPrefix(cmd, "EHLO"):
			reply("250-localhost")
			reply("250 AUTH PLAIN")
		case strings.HasPrefix(cmd, "AUTH"):
			reply("235 2.7.0 Authentication successful")
		case strings.HasPrefix(cmd, "MAIL FROM:"):
			s.mu.Lock()
			s.mailFrom = line[len("MAIL FROM:"):]
			s.mu.Unlock()
			reply("250 OK")
		case strings.HasPrefix(cmd, "RCPT TO:"):
			s.mu.Lock()
			s.rcptTo = line[len("RCPT TO:"):]
			s.mu.Unlock()
			reply("250 OK")
		case cmd == "DATA":
			reply("354 End data with <CR><LF>.<CR><LF>")
			var b strings.Builder
			for {
				l, err := r.ReadString('\n')
				if err != nil {
					return
				}
				if l == ".\r\n" {
					break
				}
				b.WriteString(l)
			}
			s.mu.Lock()
			s.data = b.String()
			s.mu.Unlock()
			reply("250 OK queued")
		case cmd == "QUIT":
			reply("221 Bye")
			return
		default:
			reply("250 OK")
		}
	}
}

func TestClient_SendEmail_Delivers(t *testing.T) {
	t.Parallel()

	srv := startFakeServer(t)

	cfg := validConfig()
	cfg.Host, cfg.Port, cfg.TLSMode = "127.0.0.1", srv.addr.Port, "plain"
	client := smtp.MustNewClient(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := client.SendEmail(ctx, email.SendEmailParams{
		SendTo:    "user@example.com",
		FromName:  "Acme Support",
		FromEmail: "help@acme.test",
		Subject:   "Welcome aboard",
		BodyHTML:  "<p>Hello</p>",
		Tag:       "welcome",
	})
	require.NoError(t, err)
	<-srv.done

	srv.mu.Lock()
	defer srv.mu.Unlock()
	assert.Equal(t, "<help@acme.test>", srv.mailFrom)
	assert.Equal(t, "<user@example.com>", srv.rcptTo)
	assert.Contains(t, srv.data, `From: "Acme Support" <help@acme.test>`)
	assert.Contains(t, srv.data, "Reply-To: <support@example.com>")
	assert.Contains(t, srv.data, "Subject: Welcome aboard")
	assert.Contains(t, srv.data, "X-Tag: welcome")
	assert.Contains(t, srv.data, "<p>Hello</p>")
}

func TestClient_SendEmail_Attachments(t *testing.T) {
	t.Parallel()

	srv := startFakeServer(t)

	cfg := validConfig()
	cfg.Host, cfg.Port, cfg.TLSMode = "127.0.0.1", srv.addr.Port, "plain"
	client := smtp.MustNewClient(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pdf := bytes.Repeat([]byte("%PDF-1.7 "), 40)
	err := client.SendEmail(ctx, email.SendEmailParams{
		SendTo:   "user@example.com",
		Subject:  "Your invoice",
		BodyHTML: "<p>Invoice attached</p>",
		Tag:      "invoice",
		Attachments: []email.Attachment{
			{Filename: "invoice.pdf", ContentType: "application/pdf", Content: pdf},
			{Filename: "notes.txt", ContentType: "text/plain", Content: []byte("thanks")},
		},
	})
	require.NoError(t, err)
	<-srv.done

	srv.mu.Lock()
	data := srv.data
	srv.mu.Unlock()

	msg, err := mail.ReadMessage(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "Your invoice", msg.Header.Get("Subject"))

	mediaType, ps, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	require.NoError(t, err)
	require.Equal(t, "multipart/mixed", mediaType)

	mr := multipart.NewReader(msg.Body, ps["boundary"])

	body, err := mr.NextPart()
	require.NoError(t, err)
	assert.Contains(t, body.Header.Get("Content-Type"), "text/html")
	html, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "<p>Invoice attached</p>", string(html))

	want := []struct {
		filename    string
		contentType string
		content     []byte
	}{
		{filename: "invoice.pdf", contentType: "application/pdf", content: pdf},
		{filename: "notes.txt", contentType: "text/plain", content: []byte("thanks")},
	}
	for _, w := range want {
		part, err := mr.NextPart()
		require.NoError(t, err)
		assert.Equal(t, w.filename, part.FileName())
		assert.Contains(t, part.Header.Get("Content-Type"), w.contentType)
		assert.Equal(t, "base64", part.Header.Get("Content-Transfer-Encoding"))

		raw, err := io.ReadAll(part)
		require.NoError(t, err)
		for _, line := range strings.Split(strings.TrimSpace(string(raw)), "\r\n") {
			assert.LessOrEqual(t, len(line), 76)
		}
		decoded, err := io.ReadAll(base64.NewDecoder(base64.StdEncoding, strings.NewReader(strings.ReplaceAll(string(raw), "\r\n", ""))))
		require.NoError(t, err)
		assert.Equal(t, w.content, decoded)
	}

	_, err = mr.NextPart()
	assert.ErrorIs(t, err, io.EOF)
}
