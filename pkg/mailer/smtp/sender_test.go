package smtp

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/mail.v2"

	"github.com/dmitrymomot/mailtemplated/pkg/mailer"
)

// recordingDialer captures messages instead of talking to a server.
type recordingDialer struct {
	messages []*mail.Message
	err      error
}

func (d *recordingDialer) DialAndSend(m ...*mail.Message) error {
	d.messages = append(d.messages, m...)
	return d.err
}

func validConfig() Config {
	return Config{
		Host:        "smtp.example.com",
		Port:        587,
		Username:    "user",
		Password:    "secret",
		TLSMode:     TLSModeStartTLS,
		SenderEmail: "team@example.com",
		SenderName:  "Team",
	}
}

func raw(t *testing.T, m *mail.Message) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no host", func(c *Config) { c.Host = "" }},
		{"bad port", func(c *Config) { c.Port = 70000 }},
		{"bad tls mode", func(c *Config) { c.TLSMode = "ssl" }},
		{"username without password", func(c *Config) { c.Password = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(&cfg)
			_, err := New(cfg)
			require.ErrorIs(t, err, mailer.ErrInvalidConfig)
		})
	}

	_, err := New(validConfig())
	require.NoError(t, err)
}

func TestNew_TLSModes(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.TLSMode = TLSModeTLS
	s := MustNew(cfg)
	d := s.dialer.(*mail.Dialer)
	require.True(t, d.SSL)

	cfg.TLSMode = TLSModePlain
	d = MustNew(cfg).dialer.(*mail.Dialer)
	require.False(t, d.SSL)
	require.Equal(t, mail.StartTLSPolicy(mail.NoStartTLS), d.StartTLSPolicy)

	cfg.TLSMode = TLSModeStartTLS
	d = MustNew(cfg).dialer.(*mail.Dialer)
	require.Equal(t, mail.StartTLSPolicy(mail.MandatoryStartTLS), d.StartTLSPolicy)
}

func TestSender_Send_PlainWithAlternative(t *testing.T) {
	t.Parallel()

	d := &recordingDialer{}
	s := &Sender{dialer: d, config: validConfig()}

	err := s.Send(context.Background(), &mailer.Email{
		Subject:        "Hello",
		Body:           "Plain body",
		ContentSubtype: mailer.SubtypePlain,
		To:             []string{"ann@example.com"},
		ReplyTo:        "support@example.com",
		Headers:        map[string]string{"X-Campaign": "spring"},
		Alternatives:   []mailer.Alternative{{Content: "<p>Html body</p>", MimeType: mailer.MimeTypeHTML}},
		Attachments:    []mailer.Attachment{{Filename: "notes.txt", ContentType: "text/plain", Content: []byte("attached")}},
	})
	require.NoError(t, err)
	require.Len(t, d.messages, 1)

	m := d.messages[0]
	require.Equal(t, []string{"Team <team@example.com>"}, m.GetHeader("From"))
	require.Equal(t, []string{"ann@example.com"}, m.GetHeader("To"))
	require.Equal(t, []string{"support@example.com"}, m.GetHeader("Reply-To"))
	require.Equal(t, []string{"spring"}, m.GetHeader("X-Campaign"))

	out := raw(t, m)
	require.Contains(t, out, "multipart/alternative")
	require.Contains(t, out, "Plain body")
	require.Contains(t, out, "<p>Html body</p>")
	require.Contains(t, out, `filename="notes.txt"`)
}

func TestSender_Send_HTMLOnly(t *testing.T) {
	t.Parallel()

	d := &recordingDialer{}
	s := &Sender{dialer: d, config: validConfig()}

	err := s.Send(context.Background(), &mailer.Email{
		From:           "custom@example.com",
		Subject:        "Hi",
		Body:           "<p>Only html</p>",
		ContentSubtype: mailer.SubtypeHTML,
		To:             []string{"ann@example.com"},
	})
	require.NoError(t, err)

	m := d.messages[0]
	require.Equal(t, []string{"custom@example.com"}, m.GetHeader("From"))
	out := raw(t, m)
	require.Contains(t, out, "text/plain")
	require.Contains(t, out, "Only html")
	require.Contains(t, out, "<p>Only html</p>")
}

func TestSender_Send_Errors(t *testing.T) {
	t.Parallel()

	dialErr := errors.New("connection refused")
	s := &Sender{dialer: &recordingDialer{err: dialErr}, config: validConfig()}
	email := &mailer.Email{Body: "x", To: []string{"ann@example.com"}}

	err := s.Send(context.Background(), email)
	require.ErrorIs(t, err, ErrSendFailed)
	require.ErrorIs(t, err, dialErr)

	err = s.Send(context.Background(), &mailer.Email{Body: "x"})
	require.ErrorIs(t, err, mailer.ErrNoRecipient)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = s.Send(ctx, email)
	require.ErrorIs(t, err, context.Canceled)
}
