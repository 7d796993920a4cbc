package smtp

import (
	"context"
	"errors"
	"io"

	"gopkg.in/mail.v2"

	"github.com/dmitrymomot/mailtemplated/pkg/mailer"
)

// ErrSendFailed wraps errors returned by the SMTP server.
var ErrSendFailed = errors.New("smtp: failed to send email")

// dialer is the part of *mail.Dialer the sender uses.
type dialer interface {
	DialAndSend(m ...*mail.Message) error
}

// Sender implements mailer.Sender over SMTP.
// A connection is opened per message.
type Sender struct {
	dialer dialer
	config Config
}

// New creates an SMTP sender.
func New(cfg Config) (*Sender, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d := mail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.Timeout = cfg.Timeout
	switch cfg.TLSMode {
	case TLSModeTLS:
		d.SSL = true
	case TLSModeStartTLS:
		d.StartTLSPolicy = mail.MandatoryStartTLS
	case TLSModePlain:
		d.StartTLSPolicy = mail.NoStartTLS
	}

	return &Sender{dialer: d, config: cfg}, nil
}

// MustNew creates an SMTP sender and panics on invalid config.
func MustNew(cfg Config) *Sender {
	s, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return s
}

// Send implements mailer.Sender.
// The context is only checked before dialing.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	if err := email.Validate(); err != nil {
		return err
	}

	if err := s.dialer.DialAndSend(s.buildMessage(email)); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}

// buildMessage converts an email to a MIME message.
// An html-only body gets a plain text part derived from it.
func (s *Sender) buildMessage(email *mailer.Email) *mail.Message {
	m := mail.NewMessage()

	for name, value := range email.Headers {
		m.SetHeader(name, value)
	}

	from := email.From
	if from == "" {
		from = mailer.Recipient(s.config.SenderName, s.config.SenderEmail)
	}
	m.SetHeader("From", from)
	if len(email.To) > 0 {
		m.SetHeader("To", email.To...)
	}
	if len(email.CC) > 0 {
		m.SetHeader("Cc", email.CC...)
	}
	if len(email.BCC) > 0 {
		m.SetHeader("Bcc", email.BCC...)
	}
	if email.ReplyTo != "" {
		m.SetHeader("Reply-To", email.ReplyTo)
	}
	m.SetHeader("Subject", email.Subject)

	if email.IsHTML() {
		m.SetBody("text/plain", email.TextBody())
		m.AddAlternative(mailer.MimeTypeHTML, email.Body)
	} else {
		m.SetBody(email.ContentSubtype.MimeType(), email.Body)
	}
	for _, alt := range email.Alternatives {
		m.AddAlternative(alt.MimeType, alt.Content)
	}

	for _, a := range email.Attachments {
		settings := []mail.FileSetting{
			mail.SetCopyFunc(copyContent(a.Content)),
			mail.SetHeader(map[string][]string{"Content-Type": {a.ContentType}}),
		}
		if a.ContentID != "" {
			settings = append(settings, mail.SetHeader(map[string][]string{
				"Content-ID": {"<" + a.ContentID + ">"},
			}))
			m.Embed(a.Filename, settings...)
			continue
		}
		m.Attach(a.Filename, settings...)
	}

	return m
}

func copyContent(content []byte) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := w.Write(content)
		return err
	}
}
