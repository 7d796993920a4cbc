package postmark

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/mrz1836/postmark"

	"github.com/dmitrymomot/mailtemplated/pkg/mailer"
)

// ErrSendFailed wraps errors returned by the Postmark API.
var ErrSendFailed = errors.New("postmark: failed to send email")

// client is the part of *postmark.Client the sender uses.
type client interface {
	SendEmail(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error)
}

// Sender implements mailer.Sender using Postmark's transactional API.
type Sender struct {
	client client
	config Config
}

// New creates a Postmark sender.
func New(cfg Config) (*Sender, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Sender{
		client: postmark.NewClient(cfg.ServerToken, cfg.AccountToken),
		config: cfg,
	}, nil
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	if err := email.Validate(); err != nil {
		return err
	}

	resp, err := s.client.SendEmail(ctx, s.buildEmail(email))
	if err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(ErrSendFailed, fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message))
	}
	return nil
}

// buildEmail maps an email onto the Postmark API payload.
// Postmark takes one tag: the first tag name in sort order. String-valued
// tags are sent as metadata too.
func (s *Sender) buildEmail(email *mailer.Email) postmark.Email {
	from := email.From
	if from == "" {
		from = mailer.Recipient(s.config.SenderName, s.config.SenderEmail)
	}

	pm := postmark.Email{
		From:          from,
		To:            strings.Join(email.To, ","),
		Cc:            strings.Join(email.CC, ","),
		Bcc:           strings.Join(email.BCC, ","),
		ReplyTo:       email.ReplyTo,
		Subject:       email.Subject,
		HTMLBody:      email.HTMLBody(),
		TextBody:      email.TextBody(),
		TrackOpens:    s.config.TrackOpens,
		TrackLinks:    s.config.TrackLinks,
		MessageStream: s.config.MessageStream,
	}

	for _, name := range slices.Sorted(maps.Keys(email.Headers)) {
		pm.Headers = append(pm.Headers, postmark.Header{Name: name, Value: email.Headers[name]})
	}

	if names := slices.Sorted(maps.Keys(email.Tags)); len(names) > 0 {
		pm.Tag = names[0]
		for _, name := range names {
			if v, ok := email.Tags[name].(string); ok {
				if pm.Metadata == nil {
					pm.Metadata = make(map[string]string)
				}
				pm.Metadata[name] = v
			}
		}
	}

	for _, a := range email.Attachments {
		att := postmark.Attachment{
			Name:        a.Filename,
			Content:     base64.StdEncoding.EncodeToString(a.Content),
			ContentType: a.ContentType,
		}
		if a.ContentID != "" {
			att.ContentID = "cid:" + a.ContentID
		}
		pm.Attachments = append(pm.Attachments, att)
	}

	return pm
}
