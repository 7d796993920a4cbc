package resend

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/mailtemplated/pkg/mailer"
)

// Sender implements mailer.Sender using the Resend API.
type Sender struct {
	client *resend.Client
	config Config
}

// New creates a new Resend sender.
func New(cfg Config) (*Sender, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Sender{
		client: resend.NewClient(cfg.APIKey),
		config: cfg,
	}, nil
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	if err := email.Validate(); err != nil {
		return err
	}

	if _, err := s.client.Emails.SendWithContext(ctx, s.buildRequest(email)); err != nil {
		return fmt.Errorf("resend: failed to send email: %w", err)
	}
	return nil
}

// buildRequest maps an email onto the Resend API request.
// Alternatives other than text/html have no Resend equivalent and are skipped.
func (s *Sender) buildRequest(email *mailer.Email) *resend.SendEmailRequest {
	from := email.From
	if from == "" {
		from = s.config.from()
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody(),
		Text:    email.TextBody(),
		ReplyTo: email.ReplyTo,
		Cc:      email.CC,
		Bcc:     email.BCC,
		Headers: email.Headers,
	}

	if len(email.Attachments) > 0 {
		req.Attachments = convertAttachments(email.Attachments)
	}
	if len(email.Tags) > 0 {
		req.Tags = convertTags(email.Tags)
	}

	return req
}

func convertAttachments(attachments []mailer.Attachment) []*resend.Attachment {
	result := make([]*resend.Attachment, len(attachments))
	for i, a := range attachments {
		result[i] = &resend.Attachment{
			Filename:    a.Filename,
			Content:     a.Content,
			ContentType: a.ContentType,
			ContentId:   a.ContentID,
		}
	}
	return result
}

// convertTags returns tags sorted by name.
func convertTags(tags mailer.Tags) []resend.Tag {
	result := make([]resend.Tag, 0, len(tags))
	for _, name := range slices.Sorted(maps.Keys(tags)) {
		result = append(result, resend.Tag{
			Name:  name,
			Value: tagValue(tags[name]),
		})
	}
	return result
}

// tagValue converts any value to a string for Resend's tag API.
// Presence-only tags become "true". After a JSON round trip a presence-only
// tag decodes as an empty object.
func tagValue(v any) string {
	switch val := v.(type) {
	case nil, struct{}:
		return "true"
	case map[string]any:
		if len(val) == 0 {
			return "true"
		}
		return fmt.Sprint(val)
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
