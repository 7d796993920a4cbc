// Package devsender writes outgoing emails to disk for local development.
package devsender

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/dmitrymomot/mailtemplated/pkg/mailer"
)

// ErrWriteFailed indicates an email could not be written to disk.
var ErrWriteFailed = errors.New("devsender: failed to write email")

// Config configures the output directory.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	Dir string `env:"MAILER_DEV_DIR" envDefault:"tmp/emails"`
}

// Sender implements mailer.Sender by saving each email as files:
// <name>.txt with the plain text, <name>.html with the html version when
// there is one, and <name>.json with everything else.
type Sender struct {
	dir string
	now func() time.Time
}

// New creates a dev sender. The directory is created on first send.
func New(cfg Config) *Sender {
	dir := cfg.Dir
	if dir == "" {
		dir = "tmp/emails"
	}
	return &Sender{dir: dir, now: time.Now}
}

// emailMetadata is the json file content. Attachment bodies are left out.
type emailMetadata struct {
	Timestamp    string               `json:"timestamp"`
	From         string               `json:"from,omitempty"`
	To           []string             `json:"to"`
	CC           []string             `json:"cc,omitempty"`
	BCC          []string             `json:"bcc,omitempty"`
	ReplyTo      string               `json:"reply_to,omitempty"`
	Subject      string               `json:"subject"`
	Headers      map[string]string    `json:"headers,omitempty"`
	Tags         mailer.Tags          `json:"tags,omitempty"`
	Alternatives []string             `json:"alternatives,omitempty"`
	Attachments  []attachmentMetadata `json:"attachments,omitempty"`
}

type attachmentMetadata struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := email.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: failed to create directory: %v", ErrWriteFailed, err)
	}

	now := s.now()
	base := filepath.Join(s.dir, fmt.Sprintf("%s_%s_%s",
		now.Format("2006_01_02_150405"),
		sanitizeFilename(email.Subject),
		uuid.NewString()[:8],
	))

	if err := os.WriteFile(base+".txt", []byte(email.TextBody()), 0o644); err != nil {
		return fmt.Errorf("%w: failed to write text file: %v", ErrWriteFailed, err)
	}
	if html := email.HTMLBody(); html != "" {
		if err := os.WriteFile(base+".html", []byte(html), 0o644); err != nil {
			return fmt.Errorf("%w: failed to write html file: %v", ErrWriteFailed, err)
		}
	}

	meta := emailMetadata{
		Timestamp: now.Format(time.RFC3339),
		From:      email.From,
		To:        email.To,
		CC:        email.CC,
		BCC:       email.BCC,
		ReplyTo:   email.ReplyTo,
		Subject:   email.Subject,
		Headers:   email.Headers,
		Tags:      email.Tags,
	}
	for _, alt := range email.Alternatives {
		meta.Alternatives = append(meta.Alternatives, alt.MimeType)
	}
	for _, a := range email.Attachments {
		meta.Attachments = append(meta.Attachments, attachmentMetadata{
			Filename:    a.Filename,
			ContentType: a.ContentType,
			Size:        len(a.Content),
		})
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to marshal metadata: %v", ErrWriteFailed, err)
	}
	if err := os.WriteFile(base+".json", data, 0o644); err != nil {
		return fmt.Errorf("%w: failed to write json file: %v", ErrWriteFailed, err)
	}

	return nil
}

// sanitizeRegex removes filesystem-unsafe characters from filenames
var sanitizeRegex = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizeFilename converts a subject into a short lowercase file name.
func sanitizeFilename(s string) string {
	// Fold accented letters to their base form ("é" becomes "e").
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}
	s = strings.ReplaceAll(s, " ", "_")
	s = sanitizeRegex.ReplaceAllString(s, "")

	const maxLength = 60
	if len(s) > maxLength {
		s = s[:maxLength]
	}
	if s == "" {
		s = "email"
	}

	return strings.ToLower(s)
}
