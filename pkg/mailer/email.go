package mailer

import (
	"fmt"
	"maps"
	"mime"
	"os"
	"path/filepath"
	"slices"

	"github.com/dmitrymomot/mailtemplated/pkg/sanitizer"
)

// ContentSubtype is the subtype of the main body part ("text/<subtype>").
type ContentSubtype string

const (
	SubtypePlain ContentSubtype = "plain"
	SubtypeHTML  ContentSubtype = "html"
)

// MimeType returns the full MIME type of the body. Empty means plain.
func (s ContentSubtype) MimeType() string {
	if s == "" {
		return "text/plain"
	}
	return "text/" + string(s)
}

// MimeTypeHTML is the MIME type of html alternatives.
const MimeTypeHTML = "text/html"

// Tags represents email tags/categories that can be either presence-only
// (using struct{}{}) or key-value pairs (using string values).
//   - Postmark: uses the first tag name
//   - Resend: uses name-value pairs (presence-only tags become name="true")
type Tags map[string]any

// SimpleTags creates presence-only tags from a list of tag names.
func SimpleTags(names ...string) Tags {
	t := make(Tags, len(names))
	for _, n := range names {
		t[n] = struct{}{}
	}
	return t
}

// Recipient formats a name and email into RFC 5322 address format.
// Returns "Name <email>" if name is provided, otherwise just email.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Alternative is an extra representation of the body, e.g. html next to plain text.
type Alternative struct {
	Content  string `json:"content"`
	MimeType string `json:"mime_type"`
}

// Attachment represents an email attachment.
type Attachment struct {
	Filename    string `json:"filename"`             // Display name for the attachment
	ContentType string `json:"content_type"`         // MIME type (e.g., "application/pdf")
	ContentID   string `json:"content_id,omitempty"` // Optional Content-ID for inline attachments
	Content     []byte `json:"content"`              // Raw file content
}

// Email is the mutable state of an outgoing message.
// Templated messages write into it; senders read from it.
type Email struct {
	Headers        map[string]string `json:"headers,omitempty"`
	Tags           Tags              `json:"tags,omitempty"`
	Subject        string            `json:"subject"`
	Body           string            `json:"body"`
	ContentSubtype ContentSubtype    `json:"content_subtype"`
	From           string            `json:"from,omitempty"`
	ReplyTo        string            `json:"reply_to,omitempty"`
	To             []string          `json:"to,omitempty"`
	CC             []string          `json:"cc,omitempty"`
	BCC            []string          `json:"bcc,omitempty"`
	Alternatives   []Alternative     `json:"alternatives,omitempty"`
	Attachments    []Attachment      `json:"attachments,omitempty"`
}

// AttachAlternative adds an alternative representation of the body.
func (e *Email) AttachAlternative(content, mimeType string) {
	e.Alternatives = append(e.Alternatives, Alternative{Content: content, MimeType: mimeType})
}

// Attach adds an attachment. An empty contentType is guessed from the
// filename extension.
func (e *Email) Attach(filename string, content []byte, contentType string) {
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(filename))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	e.Attachments = append(e.Attachments, Attachment{
		Filename:    filename,
		ContentType: contentType,
		Content:     content,
	})
}

// AttachFile reads path from disk and attaches it under its base name.
func (e *Email) AttachFile(path, contentType string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("mailer: attach %s: %w", path, err)
	}
	e.Attach(filepath.Base(path), content, contentType)
	return nil
}

// Recipients returns all To, CC and BCC addresses.
func (e *Email) Recipients() []string {
	return slices.Concat(e.To, e.CC, e.BCC)
}

// IsHTML reports whether the main body is html.
func (e *Email) IsHTML() bool {
	return e.ContentSubtype == SubtypeHTML
}

// HTMLBody returns the html representation of the message: the body itself
// when it is html, otherwise the first text/html alternative.
func (e *Email) HTMLBody() string {
	if e.IsHTML() {
		return e.Body
	}
	for _, alt := range e.Alternatives {
		if alt.MimeType == MimeTypeHTML {
			return alt.Content
		}
	}
	return ""
}

// TextBody returns the plain text representation of the message.
// An html-only body is reduced to its text content.
func (e *Email) TextBody() string {
	if e.IsHTML() {
		return sanitizer.StripTags(e.Body)
	}
	return e.Body
}

// Validate checks the fields every sender needs.
func (e *Email) Validate() error {
	if len(e.Recipients()) == 0 {
		return ErrNoRecipient
	}
	return nil
}

// Clone returns a deep copy of the email.
func (e *Email) Clone() *Email {
	c := *e
	c.Headers = maps.Clone(e.Headers)
	c.Tags = maps.Clone(e.Tags)
	c.To = slices.Clone(e.To)
	c.CC = slices.Clone(e.CC)
	c.BCC = slices.Clone(e.BCC)
	c.Alternatives = slices.Clone(e.Alternatives)
	if e.Attachments != nil {
		c.Attachments = make([]Attachment, len(e.Attachments))
		for i, a := range e.Attachments {
			a.Content = slices.Clone(a.Content)
			c.Attachments[i] = a
		}
	}
	return &c
}
