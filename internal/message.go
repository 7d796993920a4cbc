package internal

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mailtemplated/pkg/logger"
	"github.com/dmitrymomot/mailtemplated/pkg/mailer"
	"github.com/dmitrymomot/mailtemplated/pkg/section"
)

// Message is an email whose fields come from a single template with
// named sections.
//
// Think of a Message as one paper letter: build a new one per recipient
// group instead of reusing it. A Message is not safe for concurrent use.
type Message struct {
	mailer.Email

	// ID identifies the message in logs and job queues.
	ID string
	// TemplateName is resolved through the provider on first render.
	TemplateName string
	// Context is the data the template is rendered with.
	Context map[string]any

	template mailer.Template
	provider mailer.TemplateProvider
	sender   mailer.Sender
	logger   *slog.Logger
	format   section.Format

	// promotedHTML is the html section currently used as the body,
	// empty when the body is plain text.
	promotedHTML string
	// renderedAlt indexes the html alternative added by Render, -1 if none.
	renderedAlt int

	rendered bool
	cleaned  bool
}

// New creates a templated message.
//
// Field options (WithSubject, WithBody, ...) seed default values before any
// render, so sections missing from the template fall back to them.
// WithRender and WithClean render immediately and return render errors.
func New(templateName string, data map[string]any, opts ...Option) (*Message, error) {
	m := &Message{
		Email: mailer.Email{
			ContentSubtype: mailer.SubtypePlain,
		},
		ID:           uuid.NewString(),
		TemplateName: templateName,
		Context:      data,
		logger:       logger.NewNope(),
		format:       section.Default(),
		renderedAlt:  -1,
	}

	c := &config{msg: m}
	for _, opt := range opts {
		opt(c)
	}
	if len(c.errs) > 0 {
		return nil, errors.Join(c.errs...)
	}
	if _, err := section.For(m.format); err != nil {
		return nil, err
	}

	if c.render || c.clean {
		if err := m.Render(); err != nil {
			return nil, err
		}
	}
	if c.clean {
		m.Clean()
	}

	return m, nil
}

// IsRendered reports whether the message has been rendered at least once.
func (m *Message) IsRendered() bool {
	return m.rendered
}

// IsClean reports whether the template state has been dropped.
func (m *Message) IsClean() bool {
	return m.cleaned
}

// Format returns the marker format the message renders with.
func (m *Message) Format() section.Format {
	return m.format
}

// Template returns the loaded template, nil until it is loaded.
func (m *Message) Template() mailer.Template {
	return m.template
}

// SetTemplate uses t instead of resolving TemplateName.
func (m *Message) SetTemplate(t mailer.Template) {
	m.template = t
}

// SetProvider sets the template provider, e.g. after deserialization.
func (m *Message) SetProvider(p mailer.TemplateProvider) {
	m.provider = p
}

// SetSender sets the transport, e.g. after deserialization.
func (m *Message) SetSender(s mailer.Sender) {
	m.sender = s
}

// SetLogger sets the logger. A nil logger disables logging.
func (m *Message) SetLogger(l *slog.Logger) {
	if l == nil {
		l = logger.NewNope()
	}
	m.logger = l
}

// ExtraHeaders returns the custom headers.
func (m *Message) ExtraHeaders() map[string]string {
	return m.Headers
}

// SetExtraHeaders replaces the custom headers with the ones parsed from a
// "Name: value" block. Continuation lines start with a space or a tab.
func (m *Message) SetExtraHeaders(blob string) error {
	headers, err := mailer.ParseHeaders(blob)
	if err != nil {
		return err
	}
	m.Headers = headers
	return nil
}

// LoadTemplate resolves the template without rendering it.
// An empty name loads TemplateName; a non-empty one replaces it.
func (m *Message) LoadTemplate(name string) error {
	if m.cleaned {
		return ErrNoTemplateConfigured
	}
	if name == "" {
		name = m.TemplateName
	}
	if name == "" {
		return ErrNoTemplateConfigured
	}
	if m.provider == nil {
		return ErrNoProvider
	}

	tmpl, err := m.provider.Resolve(name)
	if err != nil {
		return err
	}
	m.template = tmpl
	m.TemplateName = name
	return nil
}

// Render executes the template and copies its sections onto the message.
//
// A non-empty section overwrites its field; an empty or missing one keeps
// the current value. An html section becomes the body (with html content
// subtype) when there is no plain text body, otherwise it is attached as a
// text/html alternative. Re-rendering replaces that alternative instead of
// adding another one.
func (m *Message) Render(opts ...CallOption) error {
	c := newCallConfig(opts)
	if err := m.render(m.logContext(context.Background()), c.data); err != nil {
		return err
	}
	if c.clean {
		m.Clean()
	}
	return nil
}

func (m *Message) render(ctx context.Context, data map[string]any) error {
	if m.cleaned {
		return ErrNoTemplateConfigured
	}
	if m.template == nil {
		if err := m.LoadTemplate(""); err != nil {
			return err
		}
	}

	markers, err := section.For(m.format)
	if err != nil {
		return err
	}
	if data == nil {
		data = m.Context
	}

	out, err := m.template.Render(markers.Augment(data))
	if err != nil {
		m.logger.ErrorContext(ctx, "failed to render message", slog.Any("error", err))
		return err
	}

	sections := markers.ExtractAll(out)

	// Parse before touching any field so a bad block leaves the message as is.
	var headers map[string]string
	if blob := sections[section.ExtraHeaders]; blob != "" {
		if headers, err = mailer.ParseHeaders(blob); err != nil {
			return err
		}
	}

	for _, name := range section.All {
		value := sections[name]
		if value == "" {
			continue
		}
		switch name {
		case section.Subject:
			m.Subject = value
		case section.Body:
			m.Body = value
			if m.promotedHTML != "" {
				// The earlier html body stays as the html part.
				if sections[section.HTML] == "" {
					m.setHTMLAlternative(m.promotedHTML)
				}
				m.demoteBody()
			}
		case section.HTML:
			m.applyHTML(value)
		case section.From:
			m.From = value
		case section.ExtraHeaders:
			m.Headers = headers
		}
	}

	m.rendered = true
	m.logger.DebugContext(ctx, "message rendered",
		slog.Int("sections", len(sections)),
		slog.String("content_subtype", string(m.ContentSubtype)),
	)
	return nil
}

// applyHTML places the html section either as the body or as the owned
// text/html alternative.
func (m *Message) applyHTML(html string) {
	if m.Body == "" || m.bodyIsPromoted() {
		m.Body = html
		m.ContentSubtype = mailer.SubtypeHTML
		m.promotedHTML = html
		return
	}

	// Body was replaced after an html promotion.
	if m.promotedHTML != "" {
		m.demoteBody()
	}
	m.setHTMLAlternative(html)
}

// demoteBody marks the body as plain text again.
func (m *Message) demoteBody() {
	m.ContentSubtype = mailer.SubtypePlain
	m.promotedHTML = ""
}

// setHTMLAlternative replaces the owned text/html alternative or adds it
// after the caller's parts.
func (m *Message) setHTMLAlternative(html string) {
	alt := mailer.Alternative{Content: html, MimeType: mailer.MimeTypeHTML}
	if m.renderedAlt >= 0 && m.renderedAlt < len(m.Alternatives) &&
		m.Alternatives[m.renderedAlt].MimeType == mailer.MimeTypeHTML {
		m.Alternatives[m.renderedAlt] = alt
		return
	}
	m.Alternatives = append(m.Alternatives, alt)
	m.renderedAlt = len(m.Alternatives) - 1
}

// bodyIsPromoted reports whether Body still holds an html section placed
// there by a previous render.
func (m *Message) bodyIsPromoted() bool {
	return m.promotedHTML != "" && m.ContentSubtype == mailer.SubtypeHTML && m.Body == m.promotedHTML
}

// hasTemplate reports whether Render has something to render.
func (m *Message) hasTemplate() bool {
	return !m.cleaned && (m.template != nil || m.TemplateName != "")
}

// Clean drops the template name, the loaded template and the context.
// Rendered fields are kept. Render and LoadTemplate fail afterwards.
func (m *Message) Clean() {
	m.TemplateName = ""
	m.Context = nil
	m.template = nil
	m.cleaned = true
}

// Send renders the message if it has not been rendered yet and hands it to
// the sender. It returns the number of messages handed off: 1 on success,
// 0 when there are no recipients. Transport errors are returned unchanged.
func (m *Message) Send(ctx context.Context, opts ...CallOption) (int, error) {
	c := newCallConfig(opts)
	ctx = m.logContext(ctx)

	if m.sender == nil {
		return 0, ErrNoSender
	}

	if !m.rendered && m.hasTemplate() {
		if err := m.render(ctx, c.data); err != nil {
			return 0, err
		}
	}
	if c.clean {
		m.Clean()
	}

	recipients := len(m.Recipients())
	if recipients == 0 {
		m.logger.DebugContext(ctx, "message has no recipients, nothing sent")
		return 0, nil
	}

	if err := m.sender.Send(ctx, &m.Email); err != nil {
		m.logger.ErrorContext(ctx, "failed to send message", slog.Any("error", err))
		return 0, err
	}

	m.logger.DebugContext(ctx, "message sent", slog.Int("recipients", recipients))
	return 1, nil
}

// logContext tags ctx with the message id and template name.
func (m *Message) logContext(ctx context.Context) context.Context {
	ctx = logger.WithMessageID(ctx, m.ID)
	if m.TemplateName != "" {
		ctx = logger.WithTemplate(ctx, m.TemplateName)
	}
	return ctx
}
