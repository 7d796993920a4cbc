package mailtemplated

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/mailtemplated/internal"
	"github.com/dmitrymomot/mailtemplated/pkg/mailer"
	"github.com/dmitrymomot/mailtemplated/pkg/section"
)

// Type aliases - public API
type (
	// Message is an email composed from one template with named sections.
	Message = internal.Message

	// Option configures a Message at construction.
	Option = internal.Option

	// CallOption configures a single Render or Send call.
	CallOption = internal.CallOption

	// Email is the mutable state of an outgoing message.
	Email = mailer.Email

	// Sender delivers emails.
	Sender = mailer.Sender

	// Template is a resolved template.
	Template = mailer.Template

	// TemplateProvider resolves template names.
	TemplateProvider = mailer.TemplateProvider

	// Format configures the section marker tokens.
	Format = section.Format
)

// Errors
var (
	ErrNoTemplateConfigured = internal.ErrNoTemplateConfigured
	ErrNoProvider           = internal.ErrNoProvider
	ErrNoSender             = internal.ErrNoSender
	ErrInvalidState         = internal.ErrInvalidState

	ErrTemplateNotFound = mailer.ErrTemplateNotFound
	ErrRenderFailed     = mailer.ErrRenderFailed
	ErrHeaderParse      = mailer.ErrHeaderParse
	ErrInvalidFormat    = section.ErrInvalidFormat
)

// Constructors

// New creates a templated message.
// Field options set defaults that sections missing from the template keep.
//
// Example:
//
//	msg, err := mailtemplated.New("welcome.md", map[string]any{"name": "Ann"},
//	    mailtemplated.WithProvider(renderer),
//	    mailtemplated.WithSender(sender),
//	    mailtemplated.WithFrom("team@example.com"),
//	    mailtemplated.WithTo("ann@example.com"),
//	)
//	if err != nil {
//	    return err
//	}
//	_, err = msg.Send(ctx)
func New(templateName string, data map[string]any, opts ...Option) (*Message, error) {
	return internal.New(templateName, data, opts...)
}

// Restore decodes a message serialized with json.Marshal and binds the
// given collaborators. The template is resolved again on the next render.
func Restore(data []byte, opts ...Option) (*Message, error) {
	return internal.Restore(data, opts...)
}

// SendMail renders templateName and sends it in one call.
// It returns the number of messages handed to the sender.
func SendMail(
	ctx context.Context,
	provider TemplateProvider,
	sender Sender,
	templateName string,
	data map[string]any,
	from string,
	to []string,
	opts ...Option,
) (int, error) {
	return internal.SendMail(ctx, provider, sender, templateName, data, from, to, opts...)
}

// SendMass sends distinct messages concurrently, at most limit at a time.
// A non-positive limit uses a default.
func SendMass(ctx context.Context, limit int, msgs ...*Message) (int, error) {
	return internal.SendMass(ctx, limit, msgs...)
}

// SetDefaultFormat changes the marker format used by new messages and
// renderers created afterwards.
func SetDefaultFormat(f Format) error {
	return section.SetDefault(f)
}

// Message options

// WithProvider sets the template provider used to resolve the template name.
func WithProvider(p TemplateProvider) Option {
	return internal.WithProvider(p)
}

// WithSender sets the transport used by Send.
func WithSender(s Sender) Option {
	return internal.WithSender(s)
}

// WithLogger sets the message logger.
// If nil, logging is disabled.
func WithLogger(l *slog.Logger) Option {
	return internal.WithLogger(l)
}

// WithFormat overrides the default marker format for one message.
func WithFormat(f Format) Option {
	return internal.WithFormat(f)
}

// WithSubject sets the default subject.
func WithSubject(subject string) Option {
	return internal.WithSubject(subject)
}

// WithBody sets the default plain text body.
func WithBody(body string) Option {
	return internal.WithBody(body)
}

// WithFrom sets the sender address.
func WithFrom(from string) Option {
	return internal.WithFrom(from)
}

// WithReplyTo sets the Reply-To address.
func WithReplyTo(addr string) Option {
	return internal.WithReplyTo(addr)
}

// WithTo appends To recipients.
func WithTo(addrs ...string) Option {
	return internal.WithTo(addrs...)
}

// WithCC appends carbon copy recipients.
func WithCC(addrs ...string) Option {
	return internal.WithCC(addrs...)
}

// WithBCC appends blind carbon copy recipients.
func WithBCC(addrs ...string) Option {
	return internal.WithBCC(addrs...)
}

// WithHeaders merges custom headers.
func WithHeaders(h map[string]string) Option {
	return internal.WithHeaders(h)
}

// WithExtraHeaders sets custom headers from a "Name: value" block.
func WithExtraHeaders(blob string) Option {
	return internal.WithExtraHeaders(blob)
}

// WithAlternative adds an alternative body part.
func WithAlternative(content, mimeType string) Option {
	return internal.WithAlternative(content, mimeType)
}

// WithAttachment adds an attachment.
// An empty contentType is guessed from the filename.
func WithAttachment(filename string, content []byte, contentType string) Option {
	return internal.WithAttachment(filename, content, contentType)
}

// WithTags sets provider-specific tags.
func WithTags(tags mailer.Tags) Option {
	return internal.WithTags(tags)
}

// WithRender renders the message during New.
func WithRender() Option {
	return internal.WithRender()
}

// WithClean renders the message during New and drops the template state.
func WithClean() Option {
	return internal.WithClean()
}

// Call options

// UsingContext renders with data instead of the message Context.
func UsingContext(data map[string]any) CallOption {
	return internal.UsingContext(data)
}

// AndClean drops the template state once the call has rendered.
func AndClean() CallOption {
	return internal.AndClean()
}
