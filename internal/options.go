package internal

import (
	"log/slog"
	"maps"

	"github.com/dmitrymomot/mailtemplated/pkg/mailer"
	"github.com/dmitrymomot/mailtemplated/pkg/section"
)

// config collects construction options.
type config struct {
	msg    *Message
	errs   []error
	render bool
	clean  bool
}

// Option configures a Message at construction.
type Option func(*config)

// WithProvider sets the template provider used to resolve the template name.
func WithProvider(p mailer.TemplateProvider) Option {
	return func(c *config) {
		c.msg.provider = p
	}
}

// WithSender sets the transport used by Send.
func WithSender(s mailer.Sender) Option {
	return func(c *config) {
		c.msg.sender = s
	}
}

// WithLogger sets the message logger.
// If nil, logging is disabled.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.msg.logger = l
		}
	}
}

// WithFormat overrides the process-wide marker format for this message.
// It must match the format of the template provider.
func WithFormat(f section.Format) Option {
	return func(c *config) {
		c.msg.format = f
	}
}

// WithSubject sets the default subject, used when the template has no
// subject section or renders it empty.
func WithSubject(subject string) Option {
	return func(c *config) {
		c.msg.Subject = subject
	}
}

// WithBody sets the default plain text body, used when the template has no
// body section or renders it empty.
func WithBody(body string) Option {
	return func(c *config) {
		c.msg.Body = body
	}
}

// WithFrom sets the sender address.
func WithFrom(from string) Option {
	return func(c *config) {
		c.msg.From = from
	}
}

// WithReplyTo sets the Reply-To address.
func WithReplyTo(addr string) Option {
	return func(c *config) {
		c.msg.ReplyTo = addr
	}
}

// WithTo appends To recipients.
func WithTo(addrs ...string) Option {
	return func(c *config) {
		c.msg.To = append(c.msg.To, addrs...)
	}
}

// WithCC appends carbon copy recipients.
func WithCC(addrs ...string) Option {
	return func(c *config) {
		c.msg.CC = append(c.msg.CC, addrs...)
	}
}

// WithBCC appends blind carbon copy recipients.
func WithBCC(addrs ...string) Option {
	return func(c *config) {
		c.msg.BCC = append(c.msg.BCC, addrs...)
	}
}

// WithHeaders merges custom headers.
func WithHeaders(h map[string]string) Option {
	return func(c *config) {
		if c.msg.Headers == nil {
			c.msg.Headers = make(map[string]string, len(h))
		}
		maps.Copy(c.msg.Headers, h)
	}
}

// WithExtraHeaders sets headers from a "Name: value" block.
// A malformed block makes New fail with a *mailer.HeaderParseError.
func WithExtraHeaders(blob string) Option {
	return func(c *config) {
		if err := c.msg.SetExtraHeaders(blob); err != nil {
			c.errs = append(c.errs, err)
		}
	}
}

// WithAlternative adds an alternative body part.
func WithAlternative(content, mimeType string) Option {
	return func(c *config) {
		c.msg.AttachAlternative(content, mimeType)
	}
}

// WithAttachment adds an attachment.
func WithAttachment(filename string, content []byte, contentType string) Option {
	return func(c *config) {
		c.msg.Attach(filename, content, contentType)
	}
}

// WithTags sets provider-specific tags.
func WithTags(tags mailer.Tags) Option {
	return func(c *config) {
		c.msg.Tags = tags
	}
}

// WithRender renders the message during New. Render errors make New fail.
func WithRender() Option {
	return func(c *config) {
		c.render = true
	}
}

// WithClean renders the message during New and drops the template state
// right after, whether or not WithRender is given.
func WithClean() Option {
	return func(c *config) {
		c.clean = true
	}
}

// callConfig holds per-call options of Render and Send.
type callConfig struct {
	data  map[string]any
	clean bool
}

// CallOption configures a single Render or Send call.
type CallOption func(*callConfig)

// UsingContext renders with data instead of the message Context.
// The message Context itself is left unchanged.
func UsingContext(data map[string]any) CallOption {
	return func(c *callConfig) {
		c.data = data
	}
}

// AndClean drops the template state once the call has rendered.
func AndClean() CallOption {
	return func(c *callConfig) {
		c.clean = true
	}
}

func newCallConfig(opts []CallOption) *callConfig {
	c := &callConfig{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
