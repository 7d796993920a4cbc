package internal

import (
	"context"

	"github.com/dmitrymomot/mailtemplated/pkg/mailer"
)

// SendMail renders templateName with data and sends it in one go.
// The template state is dropped once rendered. Extra options may set
// defaults, more recipients or a logger.
func SendMail(
	ctx context.Context,
	provider mailer.TemplateProvider,
	sender mailer.Sender,
	templateName string,
	data map[string]any,
	from string,
	to []string,
	opts ...Option,
) (int, error) {
	base := []Option{
		WithProvider(provider),
		WithSender(sender),
		WithFrom(from),
		WithTo(to...),
	}

	m, err := New(templateName, data, append(base, opts...)...)
	if err != nil {
		return 0, err
	}
	return m.Send(ctx, AndClean())
}
