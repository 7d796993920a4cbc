package internal

import "errors"

var (
	// ErrNoTemplateConfigured is returned by Render and LoadTemplate when the
	// message has no template name, or after Clean.
	ErrNoTemplateConfigured = errors.New("mailtemplated: no template configured")

	// ErrNoProvider is returned when a template has to be resolved but the
	// message has no template provider.
	ErrNoProvider = errors.New("mailtemplated: no template provider")

	// ErrNoSender is returned by Send when the message has no sender.
	ErrNoSender = errors.New("mailtemplated: no sender")

	// ErrInvalidState is returned when serialized message state cannot be restored.
	ErrInvalidState = errors.New("mailtemplated: invalid message state")
)
