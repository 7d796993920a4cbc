package mailer

import "errors"

var (
	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("email must have at least one recipient")

	// ErrTemplateNotFound indicates the template could not be resolved.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrRenderFailed indicates template parsing or execution failed.
	ErrRenderFailed = errors.New("failed to render template")

	// ErrInvalidFrontmatter indicates invalid YAML frontmatter.
	ErrInvalidFrontmatter = errors.New("invalid frontmatter")

	// ErrExtendsCycle indicates templates extending each other in a loop.
	ErrExtendsCycle = errors.New("template extends itself")

	// ErrHeaderParse indicates a malformed extra headers block.
	ErrHeaderParse = errors.New("malformed extra headers")

	// ErrInvalidConfig indicates a transport was built with unusable settings.
	ErrInvalidConfig = errors.New("invalid email configuration")
)
