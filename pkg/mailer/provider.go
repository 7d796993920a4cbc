package mailer

// Template is a resolved template ready to be executed.
// Implementations must be safe for concurrent use.
type Template interface {
	// Render executes the template against data and returns the output.
	Render(data map[string]any) (string, error)
}

// TemplateProvider resolves template names.
type TemplateProvider interface {
	// Resolve returns the template registered under name.
	// Fails with an error matching ErrTemplateNotFound when there is none.
	Resolve(name string) (Template, error)
}

// TemplateFunc adapts a function to the Template interface.
type TemplateFunc func(data map[string]any) (string, error)

// Render implements Template.
func (f TemplateFunc) Render(data map[string]any) (string, error) {
	return f(data)
}

// ProviderFunc adapts a function to the TemplateProvider interface.
type ProviderFunc func(name string) (Template, error)

// Resolve implements TemplateProvider.
func (f ProviderFunc) Resolve(name string) (Template, error) {
	return f(name)
}
