package mailer

import "github.com/dmitrymomot/mailtemplated/pkg/section"

// RendererConfig configures the renderer.
// Embed this in your app config for env parsing with caarlos0/env.
type RendererConfig struct {
	// Format must match the format used by the messages rendering through
	// this renderer. Zero value means section.Default().
	Format section.Format

	TemplateDir string `env:"MAILER_TEMPLATE_DIR" envDefault:"."`
	ButtonClass string `env:"MAILER_BUTTON_CLASS" envDefault:"btn"`
	ButtonStyle string `env:"MAILER_BUTTON_STYLE"`
}
