package resend

import (
	"fmt"

	"github.com/dmitrymomot/mailtemplated/pkg/mailer"
)

// Config holds Resend email provider configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	APIKey      string `env:"RESEND_API_KEY"`
	SenderEmail string `env:"RESEND_FROM_EMAIL"`
	SenderName  string `env:"RESEND_FROM_NAME"`
}

// Validate checks the settings required to call the API.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("%w: resend: api key is required", mailer.ErrInvalidConfig)
	}
	return nil
}

// from returns the default sender address.
func (c Config) from() string {
	return mailer.Recipient(c.SenderName, c.SenderEmail)
}
