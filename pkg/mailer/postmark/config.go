package postmark

import (
	"fmt"

	"github.com/dmitrymomot/mailtemplated/pkg/mailer"
)

// Config holds Postmark provider configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	ServerToken   string `env:"POSTMARK_SERVER_TOKEN"`
	AccountToken  string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail   string `env:"POSTMARK_FROM_EMAIL"`
	SenderName    string `env:"POSTMARK_FROM_NAME"`
	MessageStream string `env:"POSTMARK_MESSAGE_STREAM" envDefault:"outbound"`
	TrackOpens    bool   `env:"POSTMARK_TRACK_OPENS" envDefault:"true"`
	TrackLinks    string `env:"POSTMARK_TRACK_LINKS" envDefault:"HtmlOnly"`
}

// Validate checks the settings required to call the API.
func (c Config) Validate() error {
	if c.ServerToken == "" {
		return fmt.Errorf("%w: postmark: server token is required", mailer.ErrInvalidConfig)
	}
	return nil
}
