package smtp

import (
	"fmt"
	"time"

	"github.com/dmitrymomot/mailtemplated/pkg/mailer"
)

// TLS modes.
const (
	TLSModeStartTLS = "starttls"
	TLSModeTLS      = "tls"
	TLSModePlain    = "plain"
)

// Config holds SMTP server configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	Host        string        `env:"SMTP_HOST"`
	Port        int           `env:"SMTP_PORT" envDefault:"587"`
	Username    string        `env:"SMTP_USERNAME"`
	Password    string        `env:"SMTP_PASSWORD"`
	TLSMode     string        `env:"SMTP_TLS_MODE" envDefault:"starttls"` // starttls, tls, or plain
	SenderEmail string        `env:"SMTP_FROM_EMAIL"`
	SenderName  string        `env:"SMTP_FROM_NAME"`
	Timeout     time.Duration `env:"SMTP_TIMEOUT" envDefault:"10s"`
}

// Validate checks the settings required to reach the server.
func (c Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("%w: smtp: host is required", mailer.ErrInvalidConfig)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: smtp: port must be between 1 and 65535", mailer.ErrInvalidConfig)
	}
	switch c.TLSMode {
	case TLSModeStartTLS, TLSModeTLS, TLSModePlain:
	default:
		return fmt.Errorf("%w: smtp: tls mode must be starttls, tls or plain", mailer.ErrInvalidConfig)
	}
	if c.Username != "" && c.Password == "" {
		return fmt.Errorf("%w: smtp: password is required with username", mailer.ErrInvalidConfig)
	}
	return nil
}
