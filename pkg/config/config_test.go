package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailtemplated/pkg/mailer/smtp"
	"github.com/dmitrymomot/mailtemplated/pkg/section"
)

// Tests use t.Setenv and the shared cache, so they do not run in parallel.

type requiredConfig struct {
	Token string `env:"CONFIG_TEST_REQUIRED_TOKEN,required"`
}

func TestLoad_Defaults(t *testing.T) {
	reset()
	t.Cleanup(reset)

	var cfg smtp.Config
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 587, cfg.Port)
	assert.Equal(t, smtp.TLSModeStartTLS, cfg.TLSMode)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
}

func TestLoad_Environment(t *testing.T) {
	reset()
	t.Cleanup(reset)

	t.Setenv("MAIL_TEMPLATED_TAG_FORMAT", "<!--{bound}:{block}-->")
	t.Setenv("MAIL_TEMPLATED_TAG_VAR_FORMAT", "M_{BOUND}_{BLOCK}")

	var f section.Format
	require.NoError(t, Load(&f))

	assert.Equal(t, "<!--{bound}:{block}-->", f.Tag)
	assert.Equal(t, "M_{BOUND}_{BLOCK}", f.TagVar)
}

func TestLoad_Cached(t *testing.T) {
	reset()
	t.Cleanup(reset)

	t.Setenv("SMTP_HOST", "first.example.com")
	var first smtp.Config
	require.NoError(t, Load(&first))

	t.Setenv("SMTP_HOST", "second.example.com")
	var second smtp.Config
	require.NoError(t, Load(&second))

	assert.Equal(t, "first.example.com", second.Host)
}

func TestLoad_MissingRequired(t *testing.T) {
	reset()
	t.Cleanup(reset)

	var cfg requiredConfig
	err := Load(&cfg)
	assert.ErrorIs(t, err, ErrParse)
}

func TestMustLoad_Panics(t *testing.T) {
	reset()
	t.Cleanup(reset)

	assert.Panics(t, func() {
		var cfg requiredConfig
		MustLoad(&cfg)
	})
}
