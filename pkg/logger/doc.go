// Package logger builds the slog loggers used by templated messages and
// their senders.
//
// Loggers are JSON-formatted, can enrich records with values carried by the
// context (message id, template name) and can forward warnings and errors to
// Sentry.
//
// # Basic Usage
//
//	log := logger.New()
//
//	ctx := logger.WithMessageID(context.Background(), msg.ID)
//	log.InfoContext(ctx, "message queued")
//	// {"level":"INFO","msg":"message queued","message_id":"6f1c..."}
//
// Templated messages put their id and template name into the context on
// every Send, so transport logs are tagged too. Extra ContextExtractors add
// application values such as a tenant id.
//
// # Sentry Integration
//
//	log := logger.NewWithSentry(logger.SentryConfig{
//		DSN:         os.Getenv("SENTRY_DSN"),
//		Environment: "production",
//		MinLevel:    slog.LevelWarn,
//	})
//
// If the DSN is empty, the logger falls back to stdout-only logging.
//
// # Defaults
//
// NewNope returns a logger that discards everything. It is the default of
// every component that accepts a logger.
package logger
