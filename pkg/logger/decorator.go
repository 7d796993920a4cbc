package logger

import (
	"context"
	"log/slog"
)

type ctxKey int

const (
	messageIDKey ctxKey = iota
	templateKey
)

// WithMessageID stores the id of the message being processed.
func WithMessageID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, messageIDKey, id)
}

// WithTemplate stores the name of the template being rendered.
func WithTemplate(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, templateKey, name)
}

// ContextExtractor reads an extra attribute from the context of a log call,
// e.g. a tenant or request id set by the application.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// messageHandler tags records with the message id and template name found in
// the context of the log call.
type messageHandler struct {
	slog.Handler
	extractors []ContextExtractor
}

// NewMessageHandler wraps next so that records logged with a context prepared
// by WithMessageID or WithTemplate carry "message_id" and "template".
// Extra extractors run after those; nil ones are skipped.
func NewMessageHandler(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	h := &messageHandler{Handler: next}
	for _, ex := range extractors {
		if ex != nil {
			h.extractors = append(h.extractors, ex)
		}
	}
	return h
}

func (h *messageHandler) Handle(ctx context.Context, rec slog.Record) error {
	if id, ok := ctx.Value(messageIDKey).(string); ok && id != "" {
		rec.AddAttrs(slog.String("message_id", id))
	}
	if name, ok := ctx.Value(templateKey).(string); ok && name != "" {
		rec.AddAttrs(slog.String("template", name))
	}
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return h.Handler.Handle(ctx, rec)
}

func (h *messageHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &messageHandler{Handler: h.Handler.WithAttrs(attrs), extractors: h.extractors}
}

func (h *messageHandler) WithGroup(name string) slog.Handler {
	return &messageHandler{Handler: h.Handler.WithGroup(name), extractors: h.extractors}
}
