package logger

import (
	"context"
	"log/slog"
)

// Extractor pulls one attribute out of a request context. It reports false
// when the context carries nothing to log.
type Extractor func(ctx context.Context) (slog.Attr, bool)

// StringValue builds an Extractor for a string stored under key with
// context.WithValue. Empty strings are skipped.
func StringValue(key any, attr string) Extractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v, ok := ctx.Value(key).(string); ok && v != "" {
			return slog.String(attr, v), true
		}
		return slog.Attr{}, false
	}
}

// contextHandler appends extracted attributes on every Handle call so
// request-scoped values like the request id and locale stay fresh.
type contextHandler struct {
	next       slog.Handler
	extractors []Extractor
}

// WithExtractors wraps next. Nil extractors are dropped.
func WithExtractors(next slog.Handler, extractors ...Extractor) slog.Handler {
	kept := make([]Extractor, 0, len(extractors))
	for _, ex := range extractors {
		if ex != nil {
			kept = append(kept, ex)
		}
	}
	if len(kept) == 0 {
		return next
	}
	return &contextHandler{next: next, extractors: kept}
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return h.next.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{next: h.next.WithAttrs(attrs), extractors: h.extractors}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{next: h.next.WithGroup(name), extractors: h.extractors}
}
