// Package logger builds the hub's slog logger.
//
// Records are JSON (or text with LOG_FORMAT=text) on stdout. Request-scoped
// values are attached with [Extractor] functions that run on every record:
//
//	log := logger.New(cfg.Log, os.Stdout,
//		logger.StringValue(requestIDKey, "request_id"),
//	)
//
// When SENTRY_DSN is set, warnings and errors are also forwarded to Sentry.
// Call [Flush] before exit so queued events are delivered.
package logger
