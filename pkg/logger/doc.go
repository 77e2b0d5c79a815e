// Package logger builds the service's slog logger.
//
// Logs are JSON on stdout (or any io.Writer), the level comes from Config.Level,
// and context extractors add request-scoped attributes to every record:
//
//	log := logger.New(cfg.Log, nil, logger.RequestIDExtractor)
//	log.InfoContext(r.Context(), "login succeeded", slog.String("provider", "teambox"))
//	// {"level":"INFO","msg":"login succeeded","provider":"teambox","request_id":"host/abc-000001"}
//
// # Sentry
//
// With Config.SentryDSN set, errors become Sentry issues and warnings are
// stored as Sentry logs. An empty DSN or a failed sentry.Init keeps plain
// stdout logging, so the same code runs in development and production.
//
// # Custom handlers
//
// NewLogHandlerDecorator adds extractors to any slog.Handler:
//
//	h := logger.NewLogHandlerDecorator(slog.NewTextHandler(os.Stderr, nil), extractors...)
//	log := slog.New(h)
package logger
