// Package logging builds the application's log/slog loggers.
//
// Example usage:
//
//	logger := logging.New(os.Stdout, cfg.LogLevel)
//	slog.SetDefault(logger)
//
//	func handle(ctx context.Context) {
//	    logging.WithRequestID(ctx, slog.Default()).Info("processing request")
//	}
package logging
