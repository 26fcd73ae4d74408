package types

// Logger is the structured logging interface used across registrar.
//
// The method set is compatible with zap.SugaredLogger's *w methods taken as
// (msg, keysAndValues...) pairs, so a zap sugared logger satisfies it
// directly:
//
//	logger, _ := zap.NewProduction()
//	app, _ := registrar.New(conn, registrar.WithLogger(logger.Sugar()))
type Logger interface {
	// Debugw logs a message with key-value pairs at debug level.
	Debugw(msg string, keysAndValues ...any)

	// Infow logs a message with key-value pairs at info level.
	Infow(msg string, keysAndValues ...any)

	// Warnw logs a message with key-value pairs at warn level.
	Warnw(msg string, keysAndValues ...any)

	// Errorw logs a message with key-value pairs at error level.
	Errorw(msg string, keysAndValues ...any)
}
