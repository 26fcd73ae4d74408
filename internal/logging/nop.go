// Package logging provides internal logging utilities.
package logging

import "github.com/arloliu/registrar/types"

// NopLogger is a no-op logger that discards all log messages.
//
// This is used as the default logger when no logger is configured,
// avoiding nil checks throughout the codebase.
type NopLogger struct{}

// Compile-time assertion that NopLogger implements types.Logger.
var _ types.Logger = (*NopLogger)(nil)

// NewNopLogger creates a new no-op logger.
//
// Returns:
//   - *NopLogger: A logger that discards all messages
func NewNopLogger() *NopLogger {
	return &NopLogger{}
}

// Debugw discards the message.
func (l *NopLogger) Debugw(_ string, _ ...any) {}

// Infow discards the message.
func (l *NopLogger) Infow(_ string, _ ...any) {}

// Warnw discards the message.
func (l *NopLogger) Warnw(_ string, _ ...any) {}

// Errorw discards the message.
func (l *NopLogger) Errorw(_ string, _ ...any) {}
