// Package logger wraps zap with a process-wide sugared logger and context
// helpers, so pipeline stages log through the logger carried by their
// context.Context.
package logger
