package usecasetest

import (
	"context"
	"time"
)

// Clock is a fixed time provider for tests
type Clock struct {
	Current time.Time
}

// NewClock creates a clock pinned to the given instant
func NewClock(t time.Time) *Clock {
	return &Clock{Current: t}
}

// Now returns the pinned instant
func (c *Clock) Now() time.Time { return c.Current }

// Since returns the elapsed time relative to the pinned instant
func (c *Clock) Since(t time.Time) time.Duration { return c.Current.Sub(t) }

// WithTimeout delegates to the context package
func (c *Clock) WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, d)
}

// NopLogger discards everything
type NopLogger struct{}

// NewNopLogger creates a logger that discards everything
func NewNopLogger() *NopLogger { return &NopLogger{} }

// Debug discards the entry
func (*NopLogger) Debug(string, map[string]any) {}

// Info discards the entry
func (*NopLogger) Info(string, map[string]any) {}

// Warn discards the entry
func (*NopLogger) Warn(string, map[string]any) {}

// Error discards the entry
func (*NopLogger) Error(string, map[string]any) {}

// Flush is a no-op
func (*NopLogger) Flush() error { return nil }
