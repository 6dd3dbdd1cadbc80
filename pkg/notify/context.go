package notify

import "context"

type contextKey struct{}

// WithBus installs the bus on a context. Exactly one bus exists per
// running application.
func WithBus(ctx context.Context, bus *Bus) context.Context {
	return context.WithValue(ctx, contextKey{}, bus)
}

// FromContext returns the installed bus. Requesting it where none was
// installed is a programming error and panics.
func FromContext(ctx context.Context) *Bus {
	bus, ok := ctx.Value(contextKey{}).(*Bus)
	if !ok {
		panic("notify: no bus installed on context")
	}

	return bus
}

// Success publishes a success message on the context's bus.
func Success(ctx context.Context, text string) {
	_, _ = FromContext(ctx).Publish(ctx, text, SeveritySuccess)
}

// Error publishes an error message on the context's bus.
func Error(ctx context.Context, text string) {
	_, _ = FromContext(ctx).Publish(ctx, text, SeverityError)
}

// Info publishes an informational message on the context's bus.
func Info(ctx context.Context, text string) {
	_, _ = FromContext(ctx).Publish(ctx, text, SeverityInfo)
}

// Warning publishes a warning message on the context's bus.
func Warning(ctx context.Context, text string) {
	_, _ = FromContext(ctx).Publish(ctx, text, SeverityWarning)
}
