package observability

import "context"

// contextKey is a private type for context keys to avoid collisions
type contextKey int

const (
	spanContextKey contextKey = iota
	observerContextKey
)

// SpanFromContext extracts a Span from the context.
// Returns nil if no span is present.
func SpanFromContext(ctx context.Context) Span {
	if ctx == nil {
		return nil
	}
	span, _ := ctx.Value(spanContextKey).(Span)
	return span
}

// ContextWithSpan returns a new context with the given span attached.
func ContextWithSpan(ctx context.Context, span Span) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, spanContextKey, span)
}

// ObserverFromContext extracts the Provider stored by [ContextWithObserver].
// Returns [Nop] if none is present, so the result can always be logged to.
func ObserverFromContext(ctx context.Context) Provider {
	if ctx == nil {
		return Nop()
	}
	if observer, ok := ctx.Value(observerContextKey).(Provider); ok && observer != nil {
		return observer
	}
	return Nop()
}

// ContextWithObserver returns a new context carrying observer.
func ContextWithObserver(ctx context.Context, observer Provider) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, observerContextKey, observer)
}
