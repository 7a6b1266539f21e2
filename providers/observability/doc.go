// Package observability defines the tracing and logging interfaces, together
// with the semantic attribute names, used throughout the reply drafter.
//
// The central entry point is [Provider], which composes [Tracer] and [Logger]
// into a single injectable dependency. Callers propagate the active
// [Provider] and [Span] through a [context.Context] using
// [ContextWithObserver] and [ContextWithSpan]; they are retrieved with
// [ObserverFromContext] and [SpanFromContext].
package observability
