// Package middleware provides the send middlewares installed by the drafting
// pipeline. Each constructor returns a [client.Middleware] ready for
// [client.WithMiddleware].
//
//   - [NewTimeoutMiddleware] bounds a provider call with a deadline. It is
//     only installed when the configuration sets a timeout.
//   - [NewLoggingMiddleware] writes slog entries around every call at one of
//     three verbosity levels.
//
// Middlewares execute outermost-first:
//
//	c, err := client.New(provider,
//	    client.WithMiddleware(
//	        middleware.NewTimeoutMiddleware(30*time.Second),
//	        middleware.NewLoggingMiddleware(logger, middleware.LogLevelStandard),
//	    ),
//	)
//
// sends each request through Timeout → Logging → Provider.
package middleware
