// Package slogobs provides an observability.Provider backed by log/slog.
// Records are written through a [Handler] in compact, pretty or JSON layout,
// by default to stderr and in the hook binary to an append-only log file
// opened with [OpenLogFile]. Construct one with [New] and tune it with
// [WithFormat], [WithLevel], [WithOutput], [WithAttrs] and [WithLogger].
package slogobs
