// Package ai defines the shared, provider-agnostic types and interfaces used
// by the Anthropic and OpenAI adapters. Each adapter's conversion layer maps
// these types to its own wire format, keeping the drafting code decoupled
// from vendor details.
//
// Request data flows through [ChatRequest] and responses come back as
// [ChatResponse]. Failures are classified with the sentinel errors
// [ErrNetwork], [ErrResponseShape] and [ErrMissingAPIKey].
package ai
