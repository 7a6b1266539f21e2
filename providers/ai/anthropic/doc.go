// Package anthropic implements [ai.Provider] for Anthropic's Messages API.
//
// A request is a single POST to {base}/messages authenticated with the
// X-Api-Key and anthropic-version headers. The reply is read from the first
// text block of the response content. Construct a provider with [New] and
// configure it with [AnthropicProvider.WithAPIKey],
// [AnthropicProvider.WithBaseURL] and [AnthropicProvider.WithHttpClient].
package anthropic
