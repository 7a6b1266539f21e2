// Package openai implements [ai.Provider] for the OpenAI chat completions
// endpoint and OpenAI-compatible servers.
//
// Requests are sent to {base}/chat/completions with an Authorization bearer
// token. The reply is choices[0].message.content; a response without it is
// reported as [ai.ErrResponseShape].
package openai
