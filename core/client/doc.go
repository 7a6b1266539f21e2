// Package client sits between the drafting pipeline and a raw [ai.Provider].
// A [Client] owns the model name, the token budget and a middleware chain,
// and exposes a single operation, [Client.GenerateReply], that turns a prompt
// into trimmed reply text.
//
// Construct one with [New] and functional options such as [WithModel],
// [WithMiddleware] and [WithObserver].
package client
