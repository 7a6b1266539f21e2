package client

import (
	"context"

	"github.com/leofalp/mmdraft/providers/ai"
)

// SendFunc sends a chat request to the provider and returns the completed
// response. It is the unit threaded through the middleware chain.
type SendFunc func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error)

// Middleware intercepts provider calls. It receives the next SendFunc in the
// chain and returns a SendFunc wrapping it.
type Middleware func(next SendFunc) SendFunc

// buildSendChain wires the middlewares around a direct provider call.
// Middlewares are applied in reverse so that middlewares[0] is the outermost
// wrapper and runs first on the way in.
func buildSendChain(provider ai.Provider, middlewares []Middleware) SendFunc {
	var chain SendFunc = func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
		return provider.SendMessage(ctx, request)
	}

	for i := len(middlewares) - 1; i >= 0; i-- {
		chain = middlewares[i](chain)
	}

	return chain
}
