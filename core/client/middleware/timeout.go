package middleware

import (
	"context"
	"time"

	"github.com/leofalp/mmdraft/core/client"
	"github.com/leofalp/mmdraft/providers/ai"
)

// NewTimeoutMiddleware bounds each provider call with context.WithTimeout.
// A shorter deadline already set on the caller's context still wins.
func NewTimeoutMiddleware(timeout time.Duration) client.Middleware {
	return func(next client.SendFunc) client.SendFunc {
		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			return next(ctx, request)
		}
	}
}
