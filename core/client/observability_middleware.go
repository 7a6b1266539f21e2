package client

import (
	"context"
	"time"

	"github.com/leofalp/mmdraft/providers/ai"
	"github.com/leofalp/mmdraft/providers/observability"
)

// NewObservabilityMiddleware wraps each provider call in a span and emits
// debug and error log events. The span and observer are stored in the context
// handed to next so adapters and the HTTP helper can attach events to it.
//
// defaultModel labels the span when the request's own Model is empty.
func NewObservabilityMiddleware(observer observability.Provider, defaultModel string) Middleware {
	return func(next SendFunc) SendFunc {
		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
			model := request.Model
			if model == "" {
				model = defaultModel
			}

			ctx, span := observer.StartSpan(ctx, observability.SpanClientGenerateReply,
				observability.String(observability.AttrLLMModel, model),
			)
			defer span.End()
			ctx = observability.ContextWithSpan(ctx, span)
			ctx = observability.ContextWithObserver(ctx, observer)

			if request.GenerationConfig != nil {
				span.SetAttributes(observability.Int(observability.AttrLLMMaxTokens, request.GenerationConfig.MaxTokens))
			}
			observer.Debug(ctx, "llm send", observability.String(observability.AttrLLMModel, model))

			start := time.Now()
			response, err := next(ctx, request)
			elapsed := time.Since(start)

			if err != nil {
				span.RecordError(err)
				span.SetStatus(observability.StatusError, "llm send failed")
				observer.Error(ctx, "llm send failed",
					observability.Error(err),
					observability.String(observability.AttrErrorType, ai.ErrorType(err)),
					observability.Duration(observability.AttrDuration, elapsed),
					observability.String(observability.AttrLLMModel, model),
				)
				return nil, err
			}

			attrs := []observability.Attribute{
				observability.String(observability.AttrLLMModel, model),
				observability.Duration(observability.AttrDuration, elapsed),
			}
			if response != nil && response.Usage != nil {
				attrs = append(attrs,
					observability.Int(observability.AttrLLMTokensPrompt, response.Usage.PromptTokens),
					observability.Int(observability.AttrLLMTokensCompletion, response.Usage.CompletionTokens),
					observability.Int(observability.AttrLLMTokensTotal, response.Usage.TotalTokens),
				)
			}
			span.SetAttributes(attrs...)
			span.SetStatus(observability.StatusOK, "")
			observer.Debug(ctx, "llm send completed", attrs...)

			return response, nil
		}
	}
}
