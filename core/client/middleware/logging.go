package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/leofalp/mmdraft/core/client"
	"github.com/leofalp/mmdraft/internal/utils"
	"github.com/leofalp/mmdraft/providers/ai"
	"github.com/leofalp/mmdraft/providers/observability"
)

// LogLevel controls how much of a provider call ends up in the log file.
type LogLevel int

const (
	// LogLevelMinimal logs the model, the duration and token counts.
	LogLevelMinimal LogLevel = iota

	// LogLevelStandard adds the prompt length and the finish reason.
	LogLevelStandard

	// LogLevelVerbose adds the prompt and the reply, both truncated.
	// Prompts carry the whole email thread.
	LogLevelVerbose
)

const previewLen = 500

// NewLoggingMiddleware writes one entry before and one after each provider
// call. logger must not be nil.
func NewLoggingMiddleware(logger *slog.Logger, level LogLevel) client.Middleware {
	return func(next client.SendFunc) client.SendFunc {
		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
			logger.LogAttrs(ctx, slog.LevelInfo, "llm send", requestAttrs(request, level)...)

			start := time.Now()
			response, err := next(ctx, request)
			elapsed := slog.Duration(observability.AttrDuration, time.Since(start))

			if err != nil {
				logger.LogAttrs(ctx, slog.LevelError, "llm send failed",
					slog.String(observability.AttrLLMModel, request.Model),
					elapsed,
					slog.String(observability.AttrError, err.Error()),
					slog.String(observability.AttrErrorType, ai.ErrorType(err)),
				)
				return nil, err
			}

			attrs := append([]slog.Attr{elapsed}, responseAttrs(response, level)...)
			logger.LogAttrs(ctx, slog.LevelInfo, "llm send completed", attrs...)
			return response, nil
		}
	}
}

func requestAttrs(request ai.ChatRequest, level LogLevel) []slog.Attr {
	attrs := []slog.Attr{slog.String(observability.AttrLLMModel, request.Model)}
	if level < LogLevelStandard {
		return attrs
	}

	prompt := ""
	for _, m := range request.Messages {
		if m.Role == ai.RoleUser {
			prompt = m.Content
		}
	}
	attrs = append(attrs, slog.Int(observability.AttrPromptLength, len(prompt)))

	if level >= LogLevelVerbose {
		attrs = append(attrs, slog.String("prompt", utils.TruncateString(prompt, previewLen)))
	}
	return attrs
}

func responseAttrs(response *ai.ChatResponse, level LogLevel) []slog.Attr {
	if response == nil {
		return nil
	}

	attrs := []slog.Attr{slog.String(observability.AttrLLMModel, response.Model)}
	if u := response.Usage; u != nil {
		attrs = append(attrs,
			slog.Int(observability.AttrLLMTokensPrompt, u.PromptTokens),
			slog.Int(observability.AttrLLMTokensCompletion, u.CompletionTokens),
			slog.Int(observability.AttrLLMTokensTotal, u.TotalTokens),
		)
	}
	if level >= LogLevelStandard && response.FinishReason != "" {
		attrs = append(attrs, slog.String(observability.AttrLLMFinishReason, response.FinishReason))
	}
	if level >= LogLevelVerbose {
		attrs = append(attrs, slog.String(observability.AttrGeneratedText, utils.TruncateString(response.Content, previewLen)))
	}
	return attrs
}
