package openai

import (
	"fmt"

	"github.com/leofalp/mmdraft/internal/utils"
	"github.com/leofalp/mmdraft/providers/ai"
)

// requestFromGeneric converts an ai.ChatRequest into the chat completions
// body. max_tokens is omitted when the request sets no limit.
func requestFromGeneric(request ai.ChatRequest) chatCompletionRequest {
	req := chatCompletionRequest{
		Model:    request.Model,
		Messages: make([]chatMessage, 0, len(request.Messages)),
	}

	for _, msg := range request.Messages {
		req.Messages = append(req.Messages, chatMessage{Role: string(msg.Role), Content: msg.Content})
	}

	if cfg := request.GenerationConfig; cfg != nil && cfg.MaxTokens > 0 {
		req.MaxTokens = utils.Ptr(cfg.MaxTokens)
	}

	return req
}

// responseToGeneric reads choices[0].message.content into an ai.ChatResponse.
func responseToGeneric(response chatCompletionResponse) (*ai.ChatResponse, error) {
	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("%w: openai response has no choices", ai.ErrResponseShape)
	}

	choice := response.Choices[0]
	if choice.Message.Content == nil {
		if choice.Message.Refusal != "" {
			return nil, fmt.Errorf("%w: openai refused the request: %s", ai.ErrResponseShape, choice.Message.Refusal)
		}
		return nil, fmt.Errorf("%w: openai choice has no message content (finish_reason %q)", ai.ErrResponseShape, choice.FinishReason)
	}

	result := &ai.ChatResponse{
		Id:           response.ID,
		Model:        response.Model,
		Content:      *choice.Message.Content,
		FinishReason: choice.FinishReason,
	}
	if response.Usage != nil {
		result.Usage = &ai.Usage{
			PromptTokens:     response.Usage.PromptTokens,
			CompletionTokens: response.Usage.CompletionTokens,
			TotalTokens:      response.Usage.TotalTokens,
		}
	}

	return result, nil
}
