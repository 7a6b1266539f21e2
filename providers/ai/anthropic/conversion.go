package anthropic

import (
	"fmt"

	"github.com/leofalp/mmdraft/providers/ai"
)

// defaultMaxTokens applies when the request carries no generation config.
const defaultMaxTokens = 1000

// requestToAnthropic converts an ai.ChatRequest into the Messages API body.
// max_tokens is mandatory for Anthropic, so it falls back to defaultMaxTokens.
func requestToAnthropic(request ai.ChatRequest) anthropicRequest {
	req := anthropicRequest{
		Model:     request.Model,
		MaxTokens: defaultMaxTokens,
	}

	for _, msg := range request.Messages {
		req.Messages = append(req.Messages, anthropicMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	if cfg := request.GenerationConfig; cfg != nil && cfg.MaxTokens > 0 {
		req.MaxTokens = cfg.MaxTokens
	}

	return req
}

// anthropicToGeneric maps the Messages API response to ai.ChatResponse. The
// reply is the first text block, which is content[0] for plain requests.
func anthropicToGeneric(response anthropicResponse) (*ai.ChatResponse, error) {
	text, ok := firstText(response.Content)
	if !ok {
		return nil, fmt.Errorf("%w: anthropic response has no text content (stop_reason %q)", ai.ErrResponseShape, response.StopReason)
	}

	return &ai.ChatResponse{
		Id:           response.ID,
		Model:        response.Model,
		Content:      text,
		FinishReason: mapStopReason(response.StopReason),
		Usage: &ai.Usage{
			PromptTokens:     response.Usage.InputTokens,
			CompletionTokens: response.Usage.OutputTokens,
			TotalTokens:      response.Usage.InputTokens + response.Usage.OutputTokens,
		},
	}, nil
}

func firstText(blocks []responseContentBlock) (string, bool) {
	for _, block := range blocks {
		if block.Type == "text" {
			return block.Text, true
		}
	}
	return "", false
}

// mapStopReason translates Anthropic stop reasons into the OpenAI-style
// finish reasons used by ai.ChatResponse.
func mapStopReason(stopReason string) string {
	switch stopReason {
	case "max_tokens":
		return "length"
	case "refusal":
		return "content_filter"
	default:
		return "stop"
	}
}
