package anthropic

import (
	"errors"
	"testing"

	"github.com/leofalp/mmdraft/providers/ai"
)

func TestRequestToAnthropic_Defaults(t *testing.T) {
	req := requestToAnthropic(ai.ChatRequest{
		Model:    "claude",
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "hi"}},
	})

	if req.MaxTokens != defaultMaxTokens {
		t.Errorf("expected default max tokens %d, got %d", defaultMaxTokens, req.MaxTokens)
	}
	if len(req.Messages) != 1 || req.Messages[0].Role != "user" || req.Messages[0].Content != "hi" {
		t.Errorf("unexpected messages %+v", req.Messages)
	}
}

func TestRequestToAnthropic_MaxTokens(t *testing.T) {
	tests := []struct {
		name   string
		config *ai.GenerationConfig
		want   int
	}{
		{name: "configured", config: &ai.GenerationConfig{MaxTokens: 200}, want: 200},
		{name: "zero falls back", config: &ai.GenerationConfig{}, want: defaultMaxTokens},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := requestToAnthropic(ai.ChatRequest{
				Model:            "claude",
				Messages:         []ai.Message{{Role: ai.RoleUser, Content: "hi"}},
				GenerationConfig: tt.config,
			})
			if req.MaxTokens != tt.want {
				t.Errorf("expected max tokens %d, got %d", tt.want, req.MaxTokens)
			}
		})
	}
}

func TestAnthropicToGeneric_SkipsNonTextBlocks(t *testing.T) {
	resp, err := anthropicToGeneric(anthropicResponse{
		Content: []responseContentBlock{
			{Type: "thinking"},
			{Type: "text", Text: "reply"},
			{Type: "text", Text: "ignored"},
		},
		StopReason: "max_tokens",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "reply" {
		t.Errorf("expected the first text block, got %q", resp.Content)
	}
	if resp.FinishReason != "length" {
		t.Errorf("expected length finish reason, got %q", resp.FinishReason)
	}
}

func TestAnthropicToGeneric_NoText(t *testing.T) {
	_, err := anthropicToGeneric(anthropicResponse{StopReason: "refusal"})
	if !errors.Is(err, ai.ErrResponseShape) {
		t.Errorf("expected ErrResponseShape, got %v", err)
	}
}

func TestMapStopReason(t *testing.T) {
	tests := map[string]string{
		"end_turn":      "stop",
		"stop_sequence": "stop",
		"max_tokens":    "length",
		"refusal":       "content_filter",
		"":              "stop",
	}
	for input, want := range tests {
		if got := mapStopReason(input); got != want {
			t.Errorf("mapStopReason(%q) = %q, want %q", input, got, want)
		}
	}
}
