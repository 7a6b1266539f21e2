package anthropic

/*
	ANTHROPIC MESSAGES API - REQUEST TYPES
*/

// anthropicRequest represents the request body for Anthropic's Messages API.
type anthropicRequest struct {
	Model     string             `json:"model"`
	Messages  []anthropicMessage `json:"messages"`
	MaxTokens int                `json:"max_tokens"` // Required by Anthropic on every request
}

// anthropicMessage represents a single message in the conversation. Content
// is sent in the plain-string form; the draft prompt is text only.
type anthropicMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

/*
	ANTHROPIC MESSAGES API - RESPONSE TYPES
*/

// anthropicResponse represents the response from Anthropic's Messages API.
type anthropicResponse struct {
	ID           string                 `json:"id"`
	Type         string                 `json:"type"`    // "message"
	Role         string                 `json:"role"`    // "assistant"
	Content      []responseContentBlock `json:"content"` // Response content blocks
	Model        string                 `json:"model"`
	StopReason   string                 `json:"stop_reason"`
	StopSequence string                 `json:"stop_sequence,omitempty"`
	Usage        anthropicUsage         `json:"usage"`
}

// responseContentBlock is one entry of the response content array. Only
// "text" blocks carry reply text; "thinking" and other block types are skipped.
type responseContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// anthropicUsage reports token consumption for a single request.
type anthropicUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}
