package openai

import (
	"context"
	"fmt"
	"net/http"

	"github.com/leofalp/mmdraft/internal/utils"
	"github.com/leofalp/mmdraft/providers/ai"
	"github.com/leofalp/mmdraft/providers/observability"
)

const (
	// Name is the configuration value selecting this provider.
	Name = "openai"

	// DefaultBaseURL is the OpenAI API base URL.
	DefaultBaseURL = "https://api.openai.com/v1"

	chatCompletionsEndpoint = "/chat/completions"
)

// OpenAIProvider implements [ai.Provider] for the OpenAI chat completions API
// and servers compatible with it.
type OpenAIProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// New returns an OpenAIProvider pointed at [DefaultBaseURL].
func New() *OpenAIProvider {
	return &OpenAIProvider{
		baseURL: DefaultBaseURL,
		client:  &http.Client{},
	}
}

// Name implements [ai.Provider].
func (p *OpenAIProvider) Name() string {
	return Name
}

// WithAPIKey sets the API key sent as a bearer token.
func (p *OpenAIProvider) WithAPIKey(apiKey string) ai.Provider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL sets the base URL for the API. An empty value is ignored.
func (p *OpenAIProvider) WithBaseURL(baseURL string) ai.Provider {
	if baseURL != "" {
		p.baseURL = baseURL
	}
	return p
}

// WithHttpClient sets a custom HTTP client. A nil client is ignored.
func (p *OpenAIProvider) WithHttpClient(httpClient *http.Client) ai.Provider {
	if httpClient != nil {
		p.client = httpClient
	}
	return p
}

// SendMessage implements [ai.Provider].
func (p *OpenAIProvider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	span := observability.SpanFromContext(ctx)
	url := p.baseURL + chatCompletionsEndpoint

	if span != nil {
		span.AddEvent(observability.EventLLMRequestStart)
		span.SetAttributes(
			observability.String(observability.AttrLLMProvider, Name),
			observability.String(observability.AttrLLMEndpoint, url),
			observability.String(observability.AttrLLMModel, request.Model),
		)
		defer span.AddEvent(observability.EventLLMRequestEnd)
	}

	if p.apiKey == "" {
		return nil, fmt.Errorf("openai: %w", ai.ErrMissingAPIKey)
	}

	_, resp, err := utils.DoPostSync[chatCompletionResponse](ctx, p.client, url, p.apiKey, requestFromGeneric(request))
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}

	result, err := responseToGeneric(*resp)
	if err != nil {
		return nil, err
	}
	if result.Model == "" {
		result.Model = request.Model
	}

	if span != nil {
		span.SetAttributes(
			observability.String(observability.AttrLLMResponseID, result.Id),
			observability.String(observability.AttrLLMFinishReason, result.FinishReason),
		)
		if result.Usage != nil {
			span.SetAttributes(observability.Int(observability.AttrLLMTokensTotal, result.Usage.TotalTokens))
		}
	}

	return result, nil
}
