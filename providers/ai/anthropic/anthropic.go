package anthropic

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
	Name = "anthropic"

	// DefaultBaseURL is the canonical base URL for Anthropic's Messages API.
	DefaultBaseURL = "https://api.anthropic.com/v1"

	// messagesEndpoint is the path for the Messages API endpoint.
	messagesEndpoint = "/messages"

	// anthropicVersion is the required anthropic-version header value.
	// Anthropic uses this to version-lock response formats independently of the URL.
	anthropicVersion = "2023-06-01"
)

// AnthropicProvider implements [ai.Provider] for Anthropic's Messages API.
type AnthropicProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// New returns an AnthropicProvider pointed at [DefaultBaseURL] with a default
// HTTP client. Configure it with the With* methods.
func New() *AnthropicProvider {
	return &AnthropicProvider{
		baseURL: DefaultBaseURL,
		client:  &http.Client{},
	}
}

// Name implements [ai.Provider].
func (p *AnthropicProvider) Name() string {
	return Name
}

// WithAPIKey sets the API key sent in the X-Api-Key header.
func (p *AnthropicProvider) WithAPIKey(apiKey string) ai.Provider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL overrides the API base URL. An empty value keeps the current one.
func (p *AnthropicProvider) WithBaseURL(baseURL string) ai.Provider {
	if baseURL != "" {
		p.baseURL = baseURL
	}
	return p
}

// WithHttpClient replaces the HTTP client used for API calls.
func (p *AnthropicProvider) WithHttpClient(httpClient *http.Client) ai.Provider {
	if httpClient != nil {
		p.client = httpClient
	}
	return p
}

// buildHeaders returns the authentication headers. Anthropic authenticates
// with X-Api-Key, never with a Bearer token.
func (p *AnthropicProvider) buildHeaders() []utils.HeaderOption {
	return []utils.HeaderOption{
		{Key: "X-Api-Key", Value: p.apiKey},
		{Key: "anthropic-version", Value: anthropicVersion},
	}
}

// SendMessage implements [ai.Provider]. It fails before any network call when
// the API key is unset.
func (p *AnthropicProvider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	span := observability.SpanFromContext(ctx)
	url := p.baseURL + messagesEndpoint

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
		return nil, fmt.Errorf("anthropic: %w", ai.ErrMissingAPIKey)
	}

	// Empty bearer key: DoPostSync must not add an Authorization header.
	_, resp, err := utils.DoPostSync[anthropicResponse](ctx, p.client, url, "", requestToAnthropic(request), p.buildHeaders()...)
	if err != nil {
		return nil, fmt.Errorf("anthropic: %w", err)
	}

	result, err := anthropicToGeneric(*resp)
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
			observability.Int(observability.AttrLLMTokensTotal, result.Usage.TotalTokens),
		)
	}

	return result, nil
}
