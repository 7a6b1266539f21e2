package draft

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/leofalp/mmdraft/core/config"
	"github.com/leofalp/mmdraft/providers/ai"
	"github.com/leofalp/mmdraft/providers/ai/anthropic"
	"github.com/leofalp/mmdraft/providers/ai/openai"
)

// ErrUnsupportedProvider is returned for an ApiProvider other than
// "anthropic" or "openai".
var ErrUnsupportedProvider = errors.New("unsupported API provider")

// NewProvider returns the adapter named by cfg.Provider, authenticated with
// cfg.APIKey and sending through httpClient. A nil httpClient keeps the
// adapter's default client.
func NewProvider(cfg *config.Config, httpClient *http.Client) (ai.Provider, error) {
	var provider ai.Provider
	switch cfg.Provider {
	case anthropic.Name:
		provider = anthropic.New()
	case openai.Name:
		provider = openai.New()
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, cfg.Provider)
	}

	return provider.
		WithAPIKey(cfg.APIKey).
		WithBaseURL(cfg.BaseURL).
		WithHttpClient(httpClient), nil
}
