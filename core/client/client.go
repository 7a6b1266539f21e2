package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/leofalp/mmdraft/providers/ai"
	"github.com/leofalp/mmdraft/providers/observability"
)

// DefaultMaxTokens is the completion budget used when [WithMaxTokens] is not given.
const DefaultMaxTokens = 1000

// Client turns a prompt into a reply through a single provider round trip.
// It is immutable after [New] and safe to reuse.
type Client struct {
	provider  ai.Provider
	model     string
	maxTokens int
	observer  observability.Provider
	send      SendFunc
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	model       string
	maxTokens   int
	middlewares []Middleware
	observer    observability.Provider
}

// WithModel sets the model identifier sent with every request.
func WithModel(model string) Option {
	return func(o *clientOptions) {
		o.model = model
	}
}

// WithMaxTokens sets the completion budget. Non-positive values keep
// [DefaultMaxTokens].
func WithMaxTokens(maxTokens int) Option {
	return func(o *clientOptions) {
		if maxTokens > 0 {
			o.maxTokens = maxTokens
		}
	}
}

// WithMiddleware appends middlewares to the send chain. The first one given
// is the outermost.
func WithMiddleware(middlewares ...Middleware) Option {
	return func(o *clientOptions) {
		o.middlewares = append(o.middlewares, middlewares...)
	}
}

// WithObserver enables tracing and logging of every provider call. The
// observability middleware is installed outermost so it sees the final outcome.
func WithObserver(observer observability.Provider) Option {
	return func(o *clientOptions) {
		o.observer = observer
	}
}

// New builds a Client around provider.
func New(provider ai.Provider, opts ...Option) (*Client, error) {
	if provider == nil {
		return nil, errors.New("client: provider must not be nil")
	}

	options := clientOptions{maxTokens: DefaultMaxTokens}
	for _, opt := range opts {
		opt(&options)
	}

	middlewares := options.middlewares
	if options.observer != nil {
		middlewares = append([]Middleware{NewObservabilityMiddleware(options.observer, options.model)}, middlewares...)
	}

	return &Client{
		provider:  provider,
		model:     options.model,
		maxTokens: options.maxTokens,
		observer:  options.observer,
		send:      buildSendChain(provider, middlewares),
	}, nil
}

// Provider returns the underlying provider.
func (c *Client) Provider() ai.Provider {
	return c.provider
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// GenerateReply sends prompt as a single user message and returns the reply
// with surrounding whitespace removed. A blank reply is reported as
// [ai.ErrResponseShape]. When ctx carries an [ai.Overview] the exchange is
// recorded in it.
func (c *Client) GenerateReply(ctx context.Context, prompt string) (string, error) {
	request := ai.ChatRequest{
		Model:            c.model,
		Messages:         []ai.Message{{Role: ai.RoleUser, Content: prompt}},
		GenerationConfig: &ai.GenerationConfig{MaxTokens: c.maxTokens},
	}

	overview := ai.OverviewFromContext(ctx)
	if overview != nil {
		overview.AddRequest(&request)
	}

	response, err := c.send(ctx, request)
	if err != nil {
		return "", err
	}
	if response == nil {
		return "", fmt.Errorf("%s: %w: nil response", c.provider.Name(), ai.ErrResponseShape)
	}
	if overview != nil {
		overview.AddResponse(response)
	}

	reply := strings.TrimSpace(response.Content)
	if reply == "" {
		return "", fmt.Errorf("%s: %w: empty reply (finish_reason %q)", c.provider.Name(), ai.ErrResponseShape, response.FinishReason)
	}

	return reply, nil
}
