package draft

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/leofalp/mmdraft/core/client"
	"github.com/leofalp/mmdraft/core/client/middleware"
	"github.com/leofalp/mmdraft/core/config"
	"github.com/leofalp/mmdraft/core/mailmate"
	"github.com/leofalp/mmdraft/internal/utils"
	"github.com/leofalp/mmdraft/providers/ai"
	"github.com/leofalp/mmdraft/providers/observability"
)

// ReplyGenerator turns a prompt into reply text. [client.Client] is the
// production implementation.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, prompt string) (string, error)
}

var _ ReplyGenerator = (*client.Client)(nil)

// Drafter writes a reply draft for one email.
type Drafter struct {
	generator      ReplyGenerator
	observer       observability.Provider
	htmlToMarkdown bool
}

// Option configures a Drafter.
type Option func(*Drafter)

// WithObserver sets where the drafter logs. Defaults to [observability.Nop].
func WithObserver(observer observability.Provider) Option {
	return func(d *Drafter) {
		if observer != nil {
			d.observer = observer
		}
	}
}

// WithHTMLToMarkdown renders HTML threads to Markdown before prompting.
func WithHTMLToMarkdown(enabled bool) Option {
	return func(d *Drafter) {
		d.htmlToMarkdown = enabled
	}
}

// New returns a Drafter asking generator for replies.
func New(generator ReplyGenerator, opts ...Option) *Drafter {
	d := &Drafter{
		generator: generator,
		observer:  observability.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewClient builds the provider client described by cfg: the adapter
// selected by [NewProvider] with the configured model and token budget.
// Spans go to observer. Request logging is added when cfg.RequestLog is
// set and observer exposes a slog.Logger, and a per-request deadline when
// cfg.Timeout is positive.
func NewClient(cfg *config.Config, httpClient *http.Client, observer observability.Provider) (*client.Client, error) {
	provider, err := NewProvider(cfg, httpClient)
	if err != nil {
		return nil, err
	}

	opts := []client.Option{
		client.WithModel(cfg.Model),
		client.WithMaxTokens(cfg.MaxTokens),
	}
	if observer != nil {
		opts = append(opts, client.WithObserver(observer))
	}
	if level, ok := requestLogLevel(cfg.RequestLog); ok {
		if l, hasLogger := observer.(interface{ Logger() *slog.Logger }); hasLogger {
			opts = append(opts, client.WithMiddleware(middleware.NewLoggingMiddleware(l.Logger(), level)))
		}
	}
	if cfg.Timeout > 0 {
		opts = append(opts, client.WithMiddleware(middleware.NewTimeoutMiddleware(cfg.Timeout)))
	}

	return client.New(provider, opts...)
}

func requestLogLevel(name string) (middleware.LogLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "minimal":
		return middleware.LogLevelMinimal, true
	case "standard":
		return middleware.LogLevelStandard, true
	case "verbose":
		return middleware.LogLevelVerbose, true
	default:
		return 0, false
	}
}

// Draft prompts for a reply to email and returns the createMessage document.
func (d *Drafter) Draft(ctx context.Context, email mailmate.EmailContext) (*mailmate.Document, error) {
	ctx, span := d.observer.StartSpan(ctx, observability.SpanDraftReply,
		observability.String(observability.AttrEmailContentType, email.ContentType),
		observability.Int(observability.AttrEmailBodyLength, len(email.Body)),
	)
	defer span.End()

	thread, err := promptThread(email, d.htmlToMarkdown)
	if err != nil {
		d.observer.Warn(ctx, "HTML to Markdown conversion failed, prompting with HTML", observability.Error(err))
		thread = email.Body
	}

	prompt := BuildPrompt(email.To, email.From, thread)
	span.SetAttributes(observability.Int(observability.AttrPromptLength, len(prompt)))

	reply, err := d.generator.GenerateReply(ctx, prompt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(observability.StatusError, "reply generation failed")
		return nil, fmt.Errorf("generating reply: %w", err)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, fmt.Errorf("generating reply: %w: empty reply", ai.ErrResponseShape)
	}
	d.observer.Debug(ctx, "Generated text", observability.String(observability.AttrGeneratedText, reply))

	span.SetStatus(observability.StatusOK, "")
	return mailmate.NewDraftDocument(email, ComposeBody(email, reply)), nil
}

// Invocation is one run of the bundle command.
type Invocation struct {
	Config *config.Config

	// Getenv and Stdin supply the email context. Nil values fall back to
	// os.Getenv and os.Stdin.
	Getenv func(string) string
	Stdin  io.Reader

	Observer observability.Provider

	// HTTPClient overrides the client built from Config.
	HTTPClient *http.Client

	// Generator replaces the provider client built from Config.
	Generator ReplyGenerator
}

// Execute runs the whole pipeline: read the email, select the provider,
// prompt, compose. It is the error-returning core of [Run].
func Execute(ctx context.Context, inv Invocation) (*mailmate.Document, error) {
	observer := inv.Observer
	if observer == nil {
		observer = observability.Nop()
	}
	if inv.Config == nil {
		return nil, fmt.Errorf("%w: no configuration", config.ErrConfiguration)
	}
	cfg := inv.Config

	getenv := inv.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	var stdin io.Reader = os.Stdin
	if inv.Stdin != nil {
		stdin = inv.Stdin
	}

	email, err := mailmate.ReadContext(getenv, stdin)
	if err != nil {
		return nil, err
	}
	observer.Debug(ctx, "Email context",
		observability.String(observability.AttrEmailSubject, email.Subject),
		observability.String(observability.AttrEmailTo, email.To),
		observability.String(observability.AttrEmailFrom, email.From),
		observability.String(observability.AttrEmailContentType, email.ContentType),
		observability.Int(observability.AttrEmailBodyLength, email.RawLength),
	)

	generator := inv.Generator
	if generator == nil {
		httpClient := inv.HTTPClient
		if httpClient == nil {
			if cfg.InsecureSkipVerify {
				observer.Warn(ctx, "TLS certificate verification is disabled by configuration")
			}
			httpClient = utils.NewHTTPClient(utils.HTTPClientOptions{
				InsecureSkipVerify: cfg.InsecureSkipVerify,
				Timeout:            cfg.Timeout,
			})
		}

		c, err := NewClient(cfg, httpClient, observer)
		if err != nil {
			return nil, err
		}
		observer.Info(ctx, "Provider selected",
			observability.String(observability.AttrLLMProvider, cfg.Provider),
			observability.String(observability.AttrLLMModel, cfg.Model),
		)
		generator = c
	}

	drafter := New(generator, WithObserver(observer), WithHTMLToMarkdown(cfg.HTMLToMarkdown))
	return drafter.Draft(ctx, email)
}

// Run executes inv and always returns a document to print: the draft, or a
// notify action describing the failure. The success entry carries the token
// usage collected in an [ai.Overview] while the reply was generated.
func Run(ctx context.Context, inv Invocation) *mailmate.Document {
	overview := &ai.Overview{}
	ctx = overview.ToContext(ctx)

	doc, err := Execute(ctx, inv)
	if err != nil {
		return Fail(ctx, inv.Observer, err)
	}
	if inv.Observer != nil {
		inv.Observer.Info(ctx, "Draft created", usageAttributes(overview)...)
	}
	return doc
}

func usageAttributes(overview *ai.Overview) []observability.Attribute {
	attrs := []observability.Attribute{
		observability.Int(observability.AttrLLMRequests, len(overview.Requests)),
		observability.Int(observability.AttrLLMTokensPrompt, overview.TotalUsage.PromptTokens),
		observability.Int(observability.AttrLLMTokensCompletion, overview.TotalUsage.CompletionTokens),
		observability.Int(observability.AttrLLMTokensTotal, overview.TotalUsage.TotalTokens),
	}
	if last := overview.LastResponse; last != nil {
		attrs = append(attrs,
			observability.String(observability.AttrLLMResponseID, last.Id),
			observability.String(observability.AttrLLMFinishReason, last.FinishReason),
		)
	}
	return attrs
}

// Fail logs err and converts it into the notify document shown to the user.
func Fail(ctx context.Context, observer observability.Provider, err error) *mailmate.Document {
	if observer != nil {
		observer.Error(ctx, "Drafting failed",
			observability.Error(err),
			observability.String(observability.AttrErrorType, ErrorType(err)),
		)
	}
	return mailmate.NewNotifyDocument(NotifyMessage(err))
}

// NotifyMessage is the text shown to the user for err.
func NotifyMessage(err error) string {
	return "Unexpected error: " + err.Error()
}

// ErrorType labels err for the log. Output never distinguishes kinds.
func ErrorType(err error) string {
	switch {
	case errors.Is(err, config.ErrConfiguration), errors.Is(err, ai.ErrMissingAPIKey):
		return "configuration"
	case errors.Is(err, ErrUnsupportedProvider):
		return "unsupported_provider"
	case errors.Is(err, mailmate.ErrDecoding):
		return "decoding"
	default:
		return ai.ErrorType(err)
	}
}
