// Command mmdraft is the MailMate bundle command that drafts a reply to the
// selected message with an LLM.
//
// MailMate passes the message through MM_SUBJECT, MM_TO, MM_FROM,
// MM_CONTENT_TYPE and stdin. mmdraft prints one action document on stdout
// and always exits 0; failures are reported as a notify action.
//
// MMDRAFT_CONFIG overrides the config.ini location.
//
// Outside MailMate, "mmdraft set-key <item>" and "mmdraft delete-key <item>"
// manage the keyring item an "ApiKey = keyring:<item>" setting refers to.
// Only those maintenance commands exit non-zero.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/google/uuid"

	"github.com/leofalp/mmdraft/core/config"
	"github.com/leofalp/mmdraft/core/draft"
	"github.com/leofalp/mmdraft/core/mailmate"
	"github.com/leofalp/mmdraft/providers/observability"
	"github.com/leofalp/mmdraft/providers/observability/slogobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(os.Getenv, openKeyring).ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// run performs one invocation and writes exactly one document to stdout.
func run(ctx context.Context, getenv func(string) string, stdin io.Reader, stdout io.Writer) {
	cfg, cfgErr := config.Load(getenv("MMDRAFT_CONFIG"))

	observer, closeLog := newObserver(cfg, uuid.NewString())
	defer func() { _ = closeLog() }()

	observer.Info(ctx, "Script started", observability.String("go_version", runtime.Version()))

	var doc *mailmate.Document
	if cfgErr != nil {
		doc = draft.Fail(ctx, observer, cfgErr)
	} else {
		observer.Debug(ctx, "Configuration loaded", observability.Attribute{Key: "config", Value: *cfg})
		doc = draft.Run(ctx, draft.Invocation{
			Config:   cfg,
			Getenv:   getenv,
			Stdin:    stdin,
			Observer: observer,
		})
	}

	if err := doc.Encode(stdout); err != nil {
		observer.Error(ctx, "Writing action document failed", observability.Error(err))
	}
	observer.Info(ctx, "Script completed")
}

// newObserver logs to the configured file, or to the defaults when the
// configuration could not be loaded. Logs never go to stdout.
func newObserver(cfg *config.Config, invocationID string) (*slogobs.Observer, func() error) {
	logFile, level, format := "/tmp/gpt_assist.log", "DEBUG", "compact"
	if cfg != nil {
		logFile, level, format = cfg.LogFile, cfg.LogLevel, cfg.LogFormat
	}

	output, closeLog, openErr := slogobs.OutputOrStderr(logFile)
	observer := slogobs.New(
		slogobs.WithOutput(output),
		slogobs.WithLevel(slogobs.ParseLogLevel(level)),
		slogobs.WithFormat(slogobs.ParseFormat(format)),
		slogobs.WithAttrs(slog.String(observability.AttrInvocationID, invocationID)),
	)
	if openErr != nil {
		observer.Warn(context.Background(), "Log file unavailable, logging to stderr", observability.Error(openErr))
	}

	return observer, closeLog
}
