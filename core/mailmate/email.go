package mailmate

import (
	"fmt"
	"io"
	"strings"
)

// Environment variables set by MailMate when it runs a bundle command.
const (
	EnvSubject     = "MM_SUBJECT"
	EnvTo          = "MM_TO"
	EnvFrom        = "MM_FROM"
	EnvContentType = "MM_CONTENT_TYPE"
)

// DefaultContentType applies when MM_CONTENT_TYPE is unset or empty.
const DefaultContentType = "text/plain"

// EmailContext is the message being replied to.
type EmailContext struct {
	Subject     string
	To          string
	From        string
	ContentType string

	// Body is the decoded thread text. HTML bodies arrive base64 encoded and
	// are decoded by [ReadContext].
	Body string

	// RawLength is the number of bytes read from stdin before decoding.
	RawLength int
}

// IsHTML reports whether the message content type is text/html.
func (e EmailContext) IsHTML() bool {
	return IsHTML(e.ContentType)
}

// ReadContext builds the EmailContext from getenv and the thread on stdin.
// Decoding failures wrap [ErrDecoding].
func ReadContext(getenv func(string) string, stdin io.Reader) (EmailContext, error) {
	email := EmailContext{
		Subject:     getenv(EnvSubject),
		To:          getenv(EnvTo),
		From:        getenv(EnvFrom),
		ContentType: strings.TrimSpace(getenv(EnvContentType)),
	}
	if email.ContentType == "" {
		email.ContentType = DefaultContentType
	}

	raw, err := io.ReadAll(stdin)
	if err != nil {
		return email, fmt.Errorf("reading email from stdin: %w", err)
	}
	email.RawLength = len(raw)

	body, err := DecodeBody(raw, email.ContentType)
	if err != nil {
		return email, err
	}
	email.Body = body

	return email, nil
}
