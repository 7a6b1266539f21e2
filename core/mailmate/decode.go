package mailmate

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/emersion/go-message/charset"
)

// ErrDecoding marks a thread body that is not valid base64 or UTF-8 text.
var ErrDecoding = errors.New("decoding error")

// IsHTML reports whether contentType starts with "text/html". The match is
// exact, so "Text/HTML" is treated as plain text the way MailMate's own
// bundle scripts treat it.
func IsHTML(contentType string) bool {
	return strings.HasPrefix(contentType, "text/html")
}

// DecodeBody turns the bytes MailMate wrote on stdin into text. HTML bodies
// are base64 decoded first; line breaks inside the base64 are ignored.
// Valid UTF-8 is returned unchanged whatever the charset parameter says.
// Only bytes that are not UTF-8 are transcoded from the declared charset.
func DecodeBody(raw []byte, contentType string) (string, error) {
	data := raw
	if IsHTML(contentType) {
		decoded, err := decodeBase64(raw)
		if err != nil {
			return "", err
		}
		data = decoded
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	label := charsetLabel(contentType)
	if label == "" {
		return "", fmt.Errorf("%w: body is not valid UTF-8", ErrDecoding)
	}
	transcoded, err := transcode(data, label)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(transcoded) {
		return "", fmt.Errorf("%w: body is not valid %s", ErrDecoding, label)
	}
	return string(transcoded), nil
}

func decodeBase64(raw []byte) ([]byte, error) {
	compact := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)

	decoded := make([]byte, base64.StdEncoding.DecodedLen(len(compact)))
	n, err := base64.StdEncoding.Decode(decoded, compact)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64 body: %w", ErrDecoding, err)
	}
	return decoded[:n], nil
}

// charsetLabel returns the charset parameter of contentType, or "" when it
// is absent or names UTF-8 or US-ASCII.
func charsetLabel(contentType string) string {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	label := strings.ToLower(strings.TrimSpace(params["charset"]))
	switch label {
	case "", "utf-8", "utf8", "us-ascii", "ascii":
		return ""
	}
	return label
}

func transcode(data []byte, label string) ([]byte, error) {
	reader, err := charset.Reader(label, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecoding, err)
	}
	out, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: transcoding from %s: %w", ErrDecoding, label, err)
	}
	return out, nil
}
