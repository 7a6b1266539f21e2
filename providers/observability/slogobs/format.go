package slogobs

import "strings"

// Format represents the output format for logs.
type Format string

const (
	// FormatCompact is a single-line format with JSON attributes (default).
	// Example: 2025-11-03 10:40:35 DEBUG Message -> {"key":"value"}
	FormatCompact Format = "compact"

	// FormatPretty is a multi-line format with indented attributes.
	FormatPretty Format = "pretty"

	// FormatJSON is one JSON object per line.
	// Example: {"time":"2025-11-03T10:40:35.000Z","level":"DEBUG","msg":"Message","key":"value"}
	FormatJSON Format = "json"
)

// ParseFormat parses a format string and returns the corresponding Format.
// If the format is invalid, it returns FormatCompact (default).
func ParseFormat(s string) Format {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "pretty":
		return FormatPretty
	case "json":
		return FormatJSON
	default:
		return FormatCompact
	}
}

// String returns the string representation of the Format.
func (f Format) String() string {
	return string(f)
}
