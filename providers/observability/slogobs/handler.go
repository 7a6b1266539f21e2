package slogobs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"sync"
)

// Handler is a slog.Handler that writes one record per line in a compact,
// pretty or JSON layout. All handlers derived through WithAttrs/WithGroup
// share the same output lock, so records from one process never interleave
// inside a line.
type Handler struct {
	format Format
	level  slog.Leveler
	output io.Writer
	colors bool
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string
}

// HandlerOptions configures a Handler.
type HandlerOptions struct {
	// Format specifies the output format (compact, pretty, json).
	Format Format
	// Level is the minimum log level to output.
	Level slog.Leveler
	// Output is where logs are written (defaults to os.Stderr; stdout
	// belongs to the action document).
	Output io.Writer
	// Colors enables ANSI color codes (only for compact/pretty formats).
	Colors bool
}

// NewHandler creates a new Handler with the given options.
func NewHandler(opts *HandlerOptions) *Handler {
	if opts == nil {
		opts = &HandlerOptions{}
	}
	output := opts.Output
	if output == nil {
		output = os.Stderr
	}
	format := opts.Format
	if format == "" {
		format = FormatCompact
	}
	var level slog.Leveler = slog.LevelInfo
	if opts.Level != nil {
		level = opts.Level
	}

	// Auto-detect TTY for colors if not explicitly set
	colors := opts.Colors
	if !colors && format != FormatJSON {
		if f, ok := output.(*os.File); ok {
			colors = isTerminal(f)
		}
	}

	return &Handler{
		format: format,
		level:  level,
		output: output,
		colors: colors,
		mu:     &sync.Mutex{},
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes a log record.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var line []byte
	var err error

	switch h.format {
	case FormatPretty:
		line = h.formatPretty(r)
	case FormatJSON:
		line, err = h.formatJSON(r)
	default:
		line = h.formatCompact(r)
	}
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.output.Write(line)
	return err
}

// WithAttrs returns a new Handler with additional attributes.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), h.qualify(attrs)...)
	return &clone
}

// WithGroup returns a new Handler with a group name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}

// formatCompact renders a single line:
// "2006-01-02 15:04:05 LEVEL Message -> {"key":"value"}"
func (h *Handler) formatCompact(r slog.Record) []byte {
	buf := make([]byte, 0, 256)
	buf = append(buf, r.Time.Format("2006-01-02 15:04:05")...)
	buf = append(buf, ' ')
	buf = h.appendLevel(buf, r.Level, "%5s")
	buf = append(buf, ' ')
	buf = append(buf, r.Message...)

	if attrs := h.collectAttrs(r); len(attrs) > 0 {
		buf = append(buf, " -> "...)
		encoded, err := json.Marshal(attrs)
		if err != nil {
			buf = append(buf, "[json-error]"...)
		} else {
			buf = append(buf, encoded...)
		}
	}

	return append(buf, '\n')
}

// formatPretty renders the message on one line and each attribute, sorted by
// key, on its own indented line below it.
func (h *Handler) formatPretty(r slog.Record) []byte {
	buf := make([]byte, 0, 256)
	buf = append(buf, r.Time.Format("2006-01-02 15:04:05")...)
	buf = append(buf, ' ')
	buf = h.appendLevel(buf, r.Level, "%-5s")
	buf = append(buf, "  "...)
	buf = append(buf, r.Message...)
	buf = append(buf, '\n')

	attrs := h.collectAttrs(r)
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for i, key := range keys {
		branch := "|- "
		if i == len(keys)-1 {
			branch = "`- "
		}
		buf = append(buf, "                    "...)
		buf = append(buf, branch...)
		buf = append(buf, key...)
		buf = append(buf, ": "...)
		buf = append(buf, fmt.Sprintf("%v", attrs[key])...)
		buf = append(buf, '\n')
	}

	return buf
}

// formatJSON renders one JSON object per line with time, level and msg merged
// alongside the attributes.
func (h *Handler) formatJSON(r slog.Record) ([]byte, error) {
	data := h.collectAttrs(r)
	data["time"] = r.Time.Format("2006-01-02T15:04:05.000Z07:00")
	data["level"] = levelString(r.Level)
	data["msg"] = r.Message

	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return append(encoded, '\n'), nil
}

func (h *Handler) appendLevel(buf []byte, level slog.Level, layout string) []byte {
	text := fmt.Sprintf(layout, levelString(level))
	if !h.colors {
		return append(buf, text...)
	}
	buf = append(buf, colorForLevel(level)...)
	buf = append(buf, text...)
	return append(buf, colorReset...)
}

// collectAttrs merges the handler's stored attributes with the record's,
// record attributes winning on key collisions.
func (h *Handler) collectAttrs(r slog.Record) map[string]interface{} {
	attrs := make(map[string]interface{}, len(h.attrs)+r.NumAttrs())

	for _, attr := range h.attrs {
		attrs[attr.Key] = attrValue(attr.Value)
	}

	r.Attrs(func(attr slog.Attr) bool {
		for _, qualified := range h.qualify([]slog.Attr{attr}) {
			attrs[qualified.Key] = attrValue(qualified.Value)
		}
		return true
	})

	return attrs
}

// qualify prefixes attribute keys with the active group names.
func (h *Handler) qualify(attrs []slog.Attr) []slog.Attr {
	if len(h.groups) == 0 {
		return attrs
	}
	prefix := ""
	for _, group := range h.groups {
		prefix += group + "."
	}
	out := make([]slog.Attr, len(attrs))
	for i, attr := range attrs {
		out[i] = slog.Attr{Key: prefix + attr.Key, Value: attr.Value}
	}
	return out
}

// attrValue resolves LogValuers and renders durations and errors as strings so
// they survive JSON encoding in a readable form.
func attrValue(v slog.Value) interface{} {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindGroup:
		group := make(map[string]interface{}, len(v.Group()))
		for _, a := range v.Group() {
			group[a.Key] = attrValue(a.Value)
		}
		return group
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
	}
	return v.Any()
}

// levelString maps TRACE (below Debug), DEBUG, INFO, WARN and ERROR.
func levelString(level slog.Level) string {
	switch {
	case level < slog.LevelDebug:
		return "TRACE"
	case level < slog.LevelInfo:
		return "DEBUG"
	case level < slog.LevelWarn:
		return "INFO"
	case level < slog.LevelError:
		return "WARN"
	default:
		return "ERROR"
	}
}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGreen  = "\033[32m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
)

func colorForLevel(level slog.Level) string {
	switch {
	case level < slog.LevelDebug:
		return colorGray
	case level < slog.LevelInfo:
		return colorBlue
	case level < slog.LevelWarn:
		return colorGreen
	case level < slog.LevelError:
		return colorYellow
	default:
		return colorRed
	}
}

// isTerminal checks whether the given file is connected to a terminal device.
func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
