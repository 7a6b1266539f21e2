package slogobs

import (
	"fmt"
	"io"
	"os"
)

// OpenLogFile opens path for appending, creating it if needed. Several hook
// processes may append to the same file; each record is a single write.
func OpenLogFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	return f, nil
}

// OutputOrStderr opens path with [OpenLogFile] and falls back to stderr when
// path is empty or cannot be opened. The returned closer is always safe to call.
func OutputOrStderr(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stderr, func() error { return nil }, nil
	}
	f, err := OpenLogFile(path)
	if err != nil {
		return os.Stderr, func() error { return nil }, err
	}
	return f, f.Close, nil
}
