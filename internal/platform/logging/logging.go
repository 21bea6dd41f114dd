package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	hclog "github.com/hashicorp/go-hclog"
)

// New builds the root logger. An empty path writes to fallback; pass
// io.Discard as fallback when stderr belongs to the terminal UI.
func New(level, path string, fallback io.Writer) (hclog.Logger, io.Closer, error) {
	out := fallback
	var closer io.Closer = nopCloser{}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closer = f
	}
	if out == nil {
		out = io.Discard
	}
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "heartrisk",
		Output: out,
		Level:  lvl,
	})
	return logger, closer, nil
}

// Discard is the logger used when no diagnostics are wanted, e.g. in tests.
func Discard() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel})
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
