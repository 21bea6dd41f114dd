package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"heartrisk/internal/platform/logging"
)

func TestNewWritesToFallbackAndFile(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger, closer, err := logging.New("debug", "", &buf)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Named("intake").Error("predict failed", "error", "boom")
	_ = closer.Close()
	if !strings.Contains(buf.String(), "heartrisk.intake") || !strings.Contains(buf.String(), "boom") {
		t.Fatalf("expected named error line, got %q", buf.String())
	}

	path := filepath.Join(t.TempDir(), "logs", "heartrisk.log")
	fileLogger, fileCloser, err := logging.New("bogus", path, nil)
	if err != nil {
		t.Fatalf("new file logger: %v", err)
	}
	fileLogger.Info("started")
	if err := fileCloser.Close(); err != nil {
		t.Fatalf("close log file: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(b), "started") {
		t.Fatalf("expected info line in log file, got %q", string(b))
	}
}
