// internal/logging/logging_test.go
package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pilot.log")

	log, sync, err := New(Config{File: path, Level: "info", MaxSizeMB: 1})
	if err != nil {
		t.Fatalf("New err=%v", err)
	}

	log.Debugw("hidden")
	log.Infow("lander link ok", "bytes", 42)
	sync()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(raw)
	if !strings.Contains(out, "lander link ok") || !strings.Contains(out, `"bytes":42`) {
		t.Fatalf("missing entry:\n%s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug entry written at info level:\n%s", out)
	}
}

func TestNew_RejectsBadLevel(t *testing.T) {
	if _, _, err := New(Config{Level: "loud"}); err == nil {
		t.Fatalf("expected error, got nil")
	}
}
