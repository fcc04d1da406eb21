package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"transmute/internal/config"
	"transmute/internal/logging"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	_, err := logging.New(logging.Options{Format: "xml"})
	if err == nil {
		t.Fatal("unknown format accepted")
	}
}

func TestConsoleOutputFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	logger, err := logging.New(logging.Options{
		Level:  "info",
		Format: "console",
		Paths:  []string{path},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("run started", "files", 3, "src", "/some dir")
	logger.Debug("hidden at info level")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "INFO run started files=3") {
		t.Fatalf("unexpected console line: %q", out)
	}
	if !strings.Contains(out, `src="/some dir"`) {
		t.Fatalf("value with spaces not quoted: %q", out)
	}
	if strings.Contains(out, "hidden at info level") {
		t.Fatalf("debug line written at info level: %q", out)
	}
}

func TestJSONOutputLowercasesLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	logger, err := logging.New(logging.Options{
		Level:  "debug",
		Format: "json",
		Paths:  []string{path},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Warn("careful")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"level":"warn"`) || !strings.Contains(out, `"ts":`) {
		t.Fatalf("unexpected json line: %q", out)
	}
}

func TestNewFromConfigDebugForcesDebugLevel(t *testing.T) {
	cfg := config.Default()
	cfg.Debug = true
	cfg.Logging.Dir = t.TempDir()

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	logger.Debug("visible in debug")

	data, err := os.ReadFile(filepath.Join(cfg.Logging.Dir, "transmute.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "visible in debug") {
		t.Fatalf("debug line missing: %q", data)
	}
}
