package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogPathEnv(t *testing.T) {
	t.Setenv("MICRONAUT_LOG_FILE", "/tmp/m.log")
	got, err := logPath()
	if err != nil {
		t.Fatalf("logPath error: %v", err)
	}
	if got != "/tmp/m.log" {
		t.Fatalf("logPath = %q, want %q", got, "/tmp/m.log")
	}

	t.Setenv("MICRONAUT_LOG_FILE", "")
	t.Setenv("MICRONAUT_CONFIG_HOME", "/tmp/cfg")
	got, _ = logPath()
	if got != "/tmp/cfg/micronaut.log" {
		t.Fatalf("logPath = %q, want %q", got, "/tmp/cfg/micronaut.log")
	}

	t.Setenv("MICRONAUT_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	got, _ = logPath()
	if got != "/tmp/xdg/micronaut/micronaut.log" {
		t.Fatalf("logPath = %q, want %q", got, "/tmp/xdg/micronaut/micronaut.log")
	}
}

func TestInitWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "micronaut.log")
	t.Setenv("MICRONAUT_LOG_FILE", path)
	if err := Init(true); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	Debug("page loaded", "url", "/index.mu")
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "page loaded") || !strings.Contains(string(data), "/index.mu") {
		t.Fatalf("log = %q, want debug entry", data)
	}

	// no-op after Close
	Info("dropped")
}
