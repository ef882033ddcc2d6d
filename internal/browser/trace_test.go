package browser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kobzarvs/micronaut/internal/logger"
)

func TestTraceCarriesPageFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "browser.log")
	t.Setenv("MICRONAUT_LOG_FILE", path)
	if err := logger.Init(true); err != nil {
		t.Fatalf("logger.Init error: %v", err)
	}
	t.Cleanup(logger.Close)

	b := New[int](&nullRenderer{})
	b.SetContent("/a", "`[Go`/b]")
	b.SetContent("/b", "text")
	b.Back()
	logger.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var events []string
	for _, line := range strings.Split(string(data), "\n") {
		if !strings.Contains(line, "browser: ") {
			continue
		}
		events = append(events, line)
		for _, key := range []string{`"url"`, `"back"`, `"forward"`, `"scroll"`, `"selected"`} {
			if !strings.Contains(line, key) {
				t.Fatalf("log line %q has no %s field", line, key)
			}
		}
	}
	if len(events) == 0 {
		t.Fatalf("no browser events in log %q", data)
	}
	if last := events[len(events)-1]; !strings.Contains(last, "browser: back") || !strings.Contains(last, `"/a"`) {
		t.Fatalf("last event = %q, want back to /a", last)
	}
}
