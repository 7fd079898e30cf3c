package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf)

	if logger.Level() != LevelInfo {
		t.Errorf("expected default level info, got %v", logger.Level())
	}

	if logger.Format() != FormatText {
		t.Errorf("expected default format text, got %v", logger.Format())
	}

	if logger.caller {
		t.Error("expected caller disabled by default")
	}
}

func TestLogger_WithLevel_FiltersMessages(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithLevel(LevelError), WithPretty(false))

	logger.Info("info message")

	if buf.Len() > 0 {
		t.Errorf("info message logged at error level: %q", buf.String())
	}

	logger.Error("error message")

	if !strings.Contains(buf.String(), "error message") {
		t.Error("error message not logged at error level")
	}
}

func TestLogger_Trace_ShowsTraceLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithLevel(LevelTrace), WithFormat(FormatJSON))

	logger.Trace("deep", slog.Int("depth", 3))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}

	if rec["level"] != "TRACE" {
		t.Errorf("level = %v, want TRACE", rec["level"])
	}

	if rec["depth"] != float64(3) {
		t.Errorf("depth = %v, want 3", rec["depth"])
	}
}

func TestLogger_WithTimeLayout(t *testing.T) {
	tests := []struct {
		name    string
		layout  string
		hasTime bool
	}{
		{"rfc3339", "RFC3339", true},
		{"kitchen", "Kitchen", true},
		{"none", "none", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			Make(&buf, WithFormat(FormatJSON), WithTimeLayout(tt.layout)).
				Info("hello")

			var rec map[string]any
			if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
				t.Fatalf("invalid JSON %q: %v", buf.String(), err)
			}

			if _, ok := rec["time"]; ok != tt.hasTime {
				t.Errorf("time present = %v, want %v", ok, tt.hasTime)
			}
		})
	}
}

func TestLogger_WithCaller_IncludesSource(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithFormat(FormatJSON), WithCaller(true)).Info("where")

	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("expected caller file in output, got %q", buf.String())
	}
}

func TestLogger_Pretty_Text(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithTimeLayout("none"), WithPretty(true))
	logger.Info("parsed", slog.String("path", "A::B"), slog.Int("items", 2))

	out := buf.String()
	for _, want := range []string{"INFO", "parsed", "path=A::B", "items=2"} {
		if !strings.Contains(out, want) {
			t.Errorf("pretty output %q missing %q", out, want)
		}
	}
}

func TestLogger_With_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON)).
		With(slog.String("component", "lang"))
	logger.Info("message")

	if !strings.Contains(buf.String(), `"component":"lang"`) {
		t.Errorf("expected attribute in output, got %q", buf.String())
	}
}

func TestLogger_ZeroValue_Safety(t *testing.T) {
	var logger Logger

	logger.Info("ignored")
	logger.TraceContext(context.Background(), "ignored")

	if logger.Level() != DefaultLevel {
		t.Errorf("zero logger level = %v", logger.Level())
	}

	_ = logger.With(slog.String("k", "v"))
	_ = logger.Wrap(WithLevel(LevelDebug))
}

func TestLogger_ConcurrentCalls_ThreadSafe(t *testing.T) {
	var buf safeBuffer

	logger := Make(&buf, WithFormat(FormatJSON))

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			logger.Info("concurrent", slog.Int("i", i))
		}()
	}

	wg.Wait()

	if n := strings.Count(buf.String(), "concurrent"); n != 16 {
		t.Errorf("got %d lines, want 16", n)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"trace": LevelTrace,
		"TRACE": LevelTrace,
		"debug": LevelDebug,
		"warn":  LevelWarn,
		"error": LevelError,
		"bogus": DefaultLevel,
	}

	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat(" JSON ") != FormatJSON {
		t.Error("expected json")
	}

	if ParseFormat("xml") != DefaultFormat {
		t.Error("expected default format for unknown input")
	}
}

type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}
