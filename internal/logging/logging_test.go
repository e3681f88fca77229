package logging

import (
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    slog.Level
		wantErr bool
	}{
		{name: "debug", input: "debug", want: slog.LevelDebug},
		{name: "mixed case", input: "WARN", want: slog.LevelWarn},
		{name: "warning alias", input: "warning", want: slog.LevelWarn},
		{name: "padded", input: " error ", want: slog.LevelError},
		{name: "unknown", input: "loud", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompactHandler_WritesOneLine(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(NewCompactHandler(&buf, slog.LevelInfo))

	logger.Info("query processed", "model", "llama", "elapsed", "1.2s")

	line := buf.String()
	if strings.Count(line, "\n") != 1 {
		t.Fatalf("expected exactly one line, got %q", line)
	}
	for _, want := range []string{"INFO", "query processed", "model=llama", "elapsed=1.2s"} {
		if !strings.Contains(line, want) {
			t.Errorf("output %q missing %q", line, want)
		}
	}
}

func TestCompactHandler_LevelFilter(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(NewCompactHandler(&buf, slog.LevelWarn))

	logger.Debug("hidden")
	logger.Info("also hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("records below level leaked into output: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("warn record missing from output: %q", out)
	}
}

func TestCompactHandler_QuotesValuesWithSpaces(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(NewCompactHandler(&buf, slog.LevelInfo))

	logger.Info("msg", "query", "sum of x and y")

	if !strings.Contains(buf.String(), `query="sum of x and y"`) {
		t.Errorf("value with spaces should be quoted, got %q", buf.String())
	}
}

func TestCompactHandler_WithAttrsAndGroup(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(NewCompactHandler(&buf, slog.LevelInfo)).
		With("provider", "groq").
		WithGroup("llm")

	logger.Info("send", "model", "llama")

	line := buf.String()
	if !strings.Contains(line, "provider=groq") {
		t.Errorf("pre-bound attr missing: %q", line)
	}
	if !strings.Contains(line, "llm.model=llama") {
		t.Errorf("group prefix missing: %q", line)
	}
}
