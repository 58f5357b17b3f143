package logger

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func jsonLogger(level string) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	cfg := &Config{Level: level, Format: "json"}
	return NewWithWriter(cfg, "wxadapter", &buf), &buf
}

func TestNewWithWriter_JSON(t *testing.T) {
	l, buf := jsonLogger("debug")
	l.Debug("dispatch", Fields(FieldKind, "upload", FieldStatus, 200))

	out := buf.String()
	for _, want := range []string{`"message":"dispatch"`, `"kind":"upload"`, `"status":200`, `"service":"wxadapter"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in output, got %s", want, out)
		}
	}
}

func TestNewWithWriter_LevelFilters(t *testing.T) {
	l, buf := jsonLogger("warn")
	l.Info("hidden")
	l.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("expected warn message, got %s", out)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	l, buf := jsonLogger("invalid-level")
	l.Info("still logs")
	if !strings.Contains(buf.String(), "still logs") {
		t.Error("expected fallback to info level")
	}
}

func TestNewNop(t *testing.T) {
	l := NewNop()
	l.Error("discarded")
	l.WithComponent("x").Info("discarded")
}

func TestWithComponent(t *testing.T) {
	l, buf := jsonLogger("info")
	l.WithComponent("adapter").Info("hello")
	if !strings.Contains(buf.String(), `"component":"adapter"`) {
		t.Errorf("expected component field, got %s", buf.String())
	}
}

func TestWithContext_NoSpan(t *testing.T) {
	l, _ := jsonLogger("info")
	if got := l.WithContext(context.Background()); got != l {
		t.Error("expected the same logger when no span is present")
	}
}

func TestWithContext_Span(t *testing.T) {
	l, buf := jsonLogger("info")
	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	l.WithContext(ctx).Info("traced")
	out := buf.String()
	if !strings.Contains(out, `"trace_id":"0102030405060708090a0b0c0d0e0f10"`) {
		t.Errorf("expected trace_id, got %s", out)
	}
	if !strings.Contains(out, `"span_id":"0102030405060708"`) {
		t.Errorf("expected span_id, got %s", out)
	}
}

func TestWithFields(t *testing.T) {
	l, buf := jsonLogger("info")
	l.WithFields(map[string]interface{}{"call_id": "c1"}).Error("failed", ErrorFields("adapt", fmt.Errorf("boom")))
	out := buf.String()
	if !strings.Contains(out, `"call_id":"c1"`) || !strings.Contains(out, `"error":"boom"`) {
		t.Errorf("unexpected output %s", out)
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "console", NoColor: true}, "wxadapter", &buf)
	l.Info("console line")
	out := buf.String()
	if !strings.Contains(out, "[WXA][INF]") {
		t.Errorf("expected service tag and level, got %q", out)
	}
	if !strings.Contains(out, "console line") {
		t.Errorf("expected message, got %q", out)
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("expected output 'stderr', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamp to default to true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json"}, false},
		{"pretty", Config{Level: "debug", Format: "pretty"}, false},
		{"bad level", Config{Level: "loud", Format: "json"}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFields(t *testing.T) {
	f := Fields("a", 1, "b", "two", 3, "skipped", "dangling")
	if f["a"] != 1 || f["b"] != "two" {
		t.Errorf("unexpected fields %v", f)
	}
	if len(f) != 2 {
		t.Errorf("expected 2 fields, got %d", len(f))
	}
}

func TestErrorFields(t *testing.T) {
	ef := ErrorFields("adapt", fmt.Errorf("bad"))
	if ef[FieldOperation] != "adapt" || ef[FieldError] != "bad" {
		t.Errorf("unexpected error fields %v", ef)
	}
}

func TestInit(t *testing.T) {
	prev := globalLogger.Load()
	defer globalLogger.Store(prev)

	l := Init(Config{Level: "debug", Format: "json", ServiceName: "svc"})
	if GetGlobalLogger() != l {
		t.Error("expected Init to install the global logger")
	}
	if l.service != "svc" {
		t.Errorf("expected service 'svc', got %q", l.service)
	}
}

func TestGlobalHelpers(t *testing.T) {
	prev := globalLogger.Load()
	defer globalLogger.Store(prev)

	var buf bytes.Buffer
	globalLogger.Store(NewWithWriter(&Config{Level: "info", Format: "json"}, "", &buf))
	Info("global")
	WithComponent("cli").Warn("component")
	out := buf.String()
	if !strings.Contains(out, "global") || !strings.Contains(out, `"component":"cli"`) {
		t.Errorf("unexpected output %s", out)
	}
	if strings.Contains(out, `"service"`) {
		t.Errorf("expected no service field for an unnamed logger, got %s", out)
	}
}

func TestGlobalLoggerDefault(t *testing.T) {
	prev := globalLogger.Load()
	defer globalLogger.Store(prev)

	globalLogger.Store(nil)
	if GetGlobalLogger() == nil {
		t.Fatal("expected a default global logger")
	}
}
