package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	sonic "github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/trace"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	if err := sonic.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	return entry
}

func TestLogger_KeyValueFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONTo(&buf, LevelInfo).With("service", "tennis-roundrobin-api")

	logger.Error("upsert failed", "team_id", 3, "error", errors.New("boom"), "dangling")

	entry := decodeLine(t, &buf)
	if entry["msg"] != "upsert failed" || entry["level"] != "ERROR" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry["service"] != "tennis-roundrobin-api" {
		t.Fatalf("expected inherited service field, got %+v", entry)
	}
	if entry["team_id"] != float64(3) || entry["error"] != "boom" {
		t.Fatalf("unexpected fields: %+v", entry)
	}
	if _, ok := entry["dangling"]; !ok {
		t.Fatalf("expected dangling key to be logged")
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONTo(&buf, LevelWarn)

	logger.Info("hidden")
	logger.DebugContext(context.Background(), "hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %q", buf.String())
	}
}

func TestLogger_TraceFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONTo(&buf, LevelInfo)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.InfoContext(ctx, "match submitted")

	entry := decodeLine(t, &buf)
	if entry["trace_id"] != traceID.String() || entry["span_id"] != spanID.String() {
		t.Fatalf("missing trace fields: %+v", entry)
	}
}

func TestLogger_NilFallsBackToDefault(t *testing.T) {
	var buf bytes.Buffer
	prev := Default()
	SetDefault(NewJSONTo(&buf, LevelInfo))
	t.Cleanup(func() { SetDefault(prev) })

	var logger *Logger
	logger.Warn("from nil logger")

	if decodeLine(t, &buf)["msg"] != "from nil logger" {
		t.Fatalf("expected nil logger to write through default")
	}
	if err := logger.Sync(); err != nil {
		t.Fatalf("sync nil logger: %v", err)
	}
}
