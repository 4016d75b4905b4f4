package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New("production", &buf)

	log.Debug("hidden")
	log.WithFormID("form-1").HTTPError("POST", "/api/search", 422, errors.New("out of bounds"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one record (debug filtered), got %q", buf.String())
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if record["msg"] != "http_error" || record["form_id"] != "form-1" || record["status"] != float64(422) {
		t.Fatalf("unexpected record %v", record)
	}
}

func TestNew_DevelopmentWritesTextAtDebug(t *testing.T) {
	var buf bytes.Buffer
	New("Development", &buf).Debug("search_started", "field", "from")

	if !strings.Contains(buf.String(), "msg=search_started") || !strings.Contains(buf.String(), "field=from") {
		t.Fatalf("expected text record, got %q", buf.String())
	}
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	log := New("production", &buf)

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-9")
	ctx = context.WithValue(ctx, FormIDKey, "form-2")
	log.WithContext(ctx).Info("search_submitted")

	out := buf.String()
	if !strings.Contains(out, `"request_id":"req-9"`) || !strings.Contains(out, `"form_id":"form-2"`) {
		t.Fatalf("expected ids in record, got %q", out)
	}
	if log.WithContext(context.Background()).Logger != log.Logger {
		t.Fatal("empty context should keep the logger")
	}
}
