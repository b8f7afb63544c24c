package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"testing"
)

func TestLoggerEmitPopulatesRequiredFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "run-123")
	if err != nil {
		t.Fatalf("unexpected error constructing logger: %v", err)
	}

	err = logger.Emit(Entry{
		Category: CategoryWorkflow,
		Severity: SeverityInfo,
		Message:  "starting generation",
		Step:     "generate",
	})
	if err != nil {
		t.Fatalf("emit failed: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}

	required := []string{"timestamp", "category", "message", "severity"}
	for _, key := range required {
		if _, ok := payload[key]; !ok {
			t.Fatalf("expected key %q in payload: %v", key, payload)
		}
	}

	if payload["category"] != string(CategoryWorkflow) {
		t.Fatalf("expected category %q, got %v", CategoryWorkflow, payload["category"])
	}

	if payload["runId"] != "run-123" {
		t.Fatalf("expected runId to be propagated, got %v", payload["runId"])
	}

	if payload["step"] != "generate" {
		t.Fatalf("expected step to be preserved, got %v", payload["step"])
	}
}

func TestLoggerEmitEscalatesSeverityOnError(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "run-123")
	if err != nil {
		t.Fatalf("unexpected error constructing logger: %v", err)
	}

	err = logger.Emit(Entry{
		Category: CategorySource,
		Message:  "parse config source",
		Severity: SeverityInfo,
		Source:   "configs/01-debug.json",
		Error:    errors.New("boom"),
	})
	if err != nil {
		t.Fatalf("emit failed: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}

	if payload["severity"] != string(SeverityError) {
		t.Fatalf("expected severity escalated to error, got %v", payload["severity"])
	}

	metadata, ok := payload["metadata"].(map[string]any)
	if !ok {
		t.Fatalf("expected metadata map, got %T", payload["metadata"])
	}

	if metadata["error"] != "boom" {
		t.Fatalf("expected error metadata to be captured, got %v", metadata["error"])
	}

	if payload["source"] != "configs/01-debug.json" {
		t.Fatalf("expected source preserved, got %v", payload["source"])
	}
}

func TestLoggerRequiresRunID(t *testing.T) {
	_, err := NewLogger(io.Discard, "")
	if err == nil {
		t.Fatalf("expected error when run ID missing")
	}
}
