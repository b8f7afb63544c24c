package unit

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/xeipuuv/gojsonschema"

	"github.com/dobrovols/mklaunch/pkg/telemetry"
)

func TestStructuredLogSchemaAcceptsEmittedEntry(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := telemetry.NewLogger(buf, "run-20260829T120000")
	if err != nil {
		t.Fatalf("create logger: %v", err)
	}

	entry := telemetry.Entry{
		Category: telemetry.CategoryWorkflow,
		Message:  "generate workflow started",
		Severity: telemetry.SeverityInfo,
		Step:     "generate",
		Source:   "configs/app.json",
		Metadata: map[string]string{"output": ".vscode/launch.json"},
	}
	if err := logger.Emit(entry); err != nil {
		t.Fatalf("emit entry: %v", err)
	}

	result, err := gojsonschema.Validate(schemaLoader(t, "logging-schema.json"), gojsonschema.NewBytesLoader(buf.Bytes()))
	if err != nil {
		t.Fatalf("schema validation failed: %v", err)
	}
	if !result.Valid() {
		t.Fatalf("expected emitted entry to satisfy the contract: %v", result.Errors())
	}
}

func TestStructuredLogSchemaAcceptsErrorEntry(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := telemetry.NewLogger(buf, "run-20260829T120000")
	if err != nil {
		t.Fatalf("create logger: %v", err)
	}

	entry := telemetry.Entry{
		Category: telemetry.CategoryWorkflow,
		Message:  "generate workflow failed",
		Step:     "generate",
		Error:    errors.New("duplicate configuration name"),
	}
	if err := logger.Emit(entry); err != nil {
		t.Fatalf("emit entry: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	if payload["severity"] != "error" {
		t.Fatalf("expected severity escalation, got %v", payload["severity"])
	}

	result, err := gojsonschema.Validate(schemaLoader(t, "logging-schema.json"), gojsonschema.NewBytesLoader(buf.Bytes()))
	if err != nil {
		t.Fatalf("schema validation failed: %v", err)
	}
	if !result.Valid() {
		t.Fatalf("expected error entry to satisfy the contract: %v", result.Errors())
	}
}

func TestStructuredLogSchemaRejectsMissingFields(t *testing.T) {
	badDoc := map[string]any{
		"category": "workflow",
		"message":  "missing fields",
		"severity": "info",
	}
	result, err := gojsonschema.Validate(schemaLoader(t, "logging-schema.json"), gojsonschema.NewGoLoader(badDoc))
	if err != nil {
		t.Fatalf("schema validation failed: %v", err)
	}
	if result.Valid() {
		t.Fatalf("expected document to be invalid")
	}
}
