// Package telemetry emits structured JSON-line events and log entries for
// the generator CLI.
package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
)

// Phase represents a lifecycle step of one generation run.
type Phase string

const (
	PhaseTemplates Phase = "templates"
	PhaseCollect   Phase = "collect"
	PhaseResolve   Phase = "resolve"
	PhaseWrite     Phase = "write"
)

// Event captures structured telemetry emitted by the CLI.
type Event struct {
	Timestamp time.Time         `json:"timestamp"`
	Phase     Phase             `json:"phase"`
	Outcome   string            `json:"outcome"`
	Duration  time.Duration     `json:"duration,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Emitter handles emitting JSON structured events to an io.Writer.
type Emitter struct {
	mu      sync.Mutex
	encoder *json.Encoder
	logger  *Logger
}

// NewEmitter constructs an emitter writing JSON lines to w. Each emitter
// carries a structured logger scoped to a fresh run ID so events and log
// entries from one invocation correlate.
func NewEmitter(w io.Writer) (*Emitter, error) {
	if w == nil {
		return nil, errors.New("emitter writer is required")
	}
	logger, err := NewLogger(w, newRunID())
	if err != nil {
		return nil, err
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &Emitter{encoder: enc, logger: logger}, nil
}

// StructuredLogger returns the logger sharing this emitter's output stream.
func (e *Emitter) StructuredLogger() StructuredLogger {
	if e == nil {
		return nil
	}
	return e.logger
}

func newRunID() string {
	return fmt.Sprintf("run-%s", time.Now().UTC().Format("20060102T150405.000000000"))
}

// Emit writes an event to the underlying writer.
func (e *Emitter) Emit(ev Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	if ev.Metadata == nil {
		ev.Metadata = map[string]string{}
	}
	return e.encoder.Encode(ev)
}

// EmitPhase publishes start and completion events while executing fn.
func (e *Emitter) EmitPhase(phase Phase, metadata map[string]string, fn func() error) error {
	start := time.Now()
	if err := e.Emit(Event{Phase: phase, Outcome: "start", Metadata: metadata}); err != nil {
		return fmt.Errorf("emit start event: %w", err)
	}

	err := fn()
	outcome := "success"

	if err != nil {
		outcome = "failure"
	}

	emitErr := e.Emit(Event{Phase: phase, Outcome: outcome, Duration: time.Since(start), Metadata: metadata})
	if emitErr != nil {
		return fmt.Errorf("emit completion event: %w", emitErr)
	}

	return err
}
