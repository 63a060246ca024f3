package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"gopkg.in/yaml.v3"

	m "unfold.dev/pkg/unfold/internal/model"
)

// Event types written by StructuredUI.
const (
	EventStart    = "start"
	EventProgress = "progress"
	EventResult   = "result"
	EventError    = "error"
)

// Event is one record of the structured output stream.
type Event struct {
	Type     string           `json:"event" yaml:"event"`
	Source   m.Path           `json:"source,omitempty" yaml:"source,omitempty"`
	Output   m.Path           `json:"output,omitempty" yaml:"output,omitempty"`
	Options  *m.RunOptions    `json:"options,omitempty" yaml:"options,omitempty"`
	Progress *m.ProgressEvent `json:"progress,omitempty" yaml:"progress,omitempty"`
	Result   *m.RunResult     `json:"result,omitempty" yaml:"result,omitempty"`
	Message  string           `json:"message,omitempty" yaml:"message,omitempty"`
}

type eventEncoder interface {
	Encode(v any) error
}

// StructuredUI writes run events as JSON lines or YAML documents.
type StructuredUI struct {
	mu      sync.Mutex
	encoder eventEncoder
	closer  func() error
}

// NewStructuredUI creates a StructuredUI for format json or yaml.
func NewStructuredUI(output io.Writer, format string) (*StructuredUI, error) {
	switch format {
	case FormatJSON:
		return &StructuredUI{encoder: json.NewEncoder(output), closer: func() error { return nil }}, nil
	case FormatYAML:
		encoder := yaml.NewEncoder(output)
		encoder.SetIndent(2)

		return &StructuredUI{encoder: encoder, closer: encoder.Close}, nil
	}

	return nil, &UnsupportedFormatError{Format: format}
}

// Start initializes the UI.
func (s *StructuredUI) Start(ctx context.Context, _ ...StartOption) error {
	return ctx.Err()
}

// Close flushes the encoder.
func (s *StructuredUI) Close(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.closer(); err != nil {
		slog.Warn("failed to flush structured output", "error", err)
	}
}

// Wait is a no-op for StructuredUI.
func (s *StructuredUI) Wait(_ context.Context) {}

// DisplayRunInfo writes a start event.
func (s *StructuredUI) DisplayRunInfo(_ context.Context, info RunInfo) {
	options := info.Options
	s.emit(Event{Type: EventStart, Source: info.Source, Output: info.Output, Options: &options})
}

// DisplayProgress writes a progress event.
func (s *StructuredUI) DisplayProgress(_ context.Context, event m.ProgressEvent) {
	s.emit(Event{Type: EventProgress, Progress: &event})
}

// DisplayResult writes a result event.
func (s *StructuredUI) DisplayResult(_ context.Context, result m.RunResult) {
	s.emit(Event{Type: EventResult, Result: &result})
}

// DisplayError writes an error event.
func (s *StructuredUI) DisplayError(_ context.Context, message string) {
	s.emit(Event{Type: EventError, Message: message})
}

func (s *StructuredUI) emit(event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.encoder.Encode(event); err != nil {
		slog.Error("failed to write event", "event", event.Type, "error", fmt.Errorf("encode: %w", err))
	}
}
