// Package controller provides output adapters for displaying unfold runs.
package controller

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "unfold.dev/pkg/unfold/internal/model"
)

// Output formats accepted by NewFormattedUI.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// RunInfo describes a run before it starts.
type RunInfo struct {
	Source  m.Path
	Output  m.Path
	Options m.RunOptions
}

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode      m.Mode
	interrupt context.CancelFunc
}

// WithMode tells the UI which mode the run uses.
func WithMode(mode m.Mode) StartOption {
	return func(c *StartConfig) {
		c.mode = mode
	}
}

// WithInterrupt registers a function the UI calls when the user aborts.
func WithInterrupt(cancel context.CancelFunc) StartOption {
	return func(c *StartConfig) {
		c.interrupt = cancel
	}
}

func newStartConfig(options []StartOption) StartConfig {
	config := StartConfig{mode: m.ModeCopy}
	for _, option := range options {
		option(&config)
	}

	return config
}

// UI defines the interface for presenting a run.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplayRunInfo(ctx context.Context, info RunInfo)
	DisplayProgress(ctx context.Context, event m.ProgressEvent)
	// DisplayResult may be called more than once; the last call wins.
	DisplayResult(ctx context.Context, result m.RunResult)
	DisplayError(ctx context.Context, message string)
}

// NewUI picks the interactive TUI on a terminal and the SimpleUI otherwise.
func NewUI(cmd *cobra.Command, isTTY bool) UI {
	if isTTY {
		return NewTUI(cmd.InOrStdin(), cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// NewFormattedUI returns the UI for the requested output format.
func NewFormattedUI(cmd *cobra.Command, format string, isTTY bool) (UI, error) {
	switch format {
	case "", FormatText:
		return NewUI(cmd, isTTY), nil
	case FormatJSON, FormatYAML:
		return NewStructuredUI(cmd.OutOrStdout(), format)
	}

	return nil, &UnsupportedFormatError{Format: format}
}

// UnsupportedFormatError is returned for an unknown output format.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported output format %q (expected text, json or yaml)", e.Format)
}

// IsTTY reports whether w is an interactive terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
