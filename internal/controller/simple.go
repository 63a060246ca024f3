package controller

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	m "unfold.dev/pkg/unfold/internal/model"
)

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd     *cobra.Command
	printed int // log entries already reported
	shown   bool

	success *color.Color
	fail    *color.Color
	label   *color.Color
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{
		cmd:     cmd,
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		label:   color.New(color.FgCyan),
	}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printed = 0
	s.shown = false

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(_ context.Context) {}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(_ context.Context) {}

// DisplayRunInfo prints the source and destination of the run.
func (s *SimpleUI) DisplayRunInfo(ctx context.Context, info RunInfo) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s %s\n", s.label.Sprint(modeLabel(info.Options.Mode)), info.Source)
	s.printf("%s %s\n", s.label.Sprint("Into"), info.Output)
}

// DisplayProgress prints one progress line.
func (s *SimpleUI) DisplayProgress(ctx context.Context, event m.ProgressEvent) {
	if err := ctx.Err(); err != nil {
		return
	}

	if event.File == "" {
		s.printf("[%3d%%]\n", event.Progress)
		return
	}

	s.printf("[%3d%%] %s\n", event.Progress, event.File)
}

// DisplayResult prints the summary table the first time and only new entries
// on later calls.
func (s *SimpleUI) DisplayResult(ctx context.Context, result m.RunResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	if s.shown {
		s.printEntries(result.LogEntries[min(s.printed, len(result.LogEntries)):])
		s.printed = len(result.LogEntries)

		return
	}

	s.shown = true
	s.printed = len(result.LogEntries)

	s.printf("\n%s", renderSummaryTable(result))
	s.printEntries(result.LogEntries)

	if result.Options.Mode.Mutates() {
		s.printf("%s %s\n", s.label.Sprint("Output:"), result.OutputPath)
	}

	if result.ArchivePath != "" {
		s.printf("%s %s\n", s.label.Sprint("Archive:"), result.ArchivePath)
	}

	s.printf("Finished in %.2fs\n", float64(result.DurationMs)/1000)
}

// DisplayError prints a run error.
func (s *SimpleUI) DisplayError(ctx context.Context, message string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s %s\n", s.fail.Sprint("Error:"), message)
}

func (s *SimpleUI) printEntries(entries []m.LogEntry) {
	for _, entry := range failedEntries(entries) {
		s.printf("%s %s: %s\n", s.fail.Sprint(m.LogError), entry.From, entry.Message)
	}

	for _, entry := range runLevelEntries(entries) {
		painter := s.label
		switch entry.Kind {
		case m.LogFatal:
			painter = s.fail
		case m.LogSuccess:
			painter = s.success
		default:
		}

		s.printf("%s %s\n", painter.Sprint(entry.Kind), entryText(entry))
	}
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
