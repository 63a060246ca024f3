package model

import (
	"fmt"
	"strings"
)

// Mode selects what a run does with the discovered files.
type Mode string

const (
	// ModeCopy copies every file into the output directory.
	ModeCopy Mode = "copy"
	// ModeMove copies every file, then deletes the source tree if nothing failed.
	ModeMove Mode = "move"
	// ModeDryRun computes and logs the plan without touching the filesystem.
	ModeDryRun Mode = "dry-run"
)

// Modes lists the accepted modes in display order.
var Modes = []Mode{ModeCopy, ModeMove, ModeDryRun}

// ParseMode converts user input into a Mode.
func ParseMode(value string) (Mode, error) {
	mode := Mode(strings.ToLower(strings.TrimSpace(value)))
	switch mode {
	case ModeCopy, ModeMove, ModeDryRun:
		return mode, nil
	case "dryrun", "dry_run":
		return ModeDryRun, nil
	}

	return "", fmt.Errorf("unknown mode %q (expected copy, move or dry-run)", value)
}

// Mutates reports whether the mode writes to the filesystem.
func (md Mode) Mutates() bool {
	return md == ModeCopy || md == ModeMove
}

// RunOptions is the immutable configuration of a single run.
type RunOptions struct {
	Mode       Mode `json:"mode" yaml:"mode"`
	ShouldZip  bool `json:"shouldZip" yaml:"shouldZip"`
	ShouldOpen bool `json:"shouldOpen" yaml:"shouldOpen"`
}

// RunResult is the terminal artifact of a run that got past pre-flight.
type RunResult struct {
	RunID       string     `json:"runId" yaml:"runId"`
	SourcePath  Path       `json:"sourcePath" yaml:"sourcePath"`
	OutputPath  Path       `json:"outputPath" yaml:"outputPath"`
	ParentPath  Path       `json:"parentPath" yaml:"parentPath"`
	ArchivePath Path       `json:"archivePath,omitempty" yaml:"archivePath,omitempty"`
	Options     RunOptions `json:"options" yaml:"options"`
	LogEntries  []LogEntry `json:"logEntries" yaml:"logEntries"`
	DurationMs  int64      `json:"durationMs" yaml:"durationMs"`
	WasOpened   bool       `json:"wasOpened" yaml:"wasOpened"`
}

// Counts tallies the result's log entries per kind.
func (r RunResult) Counts() LogCounts {
	return CountEntries(r.LogEntries)
}

// HasErrors reports whether any ERROR or FATAL entry was recorded.
func (r RunResult) HasErrors() bool {
	counts := r.Counts()

	return counts[LogError] > 0 || counts[LogFatal] > 0
}

// ProgressEvent reports transfer progress.
type ProgressEvent struct {
	Progress int    `json:"progress" yaml:"progress"`
	File     string `json:"file" yaml:"file"`
}

// Outcome is a terminal value of a run stream: either a result or an error.
type Outcome struct {
	Result *RunResult
	Err    error
}
