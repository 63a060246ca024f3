package domain

import (
	"context"
	"log/slog"
	"math"
	"strconv"

	"unfold.dev/pkg/unfold/internal/adapter"
	m "unfold.dev/pkg/unfold/internal/model"
)

// DefaultProgressEvery is how many files are processed between progress events.
const DefaultProgressEvery = 10

// ProgressFunc receives progress events in order.
type ProgressFunc func(event m.ProgressEvent)

// Execution is the outcome of the transfer stage.
type Execution struct {
	Entries    []m.LogEntry
	CopyErrors int
}

// Executor copies resolved files into the output root.
type Executor interface {
	// Execute processes files sequentially. Per-file failures become ERROR
	// entries and never stop the loop. In move mode the source root is deleted
	// only when no copy failed.
	Execute(ctx context.Context, files []m.DiscoveredFile, progress ProgressFunc) Execution
}

type executor struct {
	fsAdapter     adapter.SourceFSAdapter
	mode          m.Mode
	sourceRoot    m.Path
	outputRoot    m.Path
	progressEvery int
	reserved      []string
}

// NewExecutor constructs an Executor for one run. reserved lists file names the
// run writes into the output root itself; no source file is copied onto them.
func NewExecutor(
	fsAdapter adapter.SourceFSAdapter,
	mode m.Mode,
	sourceRoot, outputRoot m.Path,
	progressEvery int,
	reserved ...string,
) Executor {
	if progressEvery <= 0 {
		progressEvery = DefaultProgressEvery
	}

	return &executor{
		fsAdapter:     fsAdapter,
		mode:          mode,
		sourceRoot:    sourceRoot,
		outputRoot:    outputRoot,
		progressEvery: progressEvery,
		reserved:      reserved,
	}
}

// Percent computes round(processed / total * 100).
func Percent(processed, total int) int {
	if total <= 0 {
		return 100
	}

	return int(math.Round(float64(processed) / float64(total) * 100))
}

func (e *executor) Execute(ctx context.Context, files []m.DiscoveredFile, progress ProgressFunc) Execution {
	if progress == nil {
		progress = func(m.ProgressEvent) {}
	}

	resolver := NewResolver(files, e.reserved...)
	execution := Execution{Entries: make([]m.LogEntry, 0, len(files)+2)}
	total := len(files)

	for index, file := range files {
		assignment := resolver.Assign(file)
		execution.Entries = append(execution.Entries, resolutionEntry(assignment))

		if e.mode.Mutates() {
			if entry, failed := e.transfer(ctx, assignment); failed {
				execution.Entries = append(execution.Entries, entry)
				execution.CopyErrors++
			}
		}

		processed := index + 1
		if processed%e.progressEvery == 0 || processed == total {
			progress(m.ProgressEvent{Progress: Percent(processed, total), File: file.BaseName})
		}
	}

	if total == 0 {
		progress(m.ProgressEvent{Progress: 100})
	}

	switch e.mode {
	case m.ModeMove:
		execution.Entries = append(execution.Entries, e.finishMove(ctx, execution.CopyErrors)...)
	case m.ModeDryRun:
		execution.Entries = append(execution.Entries, m.LogEntry{Kind: m.LogInfo, MessageKey: m.MsgDryRun})
	case m.ModeCopy:
	}

	return execution
}

func resolutionEntry(assignment m.Assignment) m.LogEntry {
	if assignment.Renamed {
		return m.LogEntry{
			Kind:         m.LogRenamed,
			From:         assignment.File.SourcePath,
			To:           assignment.DestName,
			OriginalName: assignment.File.BaseName,
		}
	}

	return m.LogEntry{Kind: m.LogCopied, From: assignment.File.SourcePath, To: assignment.DestName}
}

func (e *executor) transfer(ctx context.Context, assignment m.Assignment) (m.LogEntry, bool) {
	dest := e.fsAdapter.JoinPath(ctx, string(e.outputRoot), assignment.DestName)

	if err := e.fsAdapter.CopyFile(ctx, assignment.File.SourcePath, dest); err != nil {
		slog.Error("failed to copy file", "from", assignment.File.SourcePath, "to", dest, "error", err)

		return m.LogEntry{Kind: m.LogError, From: assignment.File.SourcePath, Message: err.Error()}, true
	}

	return m.LogEntry{}, false
}

func (e *executor) finishMove(ctx context.Context, copyErrors int) []m.LogEntry {
	if copyErrors > 0 {
		slog.Error("move aborted, source preserved", "source", e.sourceRoot, "copyErrors", copyErrors)

		return []m.LogEntry{{
			Kind:       m.LogFatal,
			MessageKey: m.MsgMoveFatal,
			Vars:       map[string]string{m.VarErrorCount: strconv.Itoa(copyErrors)},
		}}
	}

	entries := []m.LogEntry{{Kind: m.LogInfo, MessageKey: m.MsgMoveSuccess}}

	if err := e.fsAdapter.RemoveAll(ctx, e.sourceRoot); err != nil {
		slog.Error("failed to remove source after move", "source", e.sourceRoot, "error", err)

		return append(entries, m.LogEntry{
			Kind:       m.LogFatal,
			MessageKey: m.MsgMoveCleanupFailed,
			Vars:       map[string]string{m.VarError: err.Error()},
		})
	}

	slog.Info("source removed after move", "source", e.sourceRoot)

	return append(entries, m.LogEntry{Kind: m.LogSuccess, MessageKey: m.MsgMoveSuccessDone})
}
