package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"unfold.dev/pkg/unfold/internal/adapter"
	m "unfold.dev/pkg/unfold/internal/model"
)

// Settings tunes a run without changing its semantics.
type Settings struct {
	WalkConcurrency     int
	ProgressEvery       int
	ExtraIgnoredNames   []string
	ExtraDisallowedDirs []string
	WriteHTML           bool
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		WalkConcurrency: DefaultWalkConcurrency,
		ProgressEvery:   DefaultProgressEvery,
	}
}

// RunRequest describes one invocation.
type RunRequest struct {
	Source   m.Path
	Options  m.RunOptions
	Settings Settings
}

// Observer receives the events of a run. Completed is called once the flatten
// finishes and again when archiving appends an error to the result.
type Observer interface {
	Progress(event m.ProgressEvent)
	Completed(result m.RunResult)
}

// Unfolder flattens a source tree into its output root.
type Unfolder interface {
	// Run performs one complete pass. It returns a *RunError when the run was
	// rejected or could not start; otherwise the final result, whose log may
	// contain ERROR and FATAL entries.
	Run(ctx context.Context, req RunRequest, observer Observer) (m.RunResult, error)
}

type unfolder struct {
	fsAdapter   adapter.SourceFSAdapter
	reportStore adapter.ReportStore
	archiver    adapter.Archiver
	opener      adapter.Opener
	locker      adapter.RunLocker
	now         func() time.Time
}

// NewUnfolder constructs an Unfolder backed by the provided adapters.
func NewUnfolder(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	archiver adapter.Archiver,
	opener adapter.Opener,
	locker adapter.RunLocker,
) Unfolder {
	return &unfolder{
		fsAdapter:   fsAdapter,
		reportStore: reportStore,
		archiver:    archiver,
		opener:      opener,
		locker:      locker,
		now:         time.Now,
	}
}

func (u *unfolder) Run(ctx context.Context, req RunRequest, observer Observer) (m.RunResult, error) {
	if observer == nil {
		observer = noopObserver{}
	}

	startedAt := u.now()
	runID := uuid.NewString()

	source, err := absolute(req.Source)
	if err != nil {
		return m.RunResult{}, newRunError(err, fmt.Sprintf("Invalid source path: %v", err))
	}

	opts := req.Options
	if opts.Mode == "" {
		opts.Mode = m.ModeCopy
	}

	outputRoot := OutputRootFor(source)
	logger := slog.With("run", runID, "source", source, "mode", opts.Mode)

	classifier := NewClassifier(u.fsAdapter, outputRoot, req.Settings.ExtraIgnoredNames, req.Settings.ExtraDisallowedDirs)
	if err := classifier.Preflight(ctx, source); err != nil {
		logger.Warn("run rejected", "error", err)
		return m.RunResult{}, err
	}

	if opts.Mode.Mutates() {
		release, err := u.locker.Acquire(ctx, outputRoot)
		if err != nil {
			logger.Error("failed to lock output directory", "output", outputRoot, "error", err)

			if errors.Is(err, adapter.ErrLocked) {
				return m.RunResult{}, newRunError(fmt.Errorf("%w: %w", ErrRunInProgress, err), "Another run is already writing to the output folder.")
			}

			return m.RunResult{}, newRunError(err, fmt.Sprintf("Could not lock the output folder: %v", err))
		}

		defer func() {
			if err := release(); err != nil {
				logger.Warn("failed to release run lock", "error", err)
			}
		}()

		if err := u.fsAdapter.MkdirAll(ctx, outputRoot); err != nil {
			logger.Error("failed to create output directory", "output", outputRoot, "error", err)
			return m.RunResult{}, newRunError(err, fmt.Sprintf("Could not create the output folder: %v", err))
		}
	}

	logger.Info("run started", "output", outputRoot)

	files, err := NewWalker(u.fsAdapter, classifier, req.Settings.WalkConcurrency).Walk(ctx, source)
	if err != nil {
		return m.RunResult{}, newRunError(err, fmt.Sprintf("The run was interrupted: %v", err))
	}

	execution := NewExecutor(u.fsAdapter, opts.Mode, source, outputRoot, req.Settings.ProgressEvery, reservedNames(req.Settings)...).
		Execute(ctx, files, observer.Progress)

	// Once files have been transferred the run finishes, so a moved tree always
	// gets its audit document.
	ctx = context.WithoutCancel(ctx)

	finishedAt := u.now()
	result := m.RunResult{
		RunID:      runID,
		SourcePath: source,
		OutputPath: outputRoot,
		ParentPath: m.Path(filepath.Dir(string(outputRoot))),
		Options:    opts,
		LogEntries: execution.Entries,
		DurationMs: finishedAt.Sub(startedAt).Milliseconds(),
	}

	if opts.Mode.Mutates() {
		u.saveDocumentation(ctx, &result, finishedAt, req.Settings.WriteHTML)
		result.WasOpened = u.open(ctx, result)
	}

	logger.Info("run finished", "files", len(files), "copyErrors", execution.CopyErrors, "durationMs", result.DurationMs)
	observer.Completed(result)

	if !opts.ShouldZip || !opts.Mode.Mutates() {
		return result, nil
	}

	archived, err := u.archive(ctx, result)
	if err != nil {
		observer.Completed(archived)
	}

	return archived, nil
}

func (u *unfolder) saveDocumentation(ctx context.Context, result *m.RunResult, finishedAt time.Time, withHTML bool) {
	markdown := RenderDocumentation(Documentation{
		RunID:      result.RunID,
		Source:     result.SourcePath,
		Dest:       result.OutputPath,
		Mode:       result.Options.Mode,
		FinishedAt: finishedAt,
		Duration:   time.Duration(result.DurationMs) * time.Millisecond,
		Entries:    result.LogEntries,
	})

	if _, err := u.reportStore.SaveDocumentation(ctx, result.OutputPath, markdown, withHTML); err != nil {
		slog.Error("failed to write documentation", "output", result.OutputPath, "error", err)

		result.LogEntries = append(result.LogEntries, m.LogEntry{
			Kind:    m.LogError,
			From:    result.OutputPath,
			Message: fmt.Sprintf("Failed to write %s: %v", adapter.DocumentationFileName, err),
		})
	}
}

func (u *unfolder) open(ctx context.Context, result m.RunResult) bool {
	if !result.Options.ShouldOpen {
		return false
	}

	target := result.OutputPath
	if result.Options.ShouldZip {
		target = result.ParentPath
	}

	if err := u.opener.Open(ctx, string(target)); err != nil {
		slog.Warn("failed to open output location", "path", target, "error", err)
		return false
	}

	return true
}

// archive packages the output root. On failure the returned result carries an
// extra ERROR entry; the flatten itself stays successful.
func (u *unfolder) archive(ctx context.Context, result m.RunResult) (m.RunResult, error) {
	archivePath := ArchivePathFor(result.SourcePath)

	written, err := u.archiver.Archive(ctx, result.OutputPath, archivePath)
	if err != nil {
		slog.Error("zipping failed", "archive", archivePath, "error", err)

		entries := make([]m.LogEntry, len(result.LogEntries), len(result.LogEntries)+1)
		copy(entries, result.LogEntries)
		result.LogEntries = append(entries, m.LogEntry{
			Kind:    m.LogError,
			From:    result.OutputPath,
			Message: fmt.Sprintf("Failed to create ZIP archive: %v", err),
		})

		return result, err
	}

	slog.Info("zip archive created", "archive", archivePath, "bytes", written)
	result.ArchivePath = archivePath

	return result, nil
}

// reservedNames are the files a run writes into the output root itself.
func reservedNames(settings Settings) []string {
	names := []string{adapter.DocumentationFileName}
	if settings.WriteHTML {
		names = append(names, adapter.DocumentationHTMLFileName)
	}

	return names
}

func absolute(path m.Path) (m.Path, error) {
	abs, err := filepath.Abs(string(path))
	if err != nil {
		return "", err
	}

	return m.Path(filepath.Clean(abs)), nil
}

type noopObserver struct{}

func (noopObserver) Progress(m.ProgressEvent) {}
func (noopObserver) Completed(m.RunResult)    {}
