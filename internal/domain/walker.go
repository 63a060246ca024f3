package domain

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"unfold.dev/pkg/unfold/internal/adapter"
	m "unfold.dev/pkg/unfold/internal/model"
)

// DefaultWalkConcurrency bounds concurrent directory listings and stats.
const DefaultWalkConcurrency = 16

// Walker enumerates the regular files under a root.
type Walker interface {
	// Walk returns every regular file under root. Order is unspecified; callers
	// must only rely on the set of files. Unreadable directories and entries that
	// cannot be stat'ed are logged and skipped. Only context cancellation fails
	// the walk.
	Walk(ctx context.Context, root m.Path) ([]m.DiscoveredFile, error)
}

type walker struct {
	fsAdapter   adapter.SourceFSAdapter
	classifier  Classifier
	concurrency int64
}

// NewWalker constructs a Walker. Each directory lists its entries concurrently;
// concurrency limits how many filesystem calls are in flight at once.
func NewWalker(fsAdapter adapter.SourceFSAdapter, classifier Classifier, concurrency int) Walker {
	if concurrency <= 0 {
		concurrency = DefaultWalkConcurrency
	}

	return &walker{
		fsAdapter:   fsAdapter,
		classifier:  classifier,
		concurrency: int64(concurrency),
	}
}

func (w *walker) Walk(ctx context.Context, root m.Path) ([]m.DiscoveredFile, error) {
	state := &walkState{
		walker: w,
		sem:    semaphore.NewWeighted(w.concurrency),
	}

	if err := state.walkDir(ctx, root); err != nil {
		return nil, err
	}

	slog.Debug("walk finished", "root", root, "files", len(state.files))

	return state.files, nil
}

// walkState is the run-local accumulator of a single Walk call.
type walkState struct {
	*walker
	sem   *semaphore.Weighted
	mu    sync.Mutex
	files []m.DiscoveredFile
}

func (s *walkState) walkDir(ctx context.Context, dir m.Path) error {
	names, err := s.readDir(ctx, dir)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		slog.Warn("could not read directory", "dir", dir, "error", err)

		return nil
	}

	group, groupCtx := errgroup.WithContext(ctx)

	for _, name := range names {
		if s.classifier.Ignored(name) {
			continue
		}

		group.Go(func() error {
			return s.visit(groupCtx, dir, name)
		})
	}

	return group.Wait()
}

func (s *walkState) visit(ctx context.Context, dir m.Path, name string) error {
	path := s.fsAdapter.JoinPath(ctx, string(dir), name)

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return err
	}

	info, err := s.fsAdapter.Lstat(ctx, path)

	s.sem.Release(1)

	if err != nil {
		slog.Warn("could not stat path", "path", path, "error", err)
		return nil
	}

	switch s.classifier.Classify(path, info) {
	case m.EntryFile:
		s.mu.Lock()
		s.files = append(s.files, m.DiscoveredFile{SourcePath: path, BaseName: name})
		s.mu.Unlock()
	case m.EntryDirectory:
		return s.walkDir(ctx, path)
	case m.EntryIgnored:
		slog.Debug("skipping entry", "path", path)
	}

	return nil
}

func (s *walkState) readDir(ctx context.Context, dir m.Path) ([]string, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer s.sem.Release(1)

	return s.fsAdapter.ReadDir(ctx, dir)
}
