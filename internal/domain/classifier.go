package domain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"unfold.dev/pkg/unfold/internal/adapter"
	m "unfold.dev/pkg/unfold/internal/model"
)

// OutputSuffix is appended to the source root to name the output root.
const OutputSuffix = "_unfolded"

// ArchiveExtension is the extension of the optional archive.
const ArchiveExtension = ".zip"

// DefaultIgnoredNames are OS-generated artifacts that never produce a file.
var DefaultIgnoredNames = []string{
	".DS_Store",
	"Thumbs.db",
	"desktop.ini",
}

// DefaultDisallowedDirNames are dependency-cache directories that are never
// descended into and reject the run when found at the top of the source.
var DefaultDisallowedDirNames = []string{
	"node_modules",
}

// OutputRootFor returns the output root of source.
func OutputRootFor(source m.Path) m.Path {
	return m.Path(filepath.Clean(string(source)) + OutputSuffix)
}

// ArchivePathFor returns where the archive of source is written.
func ArchivePathFor(source m.Path) m.Path {
	clean := filepath.Clean(string(source))
	name := filepath.Base(clean) + OutputSuffix + ArchiveExtension

	return m.Path(filepath.Join(filepath.Dir(clean), name))
}

// Classifier decides what the walker does with each directory entry.
type Classifier interface {
	// Ignored reports whether name is an OS artifact that is skipped before stat.
	Ignored(name string) bool
	// Classify returns the kind of the entry at path given its own (lstat) info.
	Classify(path m.Path, info os.FileInfo) m.EntryKind
	// Preflight rejects source roots that must not be flattened.
	Preflight(ctx context.Context, source m.Path) error
}

type classifier struct {
	fsAdapter  adapter.SourceFSAdapter
	outputRoot m.Path
	ignored    map[string]struct{}
	disallowed map[string]struct{}
}

// NewClassifier builds a Classifier guarding outputRoot. The extra names are
// added to DefaultIgnoredNames and DefaultDisallowedDirNames.
func NewClassifier(fsAdapter adapter.SourceFSAdapter, outputRoot m.Path, extraIgnored, extraDisallowed []string) Classifier {
	return &classifier{
		fsAdapter:  fsAdapter,
		outputRoot: m.Path(filepath.Clean(string(outputRoot))),
		ignored:    nameSet(DefaultIgnoredNames, extraIgnored),
		disallowed: nameSet(DefaultDisallowedDirNames, extraDisallowed),
	}
}

func nameSet(lists ...[]string) map[string]struct{} {
	set := map[string]struct{}{}

	for _, list := range lists {
		for _, name := range list {
			name = strings.TrimSpace(name)
			if name != "" {
				set[name] = struct{}{}
			}
		}
	}

	return set
}

func (c *classifier) Ignored(name string) bool {
	_, ok := c.ignored[name]
	return ok
}

func (c *classifier) Classify(path m.Path, info os.FileInfo) m.EntryKind {
	name := filepath.Base(string(path))
	if c.Ignored(name) {
		return m.EntryIgnored
	}

	switch {
	case info.IsDir():
		if m.Path(filepath.Clean(string(path))) == c.outputRoot {
			return m.EntryIgnored
		}

		if _, ok := c.disallowed[name]; ok {
			return m.EntryIgnored
		}

		return m.EntryDirectory
	case info.Mode().IsRegular():
		return m.EntryFile
	}

	return m.EntryIgnored
}

func (c *classifier) Preflight(ctx context.Context, source m.Path) error {
	info, err := c.fsAdapter.FileInfo(ctx, source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return newRunError(ErrSourceNotDirectory, fmt.Sprintf("Source folder %q does not exist.", source))
		}

		return newRunError(err, fmt.Sprintf("A critical error occurred while checking the source folder: %v", err))
	}

	if !info.IsDir() {
		return newRunError(ErrSourceNotDirectory, fmt.Sprintf("Source %q is not a folder.", source))
	}

	for _, name := range slices.Sorted(maps.Keys(c.disallowed)) {
		present, err := c.directoryExists(ctx, c.fsAdapter.JoinPath(ctx, string(source), name))
		if err != nil {
			return newRunError(err, fmt.Sprintf("A critical error occurred while checking the source folder: %v", err))
		}

		if present {
			return newRunError(
				fmt.Errorf("%w: %s", ErrDisallowedDirectory, name),
				fmt.Sprintf("Source folder contains a %q directory. This is not supported to prevent errors.", name),
			)
		}
	}

	if strings.HasSuffix(filepath.Base(filepath.Clean(string(source))), OutputSuffix) {
		return newRunError(ErrAlreadyUnfolded, "Cannot run Unfold on an already unfolded directory.")
	}

	return nil
}

func (c *classifier) directoryExists(ctx context.Context, path m.Path) (bool, error) {
	info, err := c.fsAdapter.FileInfo(ctx, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}

		return false, err
	}

	return info.IsDir(), nil
}
