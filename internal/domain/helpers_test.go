package domain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"unfold.dev/pkg/unfold/internal/adapter"
	m "unfold.dev/pkg/unfold/internal/model"
)

func writeFile(t *testing.T, path string, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}

func dirNames(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	sort.Strings(names)

	return names
}

func relPaths(t *testing.T, root string, files []m.DiscoveredFile) []string {
	t.Helper()

	paths := make([]string, 0, len(files))
	for _, file := range files {
		rel, err := filepath.Rel(root, string(file.SourcePath))
		require.NoError(t, err)
		paths = append(paths, filepath.ToSlash(rel))
	}

	sort.Strings(paths)

	return paths
}

func discovered(paths ...string) []m.DiscoveredFile {
	files := make([]m.DiscoveredFile, 0, len(paths))
	for _, path := range paths {
		files = append(files, m.DiscoveredFile{SourcePath: m.Path(path), BaseName: filepath.Base(path)})
	}

	return files
}

// failingFSAdapter fails CopyFile for sources whose base name is listed, and
// can fail RemoveAll and ReadDir on demand. afterCopy runs after every copy.
type failingFSAdapter struct {
	*adapter.LocalSourceFSAdapter

	failCopy      map[string]bool
	failRemoveAll error
	failReadDir   map[string]bool
	afterCopy     func()

	mu      sync.Mutex
	copied  []m.Path
	removed []m.Path
}

func newFailingFSAdapter(failCopy ...string) *failingFSAdapter {
	set := map[string]bool{}
	for _, name := range failCopy {
		set[name] = true
	}

	return &failingFSAdapter{
		LocalSourceFSAdapter: adapter.NewLocalSourceFSAdapter(),
		failCopy:             set,
		failReadDir:          map[string]bool{},
	}
}

func (f *failingFSAdapter) CopyFile(ctx context.Context, src, dst m.Path) error {
	if f.failCopy[filepath.Base(string(src))] {
		return errors.New("permission denied: " + filepath.Base(string(src)))
	}

	f.mu.Lock()
	f.copied = append(f.copied, dst)
	f.mu.Unlock()

	err := f.LocalSourceFSAdapter.CopyFile(ctx, src, dst)

	if f.afterCopy != nil {
		f.afterCopy()
	}

	return err
}

func (f *failingFSAdapter) RemoveAll(ctx context.Context, path m.Path) error {
	f.mu.Lock()
	f.removed = append(f.removed, path)
	f.mu.Unlock()

	if f.failRemoveAll != nil {
		return f.failRemoveAll
	}

	return f.LocalSourceFSAdapter.RemoveAll(ctx, path)
}

func (f *failingFSAdapter) ReadDir(ctx context.Context, dir m.Path) ([]string, error) {
	if f.failReadDir[filepath.Base(string(dir))] {
		return nil, os.ErrPermission
	}

	return f.LocalSourceFSAdapter.ReadDir(ctx, dir)
}

func entriesOfKind(entries []m.LogEntry, kind m.LogKind) []m.LogEntry {
	var out []m.LogEntry

	for _, entry := range entries {
		if entry.Kind == kind {
			out = append(out, entry)
		}
	}

	return out
}

func destNames(entries []m.LogEntry) []string {
	var names []string

	for _, entry := range entries {
		if entry.Kind == m.LogCopied || entry.Kind == m.LogRenamed {
			names = append(names, entry.To)
		}
	}

	sort.Strings(names)

	return names
}
