// Package adapter contains infrastructure adapters for the unfold CLI.
package adapter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	m "unfold.dev/pkg/unfold/internal/model"
)

// SourceFSAdapter abstracts the filesystem operations the domain layer relies on
// when flattening a tree, so the workflow can be tested with injected failures.
//
//nolint:interfacebloat // Keeps walker/executor logic decoupled from os/fs.
type SourceFSAdapter interface {
	// ReadDir returns the entry names of dir in directory order.
	ReadDir(ctx context.Context, dir m.Path) ([]string, error)

	// Lstat returns metadata for path without following a final symlink.
	Lstat(ctx context.Context, path m.Path) (os.FileInfo, error)

	// FileInfo returns metadata for path, following symlinks.
	FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error)

	// MkdirAll creates path and any missing parents.
	MkdirAll(ctx context.Context, path m.Path) error

	// CopyFile copies the bytes of src verbatim to dst, replacing dst.
	CopyFile(ctx context.Context, src, dst m.Path) error

	// RemoveAll removes a directory and all its contents.
	RemoveAll(ctx context.Context, path m.Path) error

	// WriteFile writes content to a file with the given permissions.
	WriteFile(ctx context.Context, path m.Path, content []byte, perm os.FileMode) error

	// JoinPath joins path elements into a single path.
	JoinPath(ctx context.Context, elem ...string) m.Path
}

// LocalSourceFSAdapter implements SourceFSAdapter on top of the os package.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// ReadDir lists the names inside dir.
func (a *LocalSourceFSAdapter) ReadDir(_ context.Context, dir m.Path) ([]string, error) {
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	return names, nil
}

// Lstat returns metadata for path without dereferencing symlinks.
func (a *LocalSourceFSAdapter) Lstat(_ context.Context, path m.Path) (os.FileInfo, error) {
	return os.Lstat(string(path))
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(_ context.Context, path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// MkdirAll creates the directory and its parents.
func (a *LocalSourceFSAdapter) MkdirAll(_ context.Context, path m.Path) error {
	return os.MkdirAll(string(path), 0o750)
}

// CopyFile copies a single file, keeping the source permission bits.
func (a *LocalSourceFSAdapter) CopyFile(_ context.Context, src, dst m.Path) error {
	// #nosec G304 - src comes from the walked source tree
	sourceFile, err := os.Open(string(src))
	if err != nil {
		return err
	}

	defer func() { _ = sourceFile.Close() }()

	info, err := sourceFile.Stat()
	if err != nil {
		return err
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", src)
	}

	// #nosec G304 - dst is built from the output root and a resolved base name
	destFile, err := os.OpenFile(string(dst), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		_ = destFile.Close()
		return err
	}

	if err := destFile.Close(); err != nil {
		return err
	}

	return os.Chmod(string(dst), info.Mode().Perm())
}

// RemoveAll removes a directory and all its contents.
func (a *LocalSourceFSAdapter) RemoveAll(_ context.Context, path m.Path) error {
	return os.RemoveAll(string(path))
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalSourceFSAdapter) WriteFile(_ context.Context, path m.Path, content []byte, perm os.FileMode) error {
	return os.WriteFile(string(path), content, perm)
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFSAdapter) JoinPath(_ context.Context, elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
