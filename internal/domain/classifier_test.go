package domain

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unfold.dev/pkg/unfold/internal/adapter"
	m "unfold.dev/pkg/unfold/internal/model"
)

func TestOutputRootFor(t *testing.T) {
	assert.Equal(t, m.Path(filepath.FromSlash("/data/photos_unfolded")), OutputRootFor(m.Path(filepath.FromSlash("/data/photos/"))))
	assert.Equal(t, m.Path("photos_unfolded"), OutputRootFor("photos"))
}

func TestArchivePathFor(t *testing.T) {
	assert.Equal(t, m.Path(filepath.FromSlash("/data/photos_unfolded.zip")), ArchivePathFor(m.Path(filepath.FromSlash("/data/photos"))))
}

func TestClassifier_Ignored(t *testing.T) {
	c := NewClassifier(adapter.NewLocalSourceFSAdapter(), "/out", []string{" Icon ", ""}, nil)

	for _, name := range []string{".DS_Store", "Thumbs.db", "desktop.ini", "Icon"} {
		assert.True(t, c.Ignored(name), name)
	}

	assert.False(t, c.Ignored("photo.jpg"))
	assert.False(t, c.Ignored("thumbs.db"), "names are matched exactly")
}

func TestClassifier_Classify(t *testing.T) {
	root := t.TempDir()
	output := filepath.Join(root, "src_unfolded")

	writeFile(t, filepath.Join(root, "a.txt"), "a")
	writeFile(t, filepath.Join(root, ".DS_Store"), "junk")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "vendor"), 0o755))
	require.NoError(t, os.MkdirAll(output, 0o755))

	c := NewClassifier(adapter.NewLocalSourceFSAdapter(), m.Path(output), nil, []string{"vendor"})

	classify := func(name string) m.EntryKind {
		path := filepath.Join(root, name)
		info, err := os.Lstat(path)
		require.NoError(t, err)

		return c.Classify(m.Path(path), info)
	}

	assert.Equal(t, m.EntryFile, classify("a.txt"))
	assert.Equal(t, m.EntryIgnored, classify(".DS_Store"))
	assert.Equal(t, m.EntryDirectory, classify("sub"))
	assert.Equal(t, m.EntryIgnored, classify("node_modules"))
	assert.Equal(t, m.EntryIgnored, classify("vendor"))
	assert.Equal(t, m.EntryIgnored, classify("src_unfolded"), "output root is never descended into")

	t.Run("symlinks are not followed", func(t *testing.T) {
		link := filepath.Join(root, "link")
		if err := os.Symlink(filepath.Join(root, "sub"), link); err != nil {
			t.Skipf("symlinks unsupported: %v", err)
		}

		assert.Equal(t, m.EntryIgnored, classify("link"))
	})
}

func TestClassifier_Preflight(t *testing.T) {
	ctx := context.Background()
	fsAdapter := adapter.NewLocalSourceFSAdapter()

	t.Run("accepts a plain folder", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "a.txt"), "a")

		c := NewClassifier(fsAdapter, OutputRootFor(m.Path(root)), nil, nil)
		require.NoError(t, c.Preflight(ctx, m.Path(root)))
	})

	t.Run("rejects a top-level node_modules", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules"), 0o755))

		c := NewClassifier(fsAdapter, OutputRootFor(m.Path(root)), nil, nil)
		err := c.Preflight(ctx, m.Path(root))

		var runErr *RunError
		require.ErrorAs(t, err, &runErr)
		assert.ErrorIs(t, err, ErrDisallowedDirectory)
		assert.Contains(t, runErr.Message, "node_modules")
	})

	t.Run("nested node_modules is only skipped", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "pkg", "node_modules"), 0o755))

		c := NewClassifier(fsAdapter, OutputRootFor(m.Path(root)), nil, nil)
		require.NoError(t, c.Preflight(ctx, m.Path(root)))
	})

	t.Run("rejects extra disallowed names", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "vendor"), 0o755))

		c := NewClassifier(fsAdapter, OutputRootFor(m.Path(root)), nil, []string{"vendor"})
		assert.ErrorIs(t, c.Preflight(ctx, m.Path(root)), ErrDisallowedDirectory)
	})

	t.Run("rejects an already unfolded folder", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "photos_unfolded")
		require.NoError(t, os.MkdirAll(root, 0o755))

		c := NewClassifier(fsAdapter, OutputRootFor(m.Path(root)), nil, nil)
		err := c.Preflight(ctx, m.Path(root))

		var runErr *RunError
		require.ErrorAs(t, err, &runErr)
		assert.ErrorIs(t, err, ErrAlreadyUnfolded)
		assert.Equal(t, "Cannot run Unfold on an already unfolded directory.", runErr.Message)
	})

	t.Run("node_modules is reported before the suffix", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "photos_unfolded")
		require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules"), 0o755))

		c := NewClassifier(fsAdapter, OutputRootFor(m.Path(root)), nil, nil)
		assert.ErrorIs(t, c.Preflight(ctx, m.Path(root)), ErrDisallowedDirectory)
	})

	t.Run("rejects a missing source", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "missing")

		c := NewClassifier(fsAdapter, OutputRootFor(m.Path(root)), nil, nil)
		assert.ErrorIs(t, c.Preflight(ctx, m.Path(root)), ErrSourceNotDirectory)
	})

	t.Run("rejects a file source", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "a.txt")
		writeFile(t, file, "a")

		c := NewClassifier(fsAdapter, OutputRootFor(m.Path(file)), nil, nil)
		assert.ErrorIs(t, c.Preflight(ctx, m.Path(file)), ErrSourceNotDirectory)
	})
}
