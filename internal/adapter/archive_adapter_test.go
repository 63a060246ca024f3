package adapter

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/klauspost/compress/zip"

	m "unfold.dev/pkg/unfold/internal/model"
)

func TestZipArchiver_Archive(t *testing.T) {
	t.Run("entries are relative to the archived directory", func(t *testing.T) {
		archiver := NewZipArchiver()

		src := filepath.Join(t.TempDir(), "photos_unfolded")
		mustMkdir(t, src)
		writeTestFile(t, filepath.Join(src, "a.txt"), "alpha")
		writeTestFile(t, filepath.Join(src, "[conflict-1]-b.txt"), "bravo")
		writeTestFile(t, filepath.Join(src, DocumentationFileName), "# Unfold Log\n")

		dst := filepath.Join(t.TempDir(), "photos_unfolded.zip")

		written, err := archiver.Archive(context.Background(), m.Path(src), m.Path(dst))
		if err != nil {
			t.Fatalf("Archive() error = %v", err)
		}

		info, err := os.Stat(dst)
		if err != nil {
			t.Fatalf("stat archive: %v", err)
		}

		if written != info.Size() {
			t.Fatalf("Archive() written = %d, want %d", written, info.Size())
		}

		contents := readZip(t, dst)

		names := make([]string, 0, len(contents))
		for name := range contents {
			names = append(names, name)
		}

		sort.Strings(names)

		want := []string{"[conflict-1]-b.txt", "a.txt", DocumentationFileName}
		if len(names) != len(want) {
			t.Fatalf("archive entries = %v, want %v", names, want)
		}

		for i := range want {
			if names[i] != want[i] {
				t.Fatalf("archive entries = %v, want %v", names, want)
			}
		}

		if contents["a.txt"] != "alpha" || contents["[conflict-1]-b.txt"] != "bravo" {
			t.Fatalf("archive contents = %v", contents)
		}
	})

	t.Run("missing source removes the partial archive", func(t *testing.T) {
		archiver := NewZipArchiver()

		dst := filepath.Join(t.TempDir(), "out.zip")

		_, err := archiver.Archive(context.Background(), m.Path(filepath.Join(t.TempDir(), "missing")), m.Path(dst))
		if err == nil {
			t.Fatalf("Archive() expected error for a missing source")
		}

		if _, statErr := os.Stat(dst); !os.IsNotExist(statErr) {
			t.Fatalf("Archive() left a partial archive: %v", statErr)
		}
	})

	t.Run("unwritable destination", func(t *testing.T) {
		archiver := NewZipArchiver()

		src := t.TempDir()
		writeTestFile(t, filepath.Join(src, "a.txt"), "a")

		dst := filepath.Join(t.TempDir(), "no-such-dir", "out.zip")
		if _, err := archiver.Archive(context.Background(), m.Path(src), m.Path(dst)); err == nil {
			t.Fatalf("Archive() expected error for an unwritable destination")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		archiver := NewZipArchiver()

		src := t.TempDir()
		writeTestFile(t, filepath.Join(src, "a.txt"), "a")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		dst := filepath.Join(t.TempDir(), "out.zip")
		if _, err := archiver.Archive(ctx, m.Path(src), m.Path(dst)); err == nil {
			t.Fatalf("Archive() expected error for a cancelled context")
		}
	})
}

func readZip(t *testing.T, path string) map[string]string {
	t.Helper()

	reader, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}

	defer func() { _ = reader.Close() }()

	contents := map[string]string{}

	for _, file := range reader.File {
		rc, err := file.Open()
		if err != nil {
			t.Fatalf("open entry %s: %v", file.Name, err)
		}

		data, err := io.ReadAll(rc)
		_ = rc.Close()

		if err != nil {
			t.Fatalf("read entry %s: %v", file.Name, err)
		}

		contents[file.Name] = string(data)
	}

	return contents
}
