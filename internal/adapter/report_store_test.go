package adapter

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	m "unfold.dev/pkg/unfold/internal/model"
)

const sampleDocumentation = "# Unfold Log\n\n## Renamed Files\n\n| Original | New |\n|---|---|\n| a.txt | [conflict-1]-a.txt |\n"

func TestLocalReportStore_SaveDocumentation(t *testing.T) {
	t.Run("markdown only", func(t *testing.T) {
		store := NewReportStore()
		dir := t.TempDir()

		written, err := store.SaveDocumentation(context.Background(), m.Path(dir), sampleDocumentation, false)
		if err != nil {
			t.Fatalf("SaveDocumentation() error = %v", err)
		}

		if len(written) != 1 || string(written[0]) != filepath.Join(dir, DocumentationFileName) {
			t.Fatalf("SaveDocumentation() written = %v", written)
		}

		data, err := os.ReadFile(filepath.Join(dir, DocumentationFileName))
		if err != nil {
			t.Fatalf("read documentation: %v", err)
		}

		if string(data) != sampleDocumentation {
			t.Fatalf("documentation = %q", data)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("read dir: %v", err)
		}

		if len(entries) != 1 {
			t.Fatalf("SaveDocumentation() left extra files: %v", entries)
		}
	})

	t.Run("with html", func(t *testing.T) {
		store := NewReportStore()
		dir := t.TempDir()

		written, err := store.SaveDocumentation(context.Background(), m.Path(dir), sampleDocumentation, true)
		if err != nil {
			t.Fatalf("SaveDocumentation() error = %v", err)
		}

		if len(written) != 2 {
			t.Fatalf("SaveDocumentation() written = %v", written)
		}

		page, err := os.ReadFile(filepath.Join(dir, DocumentationHTMLFileName))
		if err != nil {
			t.Fatalf("read html: %v", err)
		}

		for _, want := range []string{"<title>Unfold Log</title>", "<h1>Unfold Log</h1>", "<table>", "[conflict-1]-a.txt"} {
			if !strings.Contains(string(page), want) {
				t.Fatalf("html page missing %q:\n%s", want, page)
			}
		}
	})

	t.Run("replaces an existing document", func(t *testing.T) {
		store := NewReportStore()
		dir := t.TempDir()
		writeTestFile(t, filepath.Join(dir, DocumentationFileName), "stale")

		if _, err := store.SaveDocumentation(context.Background(), m.Path(dir), sampleDocumentation, false); err != nil {
			t.Fatalf("SaveDocumentation() error = %v", err)
		}

		data, err := os.ReadFile(filepath.Join(dir, DocumentationFileName))
		if err != nil {
			t.Fatalf("read documentation: %v", err)
		}

		if string(data) != sampleDocumentation {
			t.Fatalf("documentation = %q", data)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		store := NewReportStore()

		_, err := store.SaveDocumentation(context.Background(), m.Path(filepath.Join(t.TempDir(), "missing")), sampleDocumentation, false)
		if err == nil {
			t.Fatalf("SaveDocumentation() expected error for a missing directory")
		}
	})
}

func TestLocalReportStore_LoadDocumentation(t *testing.T) {
	store := NewReportStore()
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, DocumentationFileName), sampleDocumentation)

	for _, path := range []string{dir, filepath.Join(dir, DocumentationFileName)} {
		got, err := store.LoadDocumentation(context.Background(), m.Path(path))
		if err != nil {
			t.Fatalf("LoadDocumentation(%s) error = %v", path, err)
		}

		if got != sampleDocumentation {
			t.Fatalf("LoadDocumentation(%s) = %q", path, got)
		}
	}

	if _, err := store.LoadDocumentation(context.Background(), m.Path(t.TempDir())); err == nil {
		t.Fatalf("LoadDocumentation() expected error for a directory without documentation")
	}
}
