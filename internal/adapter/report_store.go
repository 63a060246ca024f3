package adapter

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	m "unfold.dev/pkg/unfold/internal/model"
)

const (
	// DocumentationFileName is the audit document written into the output root.
	DocumentationFileName = "documentation.md"
	// DocumentationHTMLFileName is the optional HTML rendering of the audit document.
	DocumentationHTMLFileName = "documentation.html"
)

// ReportStore persists the audit document of a run.
type ReportStore interface {
	// SaveDocumentation writes markdown as documentation.md inside dir and, when
	// withHTML is set, an HTML rendering next to it. It returns the written paths.
	SaveDocumentation(ctx context.Context, dir m.Path, markdown string, withHTML bool) ([]m.Path, error)

	// LoadDocumentation reads a saved document. path may be the document itself
	// or an output directory containing documentation.md.
	LoadDocumentation(ctx context.Context, path m.Path) (string, error)
}

// LocalReportStore writes audit documents to the local filesystem.
type LocalReportStore struct {
	markdown goldmark.Markdown
}

// NewReportStore constructs a LocalReportStore with GitHub-flavoured markdown.
func NewReportStore() *LocalReportStore {
	return &LocalReportStore{
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// SaveDocumentation implements ReportStore.
func (s *LocalReportStore) SaveDocumentation(ctx context.Context, dir m.Path, markdown string, withHTML bool) ([]m.Path, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mdPath := filepath.Join(string(dir), DocumentationFileName)
	if err := atomicWrite(mdPath, []byte(markdown)); err != nil {
		return nil, err
	}

	written := []m.Path{m.Path(mdPath)}

	if !withHTML {
		return written, nil
	}

	page, err := s.RenderHTML(markdown)
	if err != nil {
		return written, fmt.Errorf("render html documentation: %w", err)
	}

	htmlPath := filepath.Join(string(dir), DocumentationHTMLFileName)
	if err := atomicWrite(htmlPath, page); err != nil {
		return written, err
	}

	return append(written, m.Path(htmlPath)), nil
}

// LoadDocumentation implements ReportStore.
func (s *LocalReportStore) LoadDocumentation(ctx context.Context, path m.Path) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	target := string(path)

	info, err := os.Stat(target)
	if err != nil {
		return "", err
	}

	if info.IsDir() {
		target = filepath.Join(target, DocumentationFileName)
	}

	// #nosec G304 - reading a user-selected report
	data, err := os.ReadFile(target)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// RenderHTML converts the markdown document into a standalone HTML page.
func (s *LocalReportStore) RenderHTML(markdown string) ([]byte, error) {
	var body bytes.Buffer
	if err := s.markdown.Convert([]byte(markdown), &body); err != nil {
		return nil, err
	}

	var page bytes.Buffer

	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "<title>%s</title>\n", html.EscapeString("Unfold Log"))
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")

	return page.Bytes(), nil
}

// atomicWrite writes data through a temp file and rename so readers never see a
// partially written document.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)

	tempFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	tempPath := tempFile.Name()

	defer func() {
		if tempFile != nil {
			_ = tempFile.Close()
			_ = os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tempPath, 0o644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}

	tempFile = nil

	return nil
}
