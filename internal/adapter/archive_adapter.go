package adapter

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"

	m "unfold.dev/pkg/unfold/internal/model"
)

// Archiver packages a directory into a single compressed file.
type Archiver interface {
	// Archive writes the contents of srcDir into dst. Entries are stored relative
	// to srcDir, so the directory itself is not an archive level. It returns the
	// number of bytes written to dst.
	Archive(ctx context.Context, srcDir, dst m.Path) (int64, error)
}

// ZipArchiver writes zip archives using maximum deflate compression.
type ZipArchiver struct {
	level int
}

// NewZipArchiver constructs a ZipArchiver using flate.BestCompression.
func NewZipArchiver() *ZipArchiver {
	return &ZipArchiver{level: flate.BestCompression}
}

// Archive zips srcDir into dst. A partially written dst is removed on failure.
func (z *ZipArchiver) Archive(ctx context.Context, srcDir, dst m.Path) (int64, error) {
	// #nosec G304 - dst is derived from the source root
	out, err := os.Create(string(dst))
	if err != nil {
		return 0, fmt.Errorf("create archive: %w", err)
	}

	written, err := z.write(ctx, srcDir, out)
	closeErr := out.Close()

	if err == nil && closeErr != nil {
		err = fmt.Errorf("close archive: %w", closeErr)
	}

	if err != nil {
		if removeErr := os.Remove(string(dst)); removeErr != nil && !os.IsNotExist(removeErr) {
			slog.Warn("failed to remove partial archive", "path", dst, "error", removeErr)
		}

		return 0, err
	}

	slog.Debug("archive created", "path", dst, "bytes", written)

	return written, nil
}

func (z *ZipArchiver) write(ctx context.Context, srcDir m.Path, out *os.File) (int64, error) {
	writer := zip.NewWriter(out)
	writer.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, z.level)
	})

	root := string(srcDir)

	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		info, err := entry.Info()
		if err != nil {
			return err
		}

		return addZipEntry(writer, filepath.ToSlash(rel), path, info)
	})
	if walkErr != nil {
		_ = writer.Close()
		return 0, fmt.Errorf("add archive entries: %w", walkErr)
	}

	if err := writer.Close(); err != nil {
		return 0, fmt.Errorf("finalize archive: %w", err)
	}

	info, err := out.Stat()
	if err != nil {
		return 0, err
	}

	return info.Size(), nil
}

func addZipEntry(writer *zip.Writer, name, path string, info fs.FileInfo) error {
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}

	header.Name = name

	if info.IsDir() {
		header.Name += "/"
		_, err = writer.CreateHeader(header)

		return err
	}

	if !info.Mode().IsRegular() {
		return nil
	}

	header.Method = zip.Deflate

	entryWriter, err := writer.CreateHeader(header)
	if err != nil {
		return err
	}

	// #nosec G304 - path is inside the output directory being archived
	file, err := os.Open(path)
	if err != nil {
		return err
	}

	defer func() { _ = file.Close() }()

	_, err = io.Copy(entryWriter, file)

	return err
}
