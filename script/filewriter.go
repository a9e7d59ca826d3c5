package script

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// A SimpleFileWriter writes scripts to a directory.
type SimpleFileWriter struct {
	logger *slog.Logger
	dir    string
}

// NewSimpleFileWriter creates a SimpleFileWriter.
// Files are written relative to the directory specified with dir.
func NewSimpleFileWriter(logger *slog.Logger, dir string) *SimpleFileWriter {
	return &SimpleFileWriter{logger: logger, dir: dir}
}

// WriteFile replaces the file at path with content.
// The content is written to a temporary file next to path and renamed over
// it, so a failed write leaves the previous script in place.
// Intermediate directories for path are created if they don't already exist.
// It errors if path is not local or if there is an IO error.
func (fw *SimpleFileWriter) WriteFile(path, content string) error {
	fw.logger.Info("writing file", "path", path, "bytes", len(content))
	if !filepath.IsLocal(path) {
		return fmt.Errorf("path is not a local path: %q", path)
	}
	target := filepath.Join(fw.dir, path)
	if err := os.MkdirAll(filepath.Dir(target), 0700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("could not write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("could not replace %s: %w", path, err)
	}
	return nil
}
