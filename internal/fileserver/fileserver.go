// Package fileserver stores media files on a local volume.
package fileserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	directoryPerms = 0o755
	filePerms      = 0o644
)

var ErrInvalidPath = errors.New("invalid path")

// FileServer keeps every file directly under baseDir.
type FileServer struct {
	baseDir string
}

func New(baseDir string) *FileServer {
	return &FileServer{
		baseDir: baseDir,
	}
}

// Write creates name and copies r into it. Existing files are never
// overwritten. A partially written file is removed before returning.
func (f *FileServer) Write(_ context.Context, name string, r io.Reader, _ int64) (int64, error) {
	fullpath, err := cleanPath(f.baseDir, name)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(fullpath), directoryPerms); err != nil {
		return 0, fmt.Errorf("creating parent directories: %w", err)
	}

	file, err := os.OpenFile(fullpath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerms)
	if err != nil {
		return 0, fmt.Errorf("creating file: %w", err)
	}

	n, err := io.Copy(file, r)
	if err != nil {
		_ = file.Close()
		_ = os.Remove(fullpath)
		return n, fmt.Errorf("writing file: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(fullpath)
		return n, fmt.Errorf("closing file: %w", err)
	}

	return n, nil
}

// Open returns the contents of name and its modification time. A missing
// file or a directory yields an error wrapping fs.ErrNotExist.
func (f *FileServer) Open(_ context.Context, name string) (io.ReadSeekCloser, time.Time, error) {
	fullpath, err := cleanPath(f.baseDir, name)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %w", fs.ErrNotExist, err)
	}

	file, err := os.Open(fullpath)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("opening file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, time.Time{}, fmt.Errorf("stat file: %w", err)
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, time.Time{}, fmt.Errorf("%s is a directory: %w", name, fs.ErrNotExist)
	}

	return file, info.ModTime(), nil
}

// Delete removes name. Deleting a missing file is not an error.
func (f *FileServer) Delete(_ context.Context, name string) error {
	fullpath, err := cleanPath(f.baseDir, name)
	if err != nil {
		return err
	}
	if fullpath == filepath.Clean(f.absBase()) {
		return fmt.Errorf("refusing to delete base directory: %w", ErrInvalidPath)
	}

	if err := os.Remove(fullpath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing file: %w", err)
	}
	return nil
}

func (f *FileServer) absBase() string {
	abs, err := filepath.Abs(f.baseDir)
	if err != nil {
		return f.baseDir
	}
	return abs
}

// cleanPath joins path onto baseDir and guarantees the result stays inside
// baseDir.
func cleanPath(baseDir, path string) (string, error) {
	if filepath.IsAbs(path) {
		return "", fmt.Errorf("%q is absolute: %w", path, ErrInvalidPath)
	}

	cleaned := filepath.Clean(path)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%q escapes the base directory: %w", path, ErrInvalidPath)
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("resolving base directory: %w", err)
	}

	full := filepath.Join(absBase, cleaned)
	rel, err := filepath.Rel(absBase, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%q escapes the base directory: %w", path, ErrInvalidPath)
	}

	return full, nil
}
