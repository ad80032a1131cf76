package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// FileSink stores documents as <name>.json files in a directory.
type FileSink struct {
	dir string
}

func NewFileSink(dir string) (*FileSink, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &FileSink{dir: dir}, nil
}

func (s *FileSink) Read(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(s.filePath(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *FileSink) Write(_ context.Context, name string, data []byte) error {
	return atomicWrite(s.filePath(name), data, 0644)
}

func (s *FileSink) filePath(name string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s.json", name))
}

// atomicWrite writes data to a temp file then renames it to the target path so a
// crash mid-write leaves the previous snapshot intact.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		if removeErr := os.Remove(tmp); removeErr != nil {
			slog.Warn("failed to remove temp file after rename failure", "path", tmp, "error", removeErr)
		}
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
