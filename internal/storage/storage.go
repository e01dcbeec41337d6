package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// FileInfo describes a stored file
type FileInfo struct {
	Name    string
	ModTime time.Time
}

// localStorage keeps uploaded recipe images on the local filesystem
type localStorage struct {
	basePath string
}

// NewLocalStorage creates a new localStorage instance rooted at basePath
func NewLocalStorage(basePath string) *localStorage {
	return &localStorage{
		basePath: basePath,
	}
}

// BasePath returns the directory files are written to
func (s *localStorage) BasePath() string {
	return s.basePath
}

// path resolves name inside the base path, rejecting anything that escapes it
func (s *localStorage) path(name string) (string, error) {
	clean := filepath.Base(filepath.Clean(name))
	if clean == "." || clean == string(filepath.Separator) || clean == ".." {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	return filepath.Join(s.basePath, clean), nil
}

// Save writes the content of reader to a new file called name
func (s *localStorage) Save(name string, reader io.Reader) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	// Ensure the directory exists
	if err := os.MkdirAll(s.basePath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(file, reader); err != nil {
		file.Close()
		os.Remove(path)
		return fmt.Errorf("failed to write file: %w", err)
	}

	return file.Close()
}

// Delete removes a file
func (s *localStorage) Delete(name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

// List returns the regular files in the base path.
// A missing base path is treated as empty.
func (s *localStorage) List() ([]FileInfo, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read upload directory: %w", err)
	}

	files := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", entry.Name(), err)
		}
		files = append(files, FileInfo{Name: entry.Name(), ModTime: info.ModTime()})
	}
	return files, nil
}
